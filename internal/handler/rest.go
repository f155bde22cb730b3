package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/schtekar/wells-fug/internal/registry"
	"github.com/schtekar/wells-fug/internal/repository"
)

// RESTHandler обработчик REST API endpoints. Читает только персистентные
// документы: благодаря атомарной записи читатель всегда видит целостное
// состояние последнего завершенного запуска.
type RESTHandler struct {
	store  repository.DocumentStore
	logger *logrus.Logger
}

// NewRESTHandler создает новый REST handler
func NewRESTHandler(store repository.DocumentStore, logger *logrus.Logger) *RESTHandler {
	return &RESTHandler{
		store:  store,
		logger: logger,
	}
}

// GetAnalysis возвращает последний документ анализа
// GET /api/v1/analysis
func (h *RESTHandler) GetAnalysis(c *gin.Context) {
	doc, err := h.store.LoadAnalysis()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "analysis_not_available",
			"message": "No analysis document has been produced yet",
		})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// GetSnapshots возвращает документ хранилища снимков
// GET /api/v1/snapshots
func (h *RESTHandler) GetSnapshots(c *gin.Context) {
	doc, err := h.store.LoadSnapshotStore()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load snapshot store")
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "Failed to load snapshot store",
		})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// GetRigSnapshot возвращает снимок одной установки
// GET /api/v1/snapshots/:rig
func (h *RESTHandler) GetRigSnapshot(c *gin.Context) {
	doc, err := h.store.LoadSnapshotStore()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load snapshot store")
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "Failed to load snapshot store",
		})
		return
	}

	name := registry.NormalizeName(c.Param("rig"))
	snap, ok := doc.Rigs[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "rig_not_found",
			"message": "Unknown rig: " + name,
		})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// GetKeyStats возвращает последний документ ключевой статистики
// GET /api/v1/keystats
func (h *RESTHandler) GetKeyStats(c *gin.Context) {
	stats, err := h.store.LoadKeyStats()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "keystats_not_available",
			"message": "No key statistics document has been produced yet",
		})
		return
	}
	c.JSON(http.StatusOK, stats)
}
