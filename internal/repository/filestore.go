package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/schtekar/wells-fug/internal/models"
)

// Имена персистентных документов
const (
	SnapshotsFile = "snapshots.json"
	AnalysisFile  = "rig_well_analysis.json"
	KeyStatsFile  = "rw_keystats.json"
	WellboresFile = "sodirdata.json"
	ReportsFile   = "ais_reports.json"
)

// FileStore хранилище JSON документов на диске. Записи выполняются во
// временный файл в том же каталоге с последующим атомарным переименованием,
// поэтому параллельный читатель всегда видит целостный документ.
type FileStore struct {
	dir    string
	logger *logrus.Logger
}

// NewFileStore создает файловое хранилище в каталоге dir
func NewFileStore(dir string, logger *logrus.Logger) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// LoadSnapshotStore читает документ хранилища снимков. Отсутствующий или
// поврежденный файл дает пустое хранилище, а не ошибку: предыдущее состояние
// в этом случае просто перестраивается заново.
func (fs *FileStore) LoadSnapshotStore() (*models.StoreDocument, error) {
	doc := models.NewStoreDocument()
	if err := fs.readJSON(SnapshotsFile, doc); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fs.logger.WithFields(logrus.Fields{
				"file":  SnapshotsFile,
				"error": err,
			}).Warn("Snapshot store unreadable, starting from empty store")
		}
		return models.NewStoreDocument(), nil
	}
	if doc.Rigs == nil {
		doc.Rigs = make(map[string]*models.RigSnapshot)
	}
	return doc, nil
}

// SaveSnapshotStore атомарно записывает документ хранилища снимков
func (fs *FileStore) SaveSnapshotStore(doc *models.StoreDocument) error {
	return fs.writeJSON(SnapshotsFile, doc)
}

// LoadAnalysis читает последний документ анализа
func (fs *FileStore) LoadAnalysis() (*models.AnalysisDocument, error) {
	doc := &models.AnalysisDocument{}
	if err := fs.readJSON(AnalysisFile, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// SaveAnalysis атомарно записывает документ анализа
func (fs *FileStore) SaveAnalysis(doc *models.AnalysisDocument) error {
	return fs.writeJSON(AnalysisFile, doc)
}

// LoadKeyStats читает последний документ ключевой статистики
func (fs *FileStore) LoadKeyStats() (*models.KeyStats, error) {
	stats := &models.KeyStats{}
	if err := fs.readJSON(KeyStatsFile, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// SaveKeyStats атомарно записывает документ ключевой статистики
func (fs *FileStore) SaveKeyStats(stats *models.KeyStats) error {
	return fs.writeJSON(KeyStatsFile, stats)
}

// LoadWellbores читает сохраненный реестр скважин
func (fs *FileStore) LoadWellbores() ([]*models.Wellbore, error) {
	var wells []*models.Wellbore
	if err := fs.readJSON(WellboresFile, &wells); err != nil {
		return nil, err
	}
	return wells, nil
}

// SaveWellbores атомарно записывает реестр скважин
func (fs *FileStore) SaveWellbores(wells []*models.Wellbore) error {
	return fs.writeJSON(WellboresFile, wells)
}

// LoadReports читает последние сырые отчеты позиций
func (fs *FileStore) LoadReports() ([]*models.PositionReport, error) {
	var reports []*models.PositionReport
	if err := fs.readJSON(ReportsFile, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// SaveReports атомарно записывает сырые отчеты позиций
func (fs *FileStore) SaveReports(reports []*models.PositionReport) error {
	return fs.writeJSON(ReportsFile, reports)
}

// readJSON читает и декодирует документ по имени
func (fs *FileStore) readJSON(name string, v interface{}) error {
	data, err := os.ReadFile(filepath.Join(fs.dir, name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

// writeJSON сериализует документ и атомарно подменяет файл через rename.
// При любой ошибке предыдущий документ остается нетронутым.
func (fs *FileStore) writeJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(fs.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %s: %w", name, err)
	}

	if err := os.Rename(tmpName, filepath.Join(fs.dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}

	fs.logger.WithField("file", name).Debug("Document saved")
	return nil
}
