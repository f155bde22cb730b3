// wellsfug выполняет один пакетный запуск движка: загрузка хранилища,
// прием отчетов позиций, rollover бакетов, заполнение дальних бакетов,
// анализ привязки к скважинам и атомарная публикация документов.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/schtekar/wells-fug/internal/analysis"
	"github.com/schtekar/wells-fug/internal/config"
	"github.com/schtekar/wells-fug/internal/fetch"
	"github.com/schtekar/wells-fug/internal/metrics"
	"github.com/schtekar/wells-fug/internal/models"
	"github.com/schtekar/wells-fug/internal/registry"
	"github.com/schtekar/wells-fug/internal/repository"
	"github.com/schtekar/wells-fug/internal/snapshot"
	"github.com/schtekar/wells-fug/pkg/utils"
)

var (
	// Version устанавливается при сборке через ldflags
	Version = "dev"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)
	logger.WithField("version", Version).Info("Starting wells-fug batch run")

	ctx := context.Background()
	start := time.Now()
	now := time.Now().UTC()

	fileStore, err := repository.NewFileStore(cfg.DataDir, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize file store")
	}

	storeDoc, err := fileStore.LoadSnapshotStore()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load snapshot store")
	}
	store := snapshot.FromDocument(storeDoc, &cfg.Tracking, logger)

	reports := loadReports(ctx, cfg, fileStore, logger)
	wells := loadWellbores(ctx, cfg, fileStore, logger)

	mergeStats := store.Merge(reports, now)
	logger.WithFields(logrus.Fields{
		"merged":  mergeStats.Merged,
		"skipped": mergeStats.Skipped,
	}).Info("Merged position reports")

	if store.ApplyDailyRollover(now) {
		logger.Info("Daily bucket rollover applied")
	}

	mysqlRepo := updateExtendedBuckets(ctx, cfg, store, logger)
	if mysqlRepo != nil {
		defer mysqlRepo.Close()
	}

	analyzer := analysis.NewAnalyzer(&cfg.Tracking, logger)
	doc := analyzer.Analyze(store, wells, now)
	keyStats := analysis.ComputeKeyStats(wells, doc, now)

	// Все документы построены в памяти; только теперь замещаем предыдущие.
	// Любая ошибка записи оставляет последнее хорошее состояние на диске.
	if err := fileStore.SaveSnapshotStore(store.Document()); err != nil {
		logger.WithError(err).Fatal("Failed to persist snapshot store")
	}
	if err := fileStore.SaveAnalysis(doc); err != nil {
		logger.WithError(err).Fatal("Failed to persist analysis document")
	}
	if err := fileStore.SaveKeyStats(keyStats); err != nil {
		logger.WithError(err).Fatal("Failed to persist key statistics")
	}

	if mysqlRepo != nil {
		if err := mysqlRepo.ArchiveReports(ctx, reports); err != nil {
			logger.WithError(err).Warn("Failed to archive reports to MySQL")
		}
	}

	mirrorDocuments(ctx, cfg, doc, keyStats, logger)

	metrics.RunDuration.Observe(time.Since(start).Seconds())
	logger.WithFields(logrus.Fields{
		"rigs":     len(doc.Rigs),
		"wells":    len(wells),
		"duration": time.Since(start),
	}).Info("Batch run complete")
}

// loadReports получает отчеты позиций: живой фид BarentsWatch либо
// последние сохраненные отчеты в оффлайн-режиме или при сбое фида
func loadReports(ctx context.Context, cfg *config.Config, fileStore *repository.FileStore, logger *logrus.Logger) []*models.PositionReport {
	if !cfg.Offline && cfg.BW.ClientID != "" {
		bw := fetch.NewBarentswatchClient(&cfg.BW, logger)
		reports, err := bw.FetchLatest(ctx)
		if err == nil {
			if err := fileStore.SaveReports(reports); err != nil {
				logger.WithError(err).Warn("Failed to save raw reports")
			}
			return reports
		}
		logger.WithError(err).Warn("BarentsWatch fetch failed, falling back to stored reports")
	}

	reports, err := fileStore.LoadReports()
	if err != nil {
		logger.WithError(err).Warn("No stored position reports available")
		return nil
	}
	return reports
}

// loadWellbores получает реестр скважин: свежий из SODIR либо последний
// сохраненный
func loadWellbores(ctx context.Context, cfg *config.Config, fileStore *repository.FileStore, logger *logrus.Logger) []*models.Wellbore {
	if !cfg.Offline {
		sodir := fetch.NewSodirClient(&cfg.Sodir, logger)
		wells, err := sodir.FetchWellbores(ctx)
		if err == nil {
			if err := fileStore.SaveWellbores(wells); err != nil {
				logger.WithError(err).Warn("Failed to save wellbore registry")
			}
			return wells
		}
		logger.WithError(err).Warn("SODIR fetch failed, falling back to stored wellbores")
	}

	wells, err := fileStore.LoadWellbores()
	if err != nil {
		logger.WithError(err).Warn("No stored wellbores available")
		return nil
	}
	return wells
}

// updateExtendedBuckets заполняет дальние бакеты (3d/1w/1mo) из исторического
// источника: архив MySQL, если настроен, иначе Kystdatahuset. Возвращает
// MySQL репозиторий, если он был открыт.
func updateExtendedBuckets(ctx context.Context, cfg *config.Config, store *snapshot.Store, logger *logrus.Logger) *repository.MySQLRepository {
	var history repository.HistoryLookup
	var mysqlRepo *repository.MySQLRepository

	if cfg.MySQL.DSN != "" {
		repo, err := repository.NewMySQLRepository(&cfg.MySQL, logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize MySQL repository")
		} else if err := repo.Ping(ctx); err != nil {
			logger.WithError(err).Warn("Failed to connect to MySQL")
			repo.Close()
		} else {
			mysqlRepo = repo
			history = repo
		}
	}
	if history == nil && !cfg.Offline && cfg.KDH.Username != "" {
		history = fetch.NewKystdataClient(&cfg.KDH, logger)
	}
	if history == nil {
		logger.Debug("No historical source configured, extended buckets unchanged")
		return mysqlRepo
	}

	for _, rigName := range store.RigNames() {
		mmsi := registry.MMSIFor(rigName)
		if mmsi == 0 {
			continue
		}
		for _, horizon := range models.ExtendedHorizons {
			report, err := history.PositionAt(ctx, rigName, mmsi, horizon)
			if err != nil {
				logger.WithFields(logrus.Fields{
					"rig":     rigName,
					"horizon": horizon,
					"error":   err,
				}).Warn("History lookup failed")
				continue
			}
			if report == nil {
				continue
			}
			if err := store.SetExtendedBucket(rigName, horizon, report); err != nil {
				logger.WithFields(logrus.Fields{
					"rig":     rigName,
					"horizon": horizon,
					"error":   err,
				}).Warn("Failed to set extended bucket")
			}
		}
	}

	return mysqlRepo
}

// mirrorDocuments зеркалирует опубликованные документы в Redis для слоя
// отображения; сбои зеркалирования не влияют на результат запуска
func mirrorDocuments(ctx context.Context, cfg *config.Config, doc *models.AnalysisDocument, keyStats *models.KeyStats, logger *logrus.Logger) {
	if cfg.Redis.URL == "" {
		return
	}

	mirror, err := repository.NewRedisRepository(&cfg.Redis, logger)
	if err != nil {
		logger.WithError(err).Warn("Failed to initialize Redis mirror")
		return
	}
	defer mirror.Close()

	if err := mirror.MirrorAnalysis(ctx, doc); err != nil {
		logger.WithError(err).Warn("Failed to mirror analysis document")
	}
	if err := mirror.MirrorKeyStats(ctx, keyStats); err != nil {
		logger.WithError(err).Warn("Failed to mirror key statistics")
	}
}
