package repository

import (
	"context"

	"github.com/schtekar/wells-fug/internal/models"
)

// DocumentStore персистентное хранилище документов движка. Все записи
// атомарны: читатель никогда не видит частично записанный документ.
type DocumentStore interface {
	LoadSnapshotStore() (*models.StoreDocument, error)
	SaveSnapshotStore(doc *models.StoreDocument) error

	LoadAnalysis() (*models.AnalysisDocument, error)
	SaveAnalysis(doc *models.AnalysisDocument) error

	LoadKeyStats() (*models.KeyStats, error)
	SaveKeyStats(stats *models.KeyStats) error

	LoadWellbores() ([]*models.Wellbore, error)
	SaveWellbores(wells []*models.Wellbore) error

	LoadReports() ([]*models.PositionReport, error)
	SaveReports(reports []*models.PositionReport) error
}

// HistoryLookup исторический источник: одна позиция (или ее отсутствие)
// для пары (установка, горизонт). Используется для дальних бакетов 3d/1w/1mo.
type HistoryLookup interface {
	PositionAt(ctx context.Context, rigName string, mmsi int, horizon models.Horizon) (*models.PositionReport, error)
}

// Mirror зеркало последних документов для слоя отображения.
// Ошибки зеркалирования не фатальны для запуска.
type Mirror interface {
	MirrorAnalysis(ctx context.Context, doc *models.AnalysisDocument) error
	MirrorKeyStats(ctx context.Context, stats *models.KeyStats) error
	Ping(ctx context.Context) error
	Close() error
}

// Ensure implementations
var _ DocumentStore = (*FileStore)(nil)
var _ HistoryLookup = (*MySQLRepository)(nil)
var _ Mirror = (*RedisRepository)(nil)
