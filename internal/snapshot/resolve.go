package snapshot

import (
	"github.com/schtekar/wells-fug/internal/models"
)

// Resolver выбирает референсную позицию по имени горизонта.
// DefaultHorizon берется из конфигурации и может быть переопределен
// в каждом вызове.
type Resolver struct {
	DefaultHorizon models.Horizon
}

// NewResolver создает резолвер с горизонтом по умолчанию
func NewResolver(defaultHorizon models.Horizon) Resolver {
	if !defaultHorizon.Valid() {
		defaultHorizon = models.Horizon12h
	}
	return Resolver{DefaultHorizon: defaultHorizon}
}

// Resolve возвращает позицию бакета для горизонта или nil, если горизонт
// неизвестен либо бакет пуст. Пустой horizon означает горизонт по умолчанию.
func (r Resolver) Resolve(snap *models.RigSnapshot, horizon models.Horizon) *models.PositionReport {
	if horizon == "" {
		horizon = r.DefaultHorizon
	}
	if !horizon.Valid() {
		return nil
	}
	return snap.Bucket(horizon)
}
