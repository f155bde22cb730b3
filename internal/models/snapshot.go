package models

import (
	"time"
)

// Horizon именованный горизонт отсчета назад во времени
type Horizon string

const (
	Horizon12h Horizon = "12h"
	Horizon1d  Horizon = "1d"
	Horizon2d  Horizon = "2d"
	Horizon3d  Horizon = "3d"
	Horizon1w  Horizon = "1w"
	Horizon1mo Horizon = "1mo"
)

// Horizons все поддерживаемые горизонты (от ближнего к дальнему)
var Horizons = []Horizon{Horizon12h, Horizon1d, Horizon2d, Horizon3d, Horizon1w, Horizon1mo}

// ExtendedHorizons горизонты, заполняемые из исторического источника,
// а не из скользящей истории
var ExtendedHorizons = []Horizon{Horizon3d, Horizon1w, Horizon1mo}

// Valid сообщает, известен ли горизонт
func (h Horizon) Valid() bool {
	switch h {
	case Horizon12h, Horizon1d, Horizon2d, Horizon3d, Horizon1w, Horizon1mo:
		return true
	}
	return false
}

// Extended сообщает, заполняется ли горизонт историческим источником
func (h Horizon) Extended() bool {
	switch h {
	case Horizon3d, Horizon1w, Horizon1mo:
		return true
	}
	return false
}

// Lookback возвращает длительность горизонта
func (h Horizon) Lookback() time.Duration {
	switch h {
	case Horizon12h:
		return 12 * time.Hour
	case Horizon1d:
		return 24 * time.Hour
	case Horizon2d:
		return 48 * time.Hour
	case Horizon3d:
		return 72 * time.Hour
	case Horizon1w:
		return 7 * 24 * time.Hour
	case Horizon1mo:
		return 30 * 24 * time.Hour
	}
	return 0
}

// RigSnapshot скользящее состояние одной буровой установки.
// History отсортирована по возрастанию времени, без дубликатов по timestamp,
// и содержит только записи моложе максимального возраста на момент последнего
// обновления.
type RigSnapshot struct {
	Current *PositionReport             `json:"current,omitempty"`
	History []*PositionReport           `json:"history"`
	Buckets map[Horizon]*PositionReport `json:"buckets"`
}

// NewRigSnapshot создает пустой снимок
func NewRigSnapshot() *RigSnapshot {
	return &RigSnapshot{
		History: make([]*PositionReport, 0),
		Buckets: make(map[Horizon]*PositionReport),
	}
}

// Bucket возвращает позицию для горизонта или nil
func (s *RigSnapshot) Bucket(h Horizon) *PositionReport {
	if s == nil || s.Buckets == nil {
		return nil
	}
	return s.Buckets[h]
}

// StoreDocument персистентный документ хранилища снимков.
// Дата последнего rollover хранится в самом документе, чтобы идемпотентность
// переживала перезапуск процесса.
type StoreDocument struct {
	LastRollDate string                  `json:"_last_roll_date,omitempty"`
	Rigs         map[string]*RigSnapshot `json:"rigs"`
}

// NewStoreDocument создает пустой документ хранилища
func NewStoreDocument() *StoreDocument {
	return &StoreDocument{
		Rigs: make(map[string]*RigSnapshot),
	}
}
