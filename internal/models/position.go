package models

import (
	"fmt"
	"time"
)

// Источники позиционных данных
const (
	SourceBarentswatch = "barentswatch"
	SourceKystdatahuset = "kystdatahuset"
)

// PositionReport представляет одно наблюдение позиции буровой установки.
// Создается на границе приема данных и дальше не изменяется.
type PositionReport struct {
	RigName   string    `json:"rig_name"`
	MMSI      int       `json:"mmsi,omitempty"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	MsgTime   time.Time `json:"msgtime"`
	Source    string    `json:"source"`
}

// Point возвращает координаты отчета как GeoPoint
func (r *PositionReport) Point() GeoPoint {
	return GeoPoint{Latitude: r.Latitude, Longitude: r.Longitude}
}

// Validate проверяет обязательные поля отчета
func (r *PositionReport) Validate() error {
	if r.RigName == "" {
		return fmt.Errorf("missing rig name")
	}
	if r.MsgTime.IsZero() {
		return fmt.Errorf("missing message time")
	}
	if err := r.Point().Validate(); err != nil {
		return fmt.Errorf("invalid coordinates: %w", err)
	}
	return nil
}

// Clone возвращает копию отчета
func (r *PositionReport) Clone() *PositionReport {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}
