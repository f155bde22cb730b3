package models

import "time"

// RigStatus грубый операционный статус буровой установки
type RigStatus string

const (
	StatusOnSite     RigStatus = "on_site"
	StatusStationary RigStatus = "stationary"
	StatusMoving     RigStatus = "moving"
	StatusUnknown    RigStatus = "unknown"
)

// Confidence уровень уверенности в статусе
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// PositionOut позиция в публикуемом документе анализа
type PositionOut struct {
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lon"`
	MsgTime   time.Time `json:"msgtime"`
	Source    string    `json:"source"`
	Geohash   string    `json:"geohash,omitempty"`
}

// WellDistance расстояние и approach ratio до одной назначенной скважины.
// ApproachRatio равен nil, когда смещение отсутствует или нулевое.
type WellDistance struct {
	Name          string   `json:"name"`
	DistanceM     float64  `json:"distance_m"`
	ApproachRatio *float64 `json:"approach_ratio"`
}

// RigResult результат анализа одной буровой установки
type RigResult struct {
	MMSI             int            `json:"mmsi,omitempty"`
	Position         *PositionOut   `json:"position"`
	ReferenceHorizon Horizon        `json:"reference_horizon_used"`
	DisplacementM    *float64       `json:"displacement_m"`
	IsMoving         *bool          `json:"is_moving"`
	AssignedWells    []WellDistance `json:"assigned_wells"`
	LikelyWell       *string        `json:"likely_well"`
	OnSiteWell       *string        `json:"on_site_well,omitempty"`
	FutureWells      []string       `json:"future_wells,omitempty"`
	Status           RigStatus      `json:"status"`
	Confidence       Confidence     `json:"confidence"`
}

// WellResult обратная привязка скважины к ее буровой установке
type WellResult struct {
	RigName        string  `json:"rig_name"`
	DistanceToRigM float64 `json:"distance_to_rig_m"`
}

// AnalysisDocument публикуемый документ анализа. Пересчитывается целиком
// на каждом запуске и не является авторитетным состоянием.
type AnalysisDocument struct {
	GeneratedAt time.Time             `json:"generated_at"`
	Rigs        map[string]*RigResult `json:"rigs"`
	Wells       map[string]WellResult `json:"wells"`
}

// HotWell недавно начатая скважина для ключевой статистики
type HotWell struct {
	Name           string `json:"wellbore_name"`
	RigName        string `json:"rig_name"`
	EntryDate      string `json:"entry_date"`
	DaysSinceEntry *int   `json:"days_since_entry"`
}

// KeyStats агрегированная статистика для отображения
type KeyStats struct {
	GeneratedAt     time.Time `json:"generated_at"`
	NumRigs         int       `json:"num_rigs"`
	NumWells        int       `json:"num_wells"`
	EnteredWells    int       `json:"entered_wells"`
	NotEnteredWells int       `json:"not_entered_wells"`
	StationaryRigs  int       `json:"stationary_rigs"`
	MovingRigs      int       `json:"moving_rigs"`
	Jackups         int       `json:"jackups"`
	Semisubs        int       `json:"semisubs"`
	HottestWells    []HotWell `json:"hottest_wells"`
}
