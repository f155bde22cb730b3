package models

// Wellbore представляет скважину из реестра SODIR, привязанную к буровой
// установке по имени. Данные read-only для движка анализа.
type Wellbore struct {
	Name        string  `json:"wellbore_name"`
	Well        string  `json:"well,omitempty"`
	Status      string  `json:"status,omitempty"`
	EntryDate   string  `json:"entryDate"`
	RigName     string  `json:"rig_name"`
	RigType     string  `json:"rig_type,omitempty"`
	Operator    string  `json:"operator,omitempty"`
	WellType    string  `json:"well_type,omitempty"`
	Field       string  `json:"field,omitempty"`
	FactPageURL string  `json:"fact_page_url,omitempty"`
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lon"`
}

// Point возвращает координаты скважины как GeoPoint
func (w *Wellbore) Point() GeoPoint {
	return GeoPoint{Latitude: w.Latitude, Longitude: w.Longitude}
}

// Activated сообщает, начато ли бурение скважины (есть entry date)
func (w *Wellbore) Activated() bool {
	return w.EntryDate != ""
}
