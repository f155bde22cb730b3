package analysis

import (
	"sort"
	"time"

	"github.com/schtekar/wells-fug/internal/models"
	"github.com/schtekar/wells-fug/internal/registry"
)

// ComputeKeyStats агрегирует ключевую статистику по скважинам и результатам
// анализа: счетчики установок и скважин, движение, типы установок и десятка
// последних начатых скважин
func ComputeKeyStats(wells []*models.Wellbore, doc *models.AnalysisDocument, now time.Time) *models.KeyStats {
	stats := &models.KeyStats{
		GeneratedAt:  now.UTC(),
		NumWells:     len(wells),
		HottestWells: make([]models.HotWell, 0),
	}
	if doc != nil {
		stats.NumRigs = len(doc.Rigs)
	}

	var entered []models.HotWell
	for _, well := range wells {
		if well == nil {
			continue
		}
		if !well.Activated() {
			stats.NotEnteredWells++
			continue
		}
		stats.EnteredWells++

		hot := models.HotWell{
			Name:      well.Name,
			RigName:   well.RigName,
			EntryDate: well.EntryDate,
		}
		if entryDate, err := time.Parse("2006-01-02", well.EntryDate); err == nil {
			days := int(now.UTC().Sub(entryDate).Hours() / 24)
			hot.DaysSinceEntry = &days
		}
		entered = append(entered, hot)
	}

	// Самые свежие по дате входа, топ-10
	sort.SliceStable(entered, func(i, j int) bool {
		return entered[i].EntryDate > entered[j].EntryDate
	})
	if len(entered) > 10 {
		entered = entered[:10]
	}
	stats.HottestWells = append(stats.HottestWells, entered...)

	if doc != nil {
		for rigName, rig := range doc.Rigs {
			if rig.IsMoving != nil && *rig.IsMoving {
				stats.MovingRigs++
			} else {
				stats.StationaryRigs++
			}

			switch registry.TypeFor(rigName) {
			case registry.TypeJackup:
				stats.Jackups++
			case registry.TypeSemisub:
				stats.Semisubs++
			}
		}
	}

	return stats
}
