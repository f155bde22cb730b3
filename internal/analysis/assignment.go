package analysis

import (
	"math"

	"github.com/schtekar/wells-fug/internal/models"
)

// AssessedWell оценка одной назначенной скважины относительно установки
type AssessedWell struct {
	Well          *models.Wellbore
	DistanceM     float64
	ApproachRatio *float64
}

// AssessWells вычисляет расстояние и approach ratio для каждой назначенной
// скважины с валидными координатами. Скважины с некорректными координатами
// исключаются из результата. Назначение идет по объявленной привязке к
// установке, не по близости: список wells уже отфильтрован по имени.
func AssessWells(current *models.PositionReport, reference *models.PositionReport, displacementM *float64, wells []*models.Wellbore) []AssessedWell {
	if current == nil || current.Point().Validate() != nil {
		return nil
	}

	refValid := reference != nil && reference.Point().Validate() == nil

	assessed := make([]AssessedWell, 0, len(wells))
	for _, well := range wells {
		if well == nil || well.Point().Validate() != nil {
			continue
		}

		distanceNow := current.Point().DistanceTo(well.Point())

		aw := AssessedWell{
			Well:      well,
			DistanceM: distanceNow,
		}

		// Approach ratio вычислим только при известном ненулевом смещении:
		// nil означает "движение неизвестно", а не "нет приближения".
		if refValid && displacementM != nil && *displacementM > 0 {
			distanceRef := reference.Point().DistanceTo(well.Point())
			ratio := (distanceRef - distanceNow) / *displacementM
			ratio = math.Max(0, math.Min(1, ratio))
			aw.ApproachRatio = &ratio
		}

		assessed = append(assessed, aw)
	}

	return assessed
}

// LikelyWell выбирает скважину с минимальным текущим расстоянием.
// При равенстве побеждает первая по порядку входа. Nil, если валидных
// кандидатов нет.
func LikelyWell(assessed []AssessedWell) *AssessedWell {
	var likely *AssessedWell
	for i := range assessed {
		if likely == nil || assessed[i].DistanceM < likely.DistanceM {
			likely = &assessed[i]
		}
	}
	return likely
}
