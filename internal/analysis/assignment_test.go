package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schtekar/wells-fug/internal/models"
)

func makeWell(name string, lat, lon float64) *models.Wellbore {
	return &models.Wellbore{
		Name:      name,
		RigName:   "ASKEPOTT",
		Latitude:  lat,
		Longitude: lon,
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestAssessWells_ApproachRatio(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Установка прошла от референса (0,0) к (0,0.001) прямо на скважину
	// (0,0.002): весь путь сокращал дистанцию, ratio близок к 1
	current := makeReport(0.0, 0.001, now)
	reference := makeReport(0.0, 0.0, now.Add(-13*time.Hour))
	displacement := reference.Point().DistanceTo(current.Point())

	assessed := AssessWells(current, reference, &displacement, []*models.Wellbore{
		makeWell("15/9-F-12", 0.0, 0.002),
	})
	require.Len(t, assessed, 1)
	require.NotNil(t, assessed[0].ApproachRatio)
	assert.InDelta(t, 1.0, *assessed[0].ApproachRatio, 0.01)
	assert.InDelta(t, 111.2, assessed[0].DistanceM, 1.0)
}

func TestAssessWells_MovingAwayClampsToZero(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Движение строго от скважины: сырой ratio отрицателен, результат 0
	current := makeReport(0.0, 0.001, now)
	reference := makeReport(0.0, 0.0, now.Add(-13*time.Hour))
	displacement := reference.Point().DistanceTo(current.Point())

	assessed := AssessWells(current, reference, &displacement, []*models.Wellbore{
		makeWell("15/9-F-12", 0.0, -0.002),
	})
	require.Len(t, assessed, 1)
	require.NotNil(t, assessed[0].ApproachRatio)
	assert.Equal(t, 0.0, *assessed[0].ApproachRatio)
}

func TestAssessWells_RatioAbsentWithoutDisplacement(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := makeReport(0.0, 0.001, now)
	reference := makeReport(0.0, 0.0, now.Add(-13*time.Hour))
	wells := []*models.Wellbore{makeWell("15/9-F-12", 0.0, 0.002)}

	// Смещение неизвестно
	assessed := AssessWells(current, nil, nil, wells)
	require.Len(t, assessed, 1)
	assert.Nil(t, assessed[0].ApproachRatio)
	assert.InDelta(t, 111.2, assessed[0].DistanceM, 1.0)

	// Смещение нулевое: деление не выполняется
	assessed = AssessWells(current, reference, floatPtr(0), wells)
	require.Len(t, assessed, 1)
	assert.Nil(t, assessed[0].ApproachRatio)
}

func TestAssessWells_SkipsInvalidInput(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := makeReport(0.0, 0.001, now)

	assessed := AssessWells(current, nil, nil, []*models.Wellbore{
		nil,
		makeWell("bad", 95.0, 0.0),
		makeWell("good", 0.0, 0.002),
	})
	require.Len(t, assessed, 1)
	assert.Equal(t, "good", assessed[0].Well.Name)

	assert.Nil(t, AssessWells(nil, nil, nil, []*models.Wellbore{makeWell("good", 0, 0)}))
}

func TestLikelyWell(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := makeReport(0.0, 0.0, now)

	assessed := AssessWells(current, nil, nil, []*models.Wellbore{
		makeWell("far", 0.0, 0.01),
		makeWell("near", 0.0, 0.001),
		makeWell("mid", 0.0, 0.005),
	})
	likely := LikelyWell(assessed)
	require.NotNil(t, likely)
	assert.Equal(t, "near", likely.Well.Name)

	assert.Nil(t, LikelyWell(nil))
}

func TestLikelyWell_TieKeepsFirst(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := makeReport(0.0, 0.0, now)

	// Две скважины на одинаковом расстоянии: побеждает первая по порядку
	assessed := AssessWells(current, nil, nil, []*models.Wellbore{
		makeWell("first", 0.0, 0.001),
		makeWell("second", 0.0, -0.001),
	})
	likely := LikelyWell(assessed)
	require.NotNil(t, likely)
	assert.Equal(t, "first", likely.Well.Name)
}
