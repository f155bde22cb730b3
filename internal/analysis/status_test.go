package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schtekar/wells-fug/internal/models"
)

func boolPtr(v bool) *bool { return &v }

func TestClassifyStatus(t *testing.T) {
	activated := &AssessedWell{
		Well:      &models.Wellbore{Name: "15/9-F-12", EntryDate: "2025-05-20"},
		DistanceM: 40,
	}
	activatedFar := &AssessedWell{
		Well:      &models.Wellbore{Name: "15/9-F-12", EntryDate: "2025-05-20"},
		DistanceM: 250,
	}
	future := &AssessedWell{
		Well:      &models.Wellbore{Name: "15/9-F-14"},
		DistanceM: 40,
	}

	tests := []struct {
		name           string
		isMoving       *bool
		likely         *AssessedWell
		wantStatus     models.RigStatus
		wantConfidence models.Confidence
	}{
		{
			name:           "Movement verdict absent",
			isMoving:       nil,
			likely:         activated,
			wantStatus:     models.StatusUnknown,
			wantConfidence: models.ConfidenceLow,
		},
		{
			name:           "Moving overrides proximity",
			isMoving:       boolPtr(true),
			likely:         activated,
			wantStatus:     models.StatusMoving,
			wantConfidence: models.ConfidenceMedium,
		},
		{
			name:           "On site at activated well",
			isMoving:       boolPtr(false),
			likely:         activated,
			wantStatus:     models.StatusOnSite,
			wantConfidence: models.ConfidenceHigh,
		},
		{
			name:           "Activated well out of range",
			isMoving:       boolPtr(false),
			likely:         activatedFar,
			wantStatus:     models.StatusStationary,
			wantConfidence: models.ConfidenceMedium,
		},
		{
			name:           "Nearby well not yet activated",
			isMoving:       boolPtr(false),
			likely:         future,
			wantStatus:     models.StatusStationary,
			wantConfidence: models.ConfidenceMedium,
		},
		{
			name:           "Stationary without wells",
			isMoving:       boolPtr(false),
			likely:         nil,
			wantStatus:     models.StatusStationary,
			wantConfidence: models.ConfidenceMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, confidence := ClassifyStatus(tt.isMoving, tt.likely, 100)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantConfidence, confidence)
		})
	}
}

func TestClassifyStatus_OnsiteThresholdIsInclusive(t *testing.T) {
	likely := &AssessedWell{
		Well:      &models.Wellbore{Name: "15/9-F-12", EntryDate: "2025-05-20"},
		DistanceM: 100,
	}

	status, confidence := ClassifyStatus(boolPtr(false), likely, 100)
	assert.Equal(t, models.StatusOnSite, status)
	assert.Equal(t, models.ConfidenceHigh, confidence)
}
