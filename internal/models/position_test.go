package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionReport_Validate(t *testing.T) {
	msgTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		report  PositionReport
		wantErr bool
		errMsg  string
	}{
		{
			name: "Valid report",
			report: PositionReport{
				RigName:   "DEEPSEA YANTAI",
				MMSI:      311000483,
				Latitude:  64.3,
				Longitude: 7.8,
				MsgTime:   msgTime,
				Source:    SourceBarentswatch,
			},
			wantErr: false,
		},
		{
			name: "Missing rig name",
			report: PositionReport{
				Latitude:  64.3,
				Longitude: 7.8,
				MsgTime:   msgTime,
			},
			wantErr: true,
			errMsg:  "missing rig name",
		},
		{
			name: "Missing message time",
			report: PositionReport{
				RigName:   "DEEPSEA YANTAI",
				Latitude:  64.3,
				Longitude: 7.8,
			},
			wantErr: true,
			errMsg:  "missing message time",
		},
		{
			name: "Out of range coordinates",
			report: PositionReport{
				RigName:   "DEEPSEA YANTAI",
				Latitude:  95.0,
				Longitude: 7.8,
				MsgTime:   msgTime,
			},
			wantErr: true,
			errMsg:  "invalid coordinates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.report.Validate()

			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPositionReport_Clone(t *testing.T) {
	original := &PositionReport{
		RigName:   "TRANSOCEAN SPITSBERGEN",
		MMSI:      538004905,
		Latitude:  71.2,
		Longitude: 22.1,
		MsgTime:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Source:    SourceKystdatahuset,
	}

	clone := original.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, original, clone)
	assert.NotSame(t, original, clone)

	// Изменение копии не затрагивает оригинал
	clone.Latitude = 0
	assert.Equal(t, 71.2, original.Latitude)

	var nilReport *PositionReport
	assert.Nil(t, nilReport.Clone())
}

func TestHorizon_Lookback(t *testing.T) {
	assert.Equal(t, 12*time.Hour, Horizon12h.Lookback())
	assert.Equal(t, 24*time.Hour, Horizon1d.Lookback())
	assert.Equal(t, 48*time.Hour, Horizon2d.Lookback())
	assert.Equal(t, 72*time.Hour, Horizon3d.Lookback())
	assert.Equal(t, 7*24*time.Hour, Horizon1w.Lookback())
	assert.Equal(t, 30*24*time.Hour, Horizon1mo.Lookback())
}

func TestHorizon_Valid(t *testing.T) {
	for _, h := range Horizons {
		assert.True(t, h.Valid(), "horizon %s", h)
	}
	assert.False(t, Horizon("6h").Valid())
	assert.False(t, Horizon("").Valid())
}

func TestHorizon_Extended(t *testing.T) {
	assert.False(t, Horizon12h.Extended())
	assert.False(t, Horizon1d.Extended())
	assert.False(t, Horizon2d.Extended())
	assert.True(t, Horizon3d.Extended())
	assert.True(t, Horizon1w.Extended())
	assert.True(t, Horizon1mo.Extended())
}
