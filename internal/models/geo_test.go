package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeoPoint_Validate(t *testing.T) {
	tests := []struct {
		name    string
		point   GeoPoint
		wantErr bool
		errMsg  string
	}{
		{
			name:    "Valid coordinates - North Sea",
			point:   GeoPoint{Latitude: 56.5, Longitude: 3.2},
			wantErr: false,
		},
		{
			name:    "Valid coordinates - Equator",
			point:   GeoPoint{Latitude: 0.0, Longitude: 0.0},
			wantErr: false,
		},
		{
			name:    "Valid coordinates - North Pole",
			point:   GeoPoint{Latitude: 90.0, Longitude: 0.0},
			wantErr: false,
		},
		{
			name:    "Valid coordinates - Date line",
			point:   GeoPoint{Latitude: 0.0, Longitude: -180.0},
			wantErr: false,
		},
		{
			name:    "Invalid latitude - too high",
			point:   GeoPoint{Latitude: 91.0, Longitude: 0.0},
			wantErr: true,
			errMsg:  "invalid latitude",
		},
		{
			name:    "Invalid latitude - too low",
			point:   GeoPoint{Latitude: -91.0, Longitude: 0.0},
			wantErr: true,
			errMsg:  "invalid latitude",
		},
		{
			name:    "Invalid longitude - too high",
			point:   GeoPoint{Latitude: 0.0, Longitude: 181.0},
			wantErr: true,
			errMsg:  "invalid longitude",
		},
		{
			name:    "Invalid longitude - too low",
			point:   GeoPoint{Latitude: 0.0, Longitude: -181.0},
			wantErr: true,
			errMsg:  "invalid longitude",
		},
		{
			name:    "Invalid latitude - NaN",
			point:   GeoPoint{Latitude: math.NaN(), Longitude: 0.0},
			wantErr: true,
			errMsg:  "latitude is not finite",
		},
		{
			name:    "Invalid longitude - Inf",
			point:   GeoPoint{Latitude: 0.0, Longitude: math.Inf(1)},
			wantErr: true,
			errMsg:  "longitude is not finite",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.point.Validate()

			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGeoPoint_DistanceTo(t *testing.T) {
	tests := []struct {
		name      string
		a         GeoPoint
		b         GeoPoint
		wantM     float64
		tolerance float64
	}{
		{
			name:      "Zero distance",
			a:         GeoPoint{Latitude: 60.0, Longitude: 2.0},
			b:         GeoPoint{Latitude: 60.0, Longitude: 2.0},
			wantM:     0.0,
			tolerance: 0.001,
		},
		{
			name:      "One milli-degree of latitude at equator",
			a:         GeoPoint{Latitude: 0.0, Longitude: 0.0},
			b:         GeoPoint{Latitude: 0.001, Longitude: 0.0},
			wantM:     111.2,
			tolerance: 1.0,
		},
		{
			name:      "Ekofisk to Sleipner",
			a:         GeoPoint{Latitude: 56.5464, Longitude: 3.2129},
			b:         GeoPoint{Latitude: 58.3672, Longitude: 1.9087},
			wantM:     217000.0,
			tolerance: 3000.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.DistanceTo(tt.b)
			assert.InDelta(t, tt.wantM, got, tt.tolerance)

			// Расстояние симметрично
			assert.InDelta(t, got, tt.b.DistanceTo(tt.a), 0.0001)
		})
	}
}

func TestGeoPoint_Geohash(t *testing.T) {
	p := GeoPoint{Latitude: 56.5464, Longitude: 3.2129}

	hash := p.Geohash(7)
	assert.Len(t, hash, 7)

	// Более короткий geohash является префиксом более длинного
	assert.Equal(t, hash[:5], p.Geohash(5))
}

func TestGeoPoint_JSONSerialization(t *testing.T) {
	p := GeoPoint{Latitude: 56.5464, Longitude: 3.2129}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"lat":56.5464,"lon":3.2129}`, string(data))

	var decoded GeoPoint
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, p, decoded)
}
