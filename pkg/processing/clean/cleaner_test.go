//nolint:thelper,whitespace,lll,funlen,gocritic,dupl // ok for tests
package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/racesense/telemetry-strategy-go/pkg/model"
)

func TestSpeed(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "plausible", in: 150, want: 150},
		{name: "negative zeroed", in: -10, want: 0},
		{name: "spike zeroed", in: 250, want: 0},
		{name: "boundary kept", in: 200, want: 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Speed(tt.in))
		})
	}
}

func TestPoint_Clamps(t *testing.T) {
	p := model.RawPoint{
		MetaTime:      5000,
		Speed:         250, // spike
		Gear:          8,
		Nmot:          20000,
		Ath:           120,
		Aps:           -5,
		PbrakeF:       300,
		PbrakeR:       50,
		AccxCan:       7,
		AccyCan:       -9,
		SteeringAngle: 1200,
	}
	c := Point(&p)
	assert.Equal(t, 5000.0, c.Time)
	assert.Equal(t, 0.0, c.Speed)
	assert.Equal(t, 6, c.Gear)
	assert.Equal(t, 15000.0, c.Nmot)
	assert.Equal(t, 100.0, c.Ath)
	assert.Equal(t, 0.0, c.Aps)
	assert.Equal(t, 200.0, c.PbrakeF)
	assert.Equal(t, 50.0, c.PbrakeR)
	assert.Equal(t, 5.0, c.AccxCan)
	assert.Equal(t, -5.0, c.AccyCan)
	assert.Equal(t, 900.0, c.SteeringAngle)
}

func TestPoint_LegacyAliases(t *testing.T) {
	p := model.RawPoint{
		MetaTime: 1000,
		Rpm:      9000,
		Throttle: 55,
		Brake:    100,
		Steering: -120,
		Latitude: 30.1,
	}
	c := Point(&p)
	assert.Equal(t, 9000.0, c.Nmot)
	assert.Equal(t, 55.0, c.Ath)
	assert.Equal(t, 55.0, c.Aps)
	// combined legacy brake splits evenly between the axles
	assert.Equal(t, 50.0, c.PbrakeF)
	assert.Equal(t, 50.0, c.PbrakeR)
	assert.Equal(t, -120.0, c.SteeringAngle)
	assert.Equal(t, 30.1, c.VboxLat)
}

func TestPoint_ModernFieldsWin(t *testing.T) {
	p := model.RawPoint{Nmot: 6000, Rpm: 9000, Ath: 40, Throttle: 80}
	c := Point(&p)
	assert.Equal(t, 6000.0, c.Nmot)
	assert.Equal(t, 40.0, c.Ath)
}

func TestSmoothValues(t *testing.T) {
	smoothed := SmoothValues([]float64{0, 3, 6}, 3)
	assert.InDelta(t, 1.5, smoothed[0], 1e-9)
	assert.InDelta(t, 3.0, smoothed[1], 1e-9)
	assert.InDelta(t, 4.5, smoothed[2], 1e-9)

	// invalid window falls back to 3
	assert.Equal(t, smoothed, SmoothValues([]float64{0, 3, 6}, 0))
	assert.Empty(t, SmoothValues(nil, 3))
}
