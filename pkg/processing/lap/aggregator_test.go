//nolint:thelper,whitespace,lll,funlen,gocritic,dupl // ok for tests
package lap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/racesense/telemetry-strategy-go/pkg/model"
)

// lapPoints builds n points on one lap, spaced stepMs apart.
func lapPoints(lapNumber, n int, startMs, stepMs, speed float64) []model.RawPoint {
	points := make([]model.RawPoint, n)
	for i := range points {
		points[i] = model.RawPoint{
			MetaTime:      startMs + float64(i)*stepMs,
			Lap:           lapNumber,
			CarNumber:     42,
			ChassisNumber: 7,
			Speed:         speed,
		}
	}
	return points
}

func TestAggregate_Basics(t *testing.T) {
	points := lapPoints(1, 12, 0, 1000, 100)
	points[5].Speed = 140 // single fast sample

	laps := Aggregate(points)
	assert.Len(t, laps, 1)
	lap := laps[0]
	assert.Equal(t, 1, lap.LapNumber)
	assert.Equal(t, 42, lap.CarNumber)
	assert.Equal(t, 7, lap.ChassisNumber)
	assert.InDelta(t, 11.0, lap.LapTime, 1e-9) // first to last point, seconds
	assert.Equal(t, 140.0, lap.MaxSpeed)
	assert.InDelta(t, (11*100.0+140)/12, lap.AvgSpeed, 1e-9)
	assert.Len(t, lap.TelemetryPoints, 12)
	assert.False(t, lap.IsPitLap)
}

func TestAggregate_DropsSparseGroups(t *testing.T) {
	points := append(lapPoints(1, 12, 0, 1000, 100),
		lapPoints(2, 5, 20000, 1000, 100)...)
	laps := Aggregate(points)
	assert.Len(t, laps, 1)
	assert.Equal(t, 1, laps[0].LapNumber)
}

func TestAggregate_PitLapFlags(t *testing.T) {
	tests := []struct {
		name   string
		points []model.RawPoint
		isPit  bool
	}{
		{
			name:   "slow average speed",
			points: lapPoints(1, 12, 0, 1000, 45),
			isPit:  true,
		},
		{
			name:   "long lap time",
			points: lapPoints(1, 12, 0, 20000, 100), // 220s span
			isPit:  true,
		},
		{
			name:   "regular lap",
			points: lapPoints(1, 12, 0, 1000, 100),
			isPit:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			laps := Aggregate(tt.points)
			assert.Len(t, laps, 1)
			assert.Equal(t, tt.isPit, laps[0].IsPitLap)
		})
	}
}

func TestAggregate_SortedAscending(t *testing.T) {
	points := append(lapPoints(3, 12, 240000, 1000, 100),
		lapPoints(1, 12, 0, 1000, 100)...)
	points = append(points, lapPoints(2, 12, 120000, 1000, 100)...)

	laps := Aggregate(points)
	assert.Len(t, laps, 3)
	assert.Equal(t, 1, laps[0].LapNumber)
	assert.Equal(t, 2, laps[1].LapNumber)
	assert.Equal(t, 3, laps[2].LapNumber)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}
