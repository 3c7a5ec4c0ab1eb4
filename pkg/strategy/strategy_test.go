//nolint:thelper,whitespace,lll,funlen,gocritic,dupl // ok for tests
package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/racesense/telemetry-strategy-go/pkg/ingest"
	"github.com/racesense/telemetry-strategy-go/pkg/model"
	"github.com/racesense/telemetry-strategy-go/pkg/processing"
)

func TestBuildRaceStrategy_DerivedRaceState(t *testing.T) {
	laps := cleanedLaps(90, 91, 92, 93)
	laps[1].IsPitLap = true
	points := []model.RawPoint{{CarNumber: 42, ChassisNumber: 7}}
	deg := CalculateTireDegradation(laps)

	s := BuildRaceStrategy(points, laps, deg, 0, 0)

	assert.Equal(t, 42, s.CarNumber)
	assert.Equal(t, 7, s.ChassisNumber)
	// zero inputs derive the race state from the data
	assert.Equal(t, 4, s.CurrentLap)
	assert.Equal(t, 4, s.TotalLaps)
	// racing laps only: the pit lap is excluded from the pace figures
	assert.InDelta(t, (90+92+93)/3.0, s.AverageLapTime, 1e-9)
	assert.Equal(t, 90.0, s.BestLapTime)
	assert.Len(t, s.PitRecommendations, 1)
	assert.Equal(t, 4, s.PitRecommendations[0].CurrentLap)
}

func TestBuildRaceStrategy_ExplicitRaceState(t *testing.T) {
	laps := cleanedLaps(90, 91, 92)
	s := BuildRaceStrategy(nil, laps, CalculateTireDegradation(laps), 2, 30)
	assert.Equal(t, 2, s.CurrentLap)
	assert.Equal(t, 30, s.TotalLaps)
	assert.Equal(t, 0, s.CarNumber)
}

func TestRecommendationForLap_VisibleWindow(t *testing.T) {
	laps := cleanedLaps(90, 90.5, 91, 91.5, 92, 92.5, 93, 93.5)
	s := BuildRaceStrategy(nil, laps, CalculateTireDegradation(laps), 8, 30)

	early := RecommendationForLap(&s, 3)
	// only 3 laps visible: not enough degradation samples yet
	assert.Contains(t, early.Reason, "Insufficient data")
	assert.Equal(t, 3, early.CurrentLap)

	late := RecommendationForLap(&s, 8)
	assert.Equal(t, 8, late.CurrentLap)
	assert.NotEmpty(t, late.Scenarios)
}

func TestBuildRaceStrategy_SampleRace(t *testing.T) {
	points, err := ingest.ParsePoints(ingest.GenerateSampleRace())
	assert.NoError(t, err)
	result := processing.NewProcessor().ProcessWithHealthCheck(points)
	deg := CalculateTireDegradation(result.Laps)
	// every lap except the pit stop qualifies for the tire model
	assert.Len(t, deg, ingest.SampleLaps-1)

	s := BuildRaceStrategy(points, result.Laps, deg, 0, 0)
	assert.Equal(t, ingest.SampleCarNumber, s.CarNumber)
	assert.Equal(t, ingest.SampleChassisNumber, s.ChassisNumber)
	assert.Equal(t, ingest.SampleLaps, s.TotalLaps)
	assert.Greater(t, s.BestLapTime, 0.0)
	assert.Less(t, s.BestLapTime, s.AverageLapTime)
	assert.Len(t, s.PitRecommendations, 1)
}
