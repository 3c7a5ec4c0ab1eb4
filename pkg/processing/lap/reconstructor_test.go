//nolint:thelper,whitespace,lll,funlen,gocritic,dupl // ok for tests
package lap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/racesense/telemetry-strategy-go/pkg/model"
)

func TestDetectCorruptLaps(t *testing.T) {
	points := []model.RawPoint{
		{Lap: 1}, {Lap: 2}, {Lap: 32768}, {Lap: -1}, {Lap: 1500}, {Lap: 32768},
	}
	assert.Equal(t, []int{32768, -1, 1500}, DetectCorruptLaps(points))
	assert.Nil(t, DetectCorruptLaps([]model.RawPoint{{Lap: 1}, {Lap: 2}}))
}

func TestReconstruct_TrustsCleanTelemetry(t *testing.T) {
	points := []model.RawPoint{
		{MetaTime: 0, Lap: 1}, {MetaTime: 100, Lap: 1}, {MetaTime: 200, Lap: 2},
	}
	ret, method := NewReconstructor().Reconstruct(points)
	assert.Equal(t, model.MethodTelemetry, method)
	assert.Equal(t, points, ret)
}

func TestReconstruct_TimeBased(t *testing.T) {
	// overflow sentinel with no GPS data: the time heuristic takes over
	points := []model.RawPoint{
		{MetaTime: 0, Lap: 1},
		{MetaTime: 100, Lap: 32768},
		{MetaTime: 200, Lap: 32768},
		// 90s gap exceeds 80% of the 100s expected lap: new lap opens
		{MetaTime: 90200, Lap: 32768},
		{MetaTime: 90300, Lap: 32768},
	}
	ret, method := NewReconstructor().Reconstruct(points)
	assert.Equal(t, model.MethodTimeBased, method)
	laps := make([]int, len(ret))
	for i := range ret {
		laps[i] = ret[i].Lap
		assert.NotEqual(t, 32768, ret[i].Lap)
	}
	assert.Equal(t, []int{1, 1, 1, 2, 2}, laps)
}

func TestReconstruct_TimeBasedSnapsToValidCounter(t *testing.T) {
	points := []model.RawPoint{
		{MetaTime: 0, Lap: 1},
		{MetaTime: 100, Lap: 32768},
		// plausible counter value appears again: snap to it
		{MetaTime: 200, Lap: 5},
		{MetaTime: 300, Lap: 32768},
	}
	ret, method := NewReconstructor().Reconstruct(points)
	assert.Equal(t, model.MethodTimeBased, method)
	assert.Equal(t, 5, ret[2].Lap)
	assert.Equal(t, 5, ret[3].Lap)
}

func TestReconstruct_GPSBased(t *testing.T) {
	outside := 30.2
	online := 30.1328
	mk := func(metaTime, lat float64) model.RawPoint {
		return model.RawPoint{
			MetaTime: metaTime, Lap: 32768, VboxLat: lat, VboxLong: -97.64,
		}
	}
	points := []model.RawPoint{
		mk(0, outside),
		mk(100, online), // first crossing
		mk(200, outside),
		mk(300, outside),
		mk(400, online), // second crossing
	}
	ret, method := NewReconstructor().Reconstruct(points)
	assert.Equal(t, model.MethodGpsBased, method)
	laps := make([]int, len(ret))
	for i := range ret {
		laps[i] = ret[i].Lap
	}
	assert.Equal(t, []int{1, 2, 2, 2, 3}, laps)
}

func TestReconstruct_GPSBasedCustomLine(t *testing.T) {
	r := NewReconstructor(WithStartFinishLine(48.5, 0.01))
	points := []model.RawPoint{
		{MetaTime: 0, Lap: 32768, VboxLat: 48.7, VboxLong: 9.2},
		{MetaTime: 100, Lap: 32768, VboxLat: 48.5, VboxLong: 9.2},
	}
	ret, method := r.Reconstruct(points)
	assert.Equal(t, model.MethodGpsBased, method)
	assert.Equal(t, 2, ret[1].Lap)
}

func TestIntegrityReport(t *testing.T) {
	original := []model.RawPoint{{Lap: 1}, {Lap: 32768}, {Lap: 2}}
	reconstructed := []model.RawPoint{{Lap: 1}, {Lap: 1}, {Lap: 2}}

	report := IntegrityReport(original, reconstructed, model.MethodTimeBased)
	assert.Equal(t, 2, report.TotalLaps)
	assert.Equal(t, []int{32768}, report.CorruptedLaps)
	assert.Equal(t, []int{1}, report.ReconstructedLaps)
	assert.Equal(t, model.MethodTimeBased, report.LapDetectionMethod)
	assert.InDelta(t, 0.5, report.Confidence, 1e-9)
}

func TestIntegrityReport_CleanData(t *testing.T) {
	points := []model.RawPoint{{Lap: 1}, {Lap: 2}}
	report := IntegrityReport(points, points, model.MethodTelemetry)
	assert.Empty(t, report.CorruptedLaps)
	assert.Empty(t, report.ReconstructedLaps)
	assert.Equal(t, 1.0, report.Confidence)
}
