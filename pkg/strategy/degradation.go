package strategy

import (
	"math"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/racesense/telemetry-strategy-go/log"
	"github.com/racesense/telemetry-strategy-go/pkg/model"
)

const (
	// minRacingLaps is the minimum lap count for the degradation model.
	minRacingLaps = 3
	// degradationWindow is the trailing lap window for the rate estimate.
	degradationWindow = 3
	// maxPlausibleLapTime: longer laps are measurement artifacts.
	maxPlausibleLapTime = 200.0
	// confidenceSpread maps lap time scatter to a 0-1 confidence.
	confidenceSpread = 5.0
)

// racingLaps filters out pit laps and implausible lap times.
func racingLaps(laps []model.CleanedLap) []model.CleanedLap {
	return lo.Filter(laps, func(l model.CleanedLap, _ int) bool {
		return !l.IsPitLap && l.LapTime > 0 && l.LapTime < maxPlausibleLapTime
	})
}

// CalculateTireDegradation estimates the per-lap pace loss over a short
// trailing window. Tighter lap time clustering yields higher confidence.
// Fewer than 3 qualifying laps produce no output.
func CalculateTireDegradation(laps []model.CleanedLap) []model.TireDegradation {
	racing := racingLaps(laps)
	if len(racing) < minRacingLaps {
		return nil
	}

	baseline := math.Inf(1)
	for _, l := range racing[:minRacingLaps] {
		baseline = math.Min(baseline, l.LapTime)
	}
	log.Default().Named("strategy.degradation").Debug("baseline pace",
		log.Float64("baseline", baseline),
		log.Int("racingLaps", len(racing)))

	degradation := make([]model.TireDegradation, 0, len(racing))
	for i, l := range racing {
		window := racing[max(0, i-(degradationWindow-1)) : i+1]
		windowTimes := lo.Map(window, func(w model.CleanedLap, _ int) float64 {
			return w.LapTime
		})

		// slope of the trailing window: pace lost per lap
		degRate := 0.0
		if len(window) > 1 {
			degRate = (l.LapTime - windowTimes[0]) / float64(len(window)-1)
		}

		confidence := math.Max(0, math.Min(1,
			1-stat.PopStdDev(windowTimes, nil)/confidenceSpread))

		degradation = append(degradation, model.TireDegradation{
			LapNumber:        l.LapNumber,
			LapTime:          l.LapTime,
			DegradationRate:  degRate,
			PredictedNextLap: l.LapTime + degRate,
			Confidence:       confidence,
		})
	}
	return degradation
}
