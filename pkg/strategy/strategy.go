package strategy

import (
	"github.com/samber/lo"

	"github.com/racesense/telemetry-strategy-go/pkg/model"
)

// BuildRaceStrategy assembles the consumer-facing aggregate from the
// processed laps and the degradation series. totalLaps == 0 derives the race
// distance from the data, currentLap == 0 selects the final observed lap.
func BuildRaceStrategy(
	points []model.RawPoint,
	laps []model.CleanedLap,
	tireDeg []model.TireDegradation,
	currentLap, totalLaps int,
) model.RaceStrategy {
	racing := racingLaps(laps)

	avgLapTime := 0.0
	bestLapTime := 0.0
	if len(racing) > 0 {
		avgLapTime = lo.SumBy(racing, func(l model.CleanedLap) float64 {
			return l.LapTime
		}) / float64(len(racing))
		bestLapTime = lo.MinBy(racing, func(a, b model.CleanedLap) bool {
			return a.LapTime < b.LapTime
		}).LapTime
	}

	maxLap := 0
	for _, l := range laps {
		if l.LapNumber > maxLap {
			maxLap = l.LapNumber
		}
	}
	if totalLaps <= 0 {
		totalLaps = maxLap
	}
	if currentLap <= 0 {
		currentLap = maxLap
	}

	carNumber := 0
	chassisNumber := 0
	if len(points) > 0 {
		carNumber = points[0].CarNumber
		chassisNumber = points[0].ChassisNumber
	}

	ret := model.RaceStrategy{
		CarNumber:       carNumber,
		ChassisNumber:   chassisNumber,
		CurrentLap:      currentLap,
		TotalLaps:       totalLaps,
		Laps:            laps,
		TireDegradation: tireDeg,
		AverageLapTime:  avgLapTime,
		BestLapTime:     bestLapTime,
	}
	ret.PitRecommendations = []model.PitRecommendation{
		RecommendationForLap(&ret, currentLap),
	}
	return ret
}

// RecommendationForLap recomputes the pit recommendation for a visible-lap
// window: only laps and degradation data up to the given lap are considered,
// as a dashboard advancing through the race would see them.
func RecommendationForLap(s *model.RaceStrategy, currentLap int) model.PitRecommendation {
	visibleLaps := lo.Filter(s.Laps, func(l model.CleanedLap, _ int) bool {
		return l.LapNumber <= currentLap
	})
	visibleDeg := lo.Filter(s.TireDegradation,
		func(d model.TireDegradation, _ int) bool {
			return d.LapNumber <= currentLap
		})
	return CalculatePitRecommendation(currentLap, visibleLaps, visibleDeg, s.TotalLaps)
}
