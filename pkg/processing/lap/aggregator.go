package lap

import (
	"slices"

	"github.com/samber/lo"

	"github.com/racesense/telemetry-strategy-go/pkg/model"
	"github.com/racesense/telemetry-strategy-go/pkg/processing/clean"
)

// minPointsPerLap: smaller groups are reconstruction artifacts, not laps.
const minPointsPerLap = 10

// pit lap heuristics: abnormally low average speed or abnormally long lap
const (
	pitAvgSpeedThreshold = 60.0  // km/h
	pitLapTimeThreshold  = 180.0 // seconds
)

// Aggregate groups cleaned, lap-reconstructed points into per-lap summary
// records, sorted ascending by lap number. Arrival order is preserved within
// each group.
func Aggregate(points []model.RawPoint) []model.CleanedLap {
	groups := make(map[int][]*model.RawPoint)
	var lapOrder []int
	for i := range points {
		lap := points[i].Lap
		if _, ok := groups[lap]; !ok {
			lapOrder = append(lapOrder, lap)
		}
		groups[lap] = append(groups[lap], &points[i])
	}

	laps := make([]model.CleanedLap, 0, len(lapOrder))
	for _, lapNumber := range lapOrder {
		group := groups[lapNumber]
		if len(group) < minPointsPerLap {
			continue
		}
		cleaned := lo.Map(group, func(p *model.RawPoint, _ int) model.CleanedPoint {
			return clean.Point(p)
		})

		lapTime := (cleaned[len(cleaned)-1].Time - cleaned[0].Time) / 1000
		avgSpeed := lo.SumBy(cleaned, func(p model.CleanedPoint) float64 {
			return p.Speed
		}) / float64(len(cleaned))
		maxSpeed := lo.MaxBy(cleaned, func(a, b model.CleanedPoint) bool {
			return a.Speed > b.Speed
		}).Speed

		laps = append(laps, model.CleanedLap{
			LapNumber:       lapNumber,
			CarNumber:       group[0].CarNumber,
			ChassisNumber:   group[0].ChassisNumber,
			LapTime:         lapTime,
			AvgSpeed:        avgSpeed,
			MaxSpeed:        maxSpeed,
			TelemetryPoints: cleaned,
			IsPitLap: avgSpeed < pitAvgSpeedThreshold ||
				lapTime > pitLapTimeThreshold,
		})
	}

	slices.SortFunc(laps, func(a, b model.CleanedLap) int {
		return a.LapNumber - b.LapNumber
	})
	return laps
}
