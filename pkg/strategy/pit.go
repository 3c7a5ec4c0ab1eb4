package strategy

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/racesense/telemetry-strategy-go/pkg/model"
)

const (
	// pitLossTime is the fixed time lost to a pit stop (seconds).
	pitLossTime = 25.0
	// tireChangeBenefit is the initial lap time gain on fresh tires.
	tireChangeBenefit = 2.5
	// degradationThreshold drives the urgency tiers (s/lap).
	degradationThreshold = 0.3
	// minDegradationPoints gates the scenario search.
	minDegradationPoints = 5
	// recentWindow is the trailing degradation entries used for scoring.
	recentWindow = 3

	// scenario sweep shape: candidates from the next lap up to 15 ahead,
	// stepping 2, never pitting inside the final 5 laps
	sweepHorizon    = 15
	sweepStep       = 2
	sweepFinalGuard = 5

	// defaultBaselineLapTime when no racing lap is available (seconds).
	defaultBaselineLapTime = 90.0
)

// CalculatePitRecommendation evaluates candidate pit laps against the
// current degradation trend and returns the ranked scenario list with an
// urgency signal. Always produces a best-effort answer; insufficient data
// degrades to a placeholder recommendation, never an error.
func CalculatePitRecommendation(
	currentLap int,
	laps []model.CleanedLap,
	tireDeg []model.TireDegradation,
	totalRaceLaps int,
) model.PitRecommendation {
	if len(tireDeg) < minDegradationPoints {
		return model.PitRecommendation{
			RecommendedLap: currentLap + 10,
			CurrentLap:     currentLap,
			Reason:         "Insufficient data - building tire model...",
			TimeSaving:     0,
			Urgency:        model.UrgencyLow,
			Scenarios:      []model.PitScenario{},
		}
	}

	avgDegRate := recentDegradationRate(tireDeg)
	scenarios := calculatePitScenarios(currentLap, totalRaceLaps, avgDegRate, laps)

	// race ending soon, no candidate window left
	if len(scenarios) == 0 {
		return model.PitRecommendation{
			RecommendedLap: totalRaceLaps,
			CurrentLap:     currentLap,
			Reason:         "Race ending - stay out and push to the finish!",
			TimeSaving:     0,
			Urgency:        model.UrgencyLow,
			Scenarios:      []model.PitScenario{},
		}
	}

	// rank by total time; the stable sort keeps the earlier pit lap in
	// front on equal times, which is the tie-break contract
	sort.SliceStable(scenarios, func(i, j int) bool {
		return scenarios[i].TotalTime < scenarios[j].TotalTime
	})
	optimal := scenarios[0]

	urgency := model.UrgencyLow
	switch {
	case avgDegRate > degradationThreshold*2:
		urgency = model.UrgencyHigh
	case avgDegRate > degradationThreshold:
		urgency = model.UrgencyMedium
	}

	noStop := projectNoStopScenario(currentLap, totalRaceLaps, avgDegRate, laps)
	timeSaving := noStop.TotalTime - optimal.TotalTime

	var reason string
	switch {
	case optimal.PitLap <= currentLap+2:
		reason = fmt.Sprintf(
			"Pit NOW! Tires degrading at %.3fs/lap. Expected to save %.1fs.",
			avgDegRate, timeSaving)
	case optimal.PitLap <= currentLap+5:
		reason = fmt.Sprintf(
			"Pit in %d laps. Tire deg accelerating. Save %.1fs vs no-stop.",
			optimal.PitLap-currentLap, timeSaving)
	default:
		reason = fmt.Sprintf(
			"Stay out. Optimal window: Lap %d. Current deg: %.3fs/lap.",
			optimal.PitLap, avgDegRate)
	}

	return model.PitRecommendation{
		RecommendedLap: optimal.PitLap,
		CurrentLap:     currentLap,
		Reason:         reason,
		TimeSaving:     timeSaving,
		Urgency:        urgency,
		Scenarios:      scenarios,
	}
}

// recentDegradationRate is the mean rate over the trailing window.
func recentDegradationRate(tireDeg []model.TireDegradation) float64 {
	recent := tireDeg[max(0, len(tireDeg)-recentWindow):]
	rates := make([]float64, len(recent))
	for i, d := range recent {
		rates[i] = d.DegradationRate
	}
	return stat.Mean(rates, nil)
}

// calculatePitScenarios sweeps discrete candidate pit laps in ascending
// order: linear degradation accrual on the old set, a fixed pit loss, and a
// decaying fresh tire benefit with reduced degradation on the new set.
func calculatePitScenarios(
	currentLap, totalLaps int,
	degradationRate float64,
	laps []model.CleanedLap,
) []model.PitScenario {
	scenarios := []model.PitScenario{}
	baseline := baselineLapTime(laps)

	lastCandidate := min(currentLap+sweepHorizon, totalLaps-sweepFinalGuard)
	for pitLap := currentLap + 1; pitLap <= lastCandidate; pitLap += sweepStep {
		lapsOnOldTires := pitLap - currentLap
		timeOnOldTires := 0.0
		for i := 0; i < lapsOnOldTires; i++ {
			timeOnOldTires += baseline + degradationRate*float64(currentLap+i-1)
		}

		lapsOnNewTires := totalLaps - pitLap
		timeOnNewTires := 0.0
		for i := 0; i < lapsOnNewTires; i++ {
			freshBenefit := math.Max(0,
				tireChangeBenefit-float64(i)*degradationRate*0.5)
			timeOnNewTires += baseline - freshBenefit +
				degradationRate*float64(i)*0.3
		}

		scenarios = append(scenarios, model.PitScenario{
			PitLap:    pitLap,
			TotalTime: timeOnOldTires + pitLossTime + timeOnNewTires,
			Description: fmt.Sprintf(
				"Pit lap %d: %d laps old tires, %d laps fresh tires",
				pitLap, lapsOnOldTires, lapsOnNewTires),
		})
	}
	return scenarios
}

// projectNoStopScenario applies the same linear degradation accrual with no
// pit event. Serves as the baseline for the time saving estimate.
func projectNoStopScenario(
	currentLap, totalLaps int,
	degradationRate float64,
	laps []model.CleanedLap,
) model.PitScenario {
	baseline := baselineLapTime(laps)
	totalTime := 0.0
	for i := 0; i < totalLaps-currentLap; i++ {
		totalTime += baseline + degradationRate*float64(currentLap+i)
	}
	return model.PitScenario{
		PitLap:      -1,
		TotalTime:   totalTime,
		Description: "No pit stop - run to end on current tires",
	}
}

// baselineLapTime is the average of the best three racing laps.
func baselineLapTime(laps []model.CleanedLap) float64 {
	racing := racingLaps(laps)
	if len(racing) == 0 {
		return defaultBaselineLapTime
	}
	sort.Slice(racing, func(i, j int) bool {
		return racing[i].LapTime < racing[j].LapTime
	})
	best := racing[:min(3, len(racing))]
	sum := 0.0
	for _, l := range best {
		sum += l.LapTime
	}
	return sum / float64(len(best))
}

// AnalyzeUndercutOpportunity flags an undercut when the competitor's tires
// degrade markedly faster than ours. No-op without competitor data or with
// fewer than 3 own degradation points.
func AnalyzeUndercutOpportunity(
	myTireDeg, competitorTireDeg []model.TireDegradation,
) model.UndercutAnalysis {
	if len(competitorTireDeg) == 0 || len(myTireDeg) < recentWindow {
		return model.UndercutAnalysis{
			Description: "Insufficient data for undercut analysis",
		}
	}

	sumRate := func(deg []model.TireDegradation) float64 {
		sum := 0.0
		for _, d := range deg[max(0, len(deg)-recentWindow):] {
			sum += d.DegradationRate
		}
		return sum
	}
	myRate := sumRate(myTireDeg) / recentWindow
	compRate := sumRate(competitorTireDeg) / recentWindow

	if compRate <= myRate*1.2 {
		return model.UndercutAnalysis{
			Description: "No clear undercut opportunity",
		}
	}
	return model.UndercutAnalysis{
		HasOpportunity: true,
		Advantage:      (compRate - myRate) * 3,
		Description: fmt.Sprintf(
			"Undercut available! Competitor deg: %.3fs/lap vs yours: %.3fs/lap",
			compRate, myRate),
	}
}
