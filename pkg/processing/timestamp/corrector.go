package timestamp

import (
	"math"

	"github.com/racesense/telemetry-strategy-go/pkg/model"
)

const (
	// minSamples is the minimum number of points for drift detection.
	minSamples = 10
	// reAnchorThreshold triggers a rolling baseline recomputation (ms).
	reAnchorThreshold = 100.0
	// confidenceScale maps drift magnitude to a 0-1 confidence.
	confidenceScale = 1000.0
	// reAnchorWindow is the trailing sample count for the mean offset.
	reAnchorWindow = 6
)

// AnalyzeDrift detects drift of the device clock against the logger clock.
// The logger clock (meta time) is ground truth; the baseline offset between
// the two clocks is re-anchored over a trailing window whenever the observed
// drift exceeds the threshold. Fewer than 10 samples yields no corrections.
func AnalyzeDrift(points []model.RawPoint) []model.TimestampCorrection {
	if len(points) < minSamples {
		return nil
	}

	corrections := make([]model.TimestampCorrection, 0, len(points))
	baselineOffset := points[0].MetaTime - points[0].EcuTime

	for i := range points {
		expectedEcuTime := points[i].MetaTime - baselineOffset
		drift := expectedEcuTime - points[i].EcuTime

		if math.Abs(drift) > reAnchorThreshold && i > 0 {
			// rolling re-anchor instead of a one-shot jump
			start := max(0, i-(reAnchorWindow-1))
			sum := 0.0
			for _, p := range points[start : i+1] {
				sum += p.MetaTime - p.EcuTime
			}
			baselineOffset = sum / float64(i+1-start)
		}

		confidence := math.Max(0, math.Min(1, 1-math.Abs(drift)/confidenceScale))
		corrections = append(corrections, model.TimestampCorrection{
			OriginalEcuTime:    points[i].EcuTime,
			CorrectedTimestamp: points[i].MetaTime, // always trust the logger clock
			DriftOffset:        drift,
			Confidence:         confidence,
		})
	}
	return corrections
}

// DriftPercentage is a coarse normalized drift measure: mean absolute drift
// over the final corrected timestamp, in percent.
func DriftPercentage(corrections []model.TimestampCorrection) float64 {
	if len(corrections) == 0 {
		return 0
	}
	totalDrift := 0.0
	for _, c := range corrections {
		totalDrift += math.Abs(c.DriftOffset)
	}
	avgDrift := totalDrift / float64(len(corrections))
	maxExpectedTime := corrections[len(corrections)-1].CorrectedTimestamp
	if maxExpectedTime == 0 {
		return 0
	}
	return avgDrift / maxExpectedTime * 100
}

// ApplyCorrections returns a copy of the sequence with the device clock
// replaced by the corrected timestamp.
func ApplyCorrections(
	points []model.RawPoint,
	corrections []model.TimestampCorrection,
) []model.RawPoint {
	ret := make([]model.RawPoint, len(points))
	for i, p := range points {
		if i < len(corrections) && corrections[i].CorrectedTimestamp != 0 {
			p.EcuTime = corrections[i].CorrectedTimestamp
		} else {
			p.EcuTime = p.MetaTime
		}
		ret[i] = p
	}
	return ret
}
