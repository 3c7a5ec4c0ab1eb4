package lap

import (
	"math"

	"github.com/racesense/telemetry-strategy-go/log"
	"github.com/racesense/telemetry-strategy-go/pkg/model"
)

const (
	// lapOverflowSentinel is the well-known 16 bit ECU counter overflow.
	lapOverflowSentinel = 32768
	// corruptLapThreshold: real sessions never exceed a few hundred laps.
	corruptLapThreshold = 1000

	// DefaultExpectedLapTime is a per-track tunable baseline (seconds).
	DefaultExpectedLapTime = 100.0
	// DefaultStartFinishLatitude is circuit specific (COTA), configurable.
	DefaultStartFinishLatitude = 30.1328
	// DefaultStartFinishTolerance approximates a 100m band in position units.
	DefaultStartFinishTolerance = 0.001
)

// Reconstructor rebuilds lap boundaries when the raw lap counter is corrupt.
type Reconstructor struct {
	expectedLapTime      float64 // seconds
	startFinishLatitude  float64
	startFinishTolerance float64
	l                    *log.Logger
}

type Option func(r *Reconstructor)

func WithExpectedLapTime(seconds float64) Option {
	return func(r *Reconstructor) {
		if seconds > 0 {
			r.expectedLapTime = seconds
		}
	}
}

func WithStartFinishLine(latitude, tolerance float64) Option {
	return func(r *Reconstructor) {
		if latitude != 0 {
			r.startFinishLatitude = latitude
		}
		if tolerance > 0 {
			r.startFinishTolerance = tolerance
		}
	}
}

func NewReconstructor(opts ...Option) *Reconstructor {
	r := &Reconstructor{
		expectedLapTime:      DefaultExpectedLapTime,
		startFinishLatitude:  DefaultStartFinishLatitude,
		startFinishTolerance: DefaultStartFinishTolerance,
		l:                    log.Default().Named("processing.lap"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func isCorruptLap(lap int) bool {
	return lap == lapOverflowSentinel || lap < 0 || lap > corruptLapThreshold
}

// DetectCorruptLaps returns the distinct corrupt counter values in first-seen
// order.
func DetectCorruptLaps(points []model.RawPoint) []int {
	seen := make(map[int]bool)
	var corrupt []int
	for i := range points {
		if isCorruptLap(points[i].Lap) && !seen[points[i].Lap] {
			seen[points[i].Lap] = true
			corrupt = append(corrupt, points[i].Lap)
		}
	}
	return corrupt
}

// Reconstruct picks the best available method: trusted telemetry when no
// counter value is corrupt, GPS crossings when position data exists, time
// gaps otherwise. Exactly one method runs per pass.
func (r *Reconstructor) Reconstruct(
	points []model.RawPoint,
) ([]model.RawPoint, model.DetectionMethod) {
	corrupt := DetectCorruptLaps(points)
	if len(corrupt) == 0 {
		return points, model.MethodTelemetry
	}
	r.l.Debug("corrupt lap counters detected",
		log.Int("count", len(corrupt)),
		log.Any("values", corrupt))

	if hasGPSData(points) {
		return r.reconstructGPSBased(points), model.MethodGpsBased
	}
	return r.reconstructTimeBased(points), model.MethodTimeBased
}

func hasGPSData(points []model.RawPoint) bool {
	for i := range points {
		if points[i].VboxLat != 0 && points[i].VboxLong != 0 {
			return true
		}
	}
	return false
}

// reconstructTimeBased keeps a running lap counter: a large gap since the
// previous point opens a new lap, and any plausible telemetry value snaps the
// counter back to it. Telemetry is trusted when it is sane; the heuristic
// only fills the gaps when it is not.
func (r *Reconstructor) reconstructTimeBased(points []model.RawPoint) []model.RawPoint {
	if len(points) == 0 {
		return nil
	}
	ret := make([]model.RawPoint, len(points))
	currentLap := 1
	lastValidLap := 1
	lastTime := points[0].MetaTime
	expectedLapMs := r.expectedLapTime * 1000

	for i, p := range points {
		timeSinceLastPoint := p.MetaTime - lastTime
		isLapBoundary := timeSinceLastPoint > expectedLapMs*0.8 ||
			(p.Lap > lastValidLap && p.Lap < corruptLapThreshold)
		if isLapBoundary && i > 0 {
			currentLap++
		}
		if p.Lap > 0 && p.Lap < corruptLapThreshold {
			currentLap = p.Lap
			lastValidLap = p.Lap
		}
		p.Lap = currentLap
		ret[i] = p
		lastTime = p.MetaTime
	}
	return ret
}

// reconstructGPSBased increments the lap whenever the latitude enters the
// start/finish tolerance band from outside it.
func (r *Reconstructor) reconstructGPSBased(points []model.RawPoint) []model.RawPoint {
	if len(points) == 0 {
		return nil
	}
	ret := make([]model.RawPoint, len(points))
	currentLap := 1
	lastLat := points[0].VboxLat

	for i, p := range points {
		crossedLine := p.VboxLat != 0 &&
			math.Abs(p.VboxLat-r.startFinishLatitude) < r.startFinishTolerance &&
			math.Abs(lastLat-r.startFinishLatitude) > r.startFinishTolerance
		if crossedLine && i > 0 {
			currentLap++
		}
		lastLat = p.VboxLat
		p.Lap = currentLap
		ret[i] = p
	}
	return ret
}

// IntegrityReport compares the original and reconstructed sequences.
// Reconstructed laps are the distinct lap numbers that differ at the same
// index.
func IntegrityReport(
	original, reconstructed []model.RawPoint,
	method model.DetectionMethod,
) model.LapIntegrityReport {
	corrupted := DetectCorruptLaps(original)

	seen := make(map[int]bool)
	reconstructedLaps := []int{}
	totalLaps := 0
	for i := range reconstructed {
		if reconstructed[i].Lap > totalLaps {
			totalLaps = reconstructed[i].Lap
		}
		if i < len(original) && original[i].Lap != reconstructed[i].Lap &&
			!seen[reconstructed[i].Lap] {
			seen[reconstructed[i].Lap] = true
			reconstructedLaps = append(reconstructedLaps, reconstructed[i].Lap)
		}
	}

	denom := totalLaps
	if denom == 0 {
		denom = 1
	}
	confidence := 1 - float64(len(corrupted))/float64(denom)
	if corrupted == nil {
		corrupted = []int{}
	}
	return model.LapIntegrityReport{
		TotalLaps:          totalLaps,
		CorruptedLaps:      corrupted,
		ReconstructedLaps:  reconstructedLaps,
		LapDetectionMethod: method,
		Confidence:         math.Max(0, math.Min(1, confidence)),
	}
}
