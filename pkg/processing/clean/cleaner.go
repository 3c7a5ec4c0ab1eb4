package clean

import (
	"github.com/racesense/telemetry-strategy-go/pkg/model"
)

// Physically plausible channel bounds.
const (
	maxSpeed      = 200.0 // km/h, beyond any plausible GT pace
	maxGear       = 6
	maxEngineRpm  = 15000.0
	maxPosition   = 100.0 // throttle/pedal percent
	maxBrakeBar   = 200.0
	maxAccelG     = 5.0
	maxSteeringDg = 900.0
)

func clampValue(value, minVal, maxVal float64) float64 {
	return max(minVal, min(maxVal, value))
}

// Speed removes impossible values entirely instead of clamping: a spiked
// sensor reading carries no information about the real speed.
func Speed(speed float64) float64 {
	if speed < 0 || speed > maxSpeed {
		return 0
	}
	return speed
}

// firstNonZero evaluates the candidate values in priority order. Zero counts
// as absent so legacy exports fall through to their alias channels.
func firstNonZero(candidates ...float64) float64 {
	for _, c := range candidates {
		if c != 0 {
			return c
		}
	}
	return 0
}

// Point clamps all sensor channels of one sample and substitutes legacy
// field aliases (rpm/throttle/brake/steering era exports). A combined legacy
// brake value is split evenly between front and rear. The logger clock is
// the single authoritative timestamp.
func Point(p *model.RawPoint) model.CleanedPoint {
	return model.CleanedPoint{
		Time:          p.MetaTime,
		Speed:         Speed(p.Speed),
		Gear:          max(0, min(maxGear, p.Gear)),
		Nmot:          clampValue(firstNonZero(p.Nmot, p.Rpm), 0, maxEngineRpm),
		Ath:           clampValue(firstNonZero(p.Ath, p.Throttle), 0, maxPosition),
		Aps:           clampValue(firstNonZero(p.Aps, p.Throttle), 0, maxPosition),
		PbrakeF:       clampValue(firstNonZero(p.PbrakeF, p.Brake/2), 0, maxBrakeBar),
		PbrakeR:       clampValue(firstNonZero(p.PbrakeR, p.Brake/2), 0, maxBrakeBar),
		AccxCan:       clampValue(p.AccxCan, -maxAccelG, maxAccelG),
		AccyCan:       clampValue(p.AccyCan, -maxAccelG, maxAccelG),
		SteeringAngle: clampValue(firstNonZero(p.SteeringAngle, p.Steering), -maxSteeringDg, maxSteeringDg),
		VboxLong:      firstNonZero(p.VboxLong, p.Longitude),
		VboxLat:       firstNonZero(p.VboxLat, p.Latitude),
		LapDist:       p.LapDist,
	}
}

// SmoothValues applies a centered moving average to a noisy channel.
func SmoothValues(values []float64, windowSize int) []float64 {
	if windowSize <= 0 {
		windowSize = 3
	}
	half := windowSize / 2
	smoothed := make([]float64, len(values))
	for i := range values {
		start := max(0, i-half)
		end := min(len(values), i+half+1)
		sum := 0.0
		for _, v := range values[start:end] {
			sum += v
		}
		smoothed[i] = sum / float64(end-start)
	}
	return smoothed
}
