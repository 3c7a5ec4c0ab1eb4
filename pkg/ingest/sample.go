package ingest

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

// Sample race parameters (Circuit of the Americas, GR Cup style).
const (
	SampleLaps          = 35
	SampleCarNumber     = 42
	SampleChassisNumber = 7
	SamplePitLap        = 18

	sampleBaselineLapTime = 128.5 // seconds
	sampleTireDegPerLap   = 0.08  // seconds per lap
	samplePitTimeLoss     = 55.0  // seconds spent in the pit lane
	samplePointsPerLap    = 120   // ~1Hz sampling
	sampleTrackLength     = 5513.0
	sampleSFLatitude      = 30.1328
	sampleSFLongitude     = -97.6411
)

// GenerateSampleRace produces a synthetic race CSV: realistic speed profiles,
// a pit stop on lap 18, steady tire degradation and jittered logger timestamps.
// The shape is deterministic (fixed seed) so the pipeline tests can rely on it.
func GenerateSampleRace() string {
	rng := rand.New(rand.NewPCG(7, 42))
	var sb strings.Builder
	sb.WriteString("meta_time,ecu_time,lap,car_number,chassis_number," +
		"Speed,Gear,nmot,ath,aps,pbrake_f,pbrake_r,accx_can,accy_can," +
		"Steering_Angle,VBOX_Long_Minutes,VBOX_Lat_Min,Laptrigger_lapdist_dls\n")

	currentTime := 1000.0 // ms, avoids the both-clocks-zero row filter
	for lap := 1; lap <= SampleLaps; lap++ {
		isPitLap := lap == SamplePitLap
		pointsThisLap := samplePointsPerLap
		lapTime := sampleBaselineLapTime +
			float64(lap-1)*sampleTireDegPerLap +
			(rng.Float64()*0.5 - 0.25)
		if isPitLap {
			pointsThisLap = 180
			lapTime += samplePitTimeLoss
		}
		timeStep := lapTime * 1000 / float64(pointsThisLap)

		for point := 0; point < pointsThisLap; point++ {
			progress := float64(point) / float64(pointsThisLap)

			var speed float64
			switch {
			case isPitLap && progress > 0.3 && progress < 0.7:
				speed = 20 + rng.Float64()*10 // pit lane
			case progress < 0.15 || (progress > 0.5 && progress < 0.65):
				speed = 160 + rng.Float64()*15 // straights
			default:
				speed = 70 + rng.Float64()*30 // corners
			}

			gear := min(6, int(speed/25)+1)
			nmot := 4000 + speed*45 + rng.Float64()*500
			ath := 30 + rng.Float64()*40
			if speed > 120 {
				ath = 85 + rng.Float64()*15
			}
			aps := ath + (rng.Float64()*5 - 2.5)

			braking := speed < 80
			pbrakeF := rng.Float64() * 5
			pbrakeR := rng.Float64() * 3
			if braking {
				pbrakeF = 60 + rng.Float64()*40
				pbrakeR = 40 + rng.Float64()*30
			}

			accx := rng.Float64() * 0.2
			if ath > 70 {
				accx = 0.3 + rng.Float64()*0.4
			} else if pbrakeF > 20 {
				accx = -0.8 - rng.Float64()*0.5
			}
			accy := (rng.Float64() - 0.5) * 0.6
			steering := -80 + rng.Float64()*160
			if speed < 100 {
				accy = (rng.Float64() - 0.5) * 1.5
				steering = -250 + rng.Float64()*500
			}

			vboxLat := sampleSFLatitude + math.Sin(progress*2*math.Pi)*0.01
			vboxLong := sampleSFLongitude + math.Cos(progress*2*math.Pi)*0.015
			lapDist := progress * sampleTrackLength

			ecuTime := currentTime
			metaTime := currentTime + (rng.Float64()*50 - 25) // logger clock jitter

			fmt.Fprintf(&sb,
				"%.0f,%.0f,%d,%d,%d,%.1f,%d,%.0f,%.1f,%.1f,%.1f,%.1f,%.3f,%.3f,%.1f,%.6f,%.6f,%.1f\n",
				metaTime, ecuTime, lap, SampleCarNumber, SampleChassisNumber,
				speed, gear, nmot, ath, aps, pbrakeF, pbrakeR, accx, accy,
				steering, vboxLong, vboxLat, lapDist)

			currentTime += timeStep
		}
	}
	return sb.String()
}
