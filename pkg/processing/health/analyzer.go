package health

import (
	"math"

	"github.com/google/uuid"

	"github.com/racesense/telemetry-strategy-go/pkg/model"
	"github.com/racesense/telemetry-strategy-go/pkg/processing/timestamp"
	"github.com/racesense/telemetry-strategy-go/pkg/processing/vehicle"
)

// correctedDriftThreshold: corrections with a residual offset above this are
// counted as "timestamps corrected". Stricter than the re-anchor trigger
// since small residual offsets still count once a correction pass ran.
const correctedDriftThreshold = 10.0 // ms

// Inputs collects the upstream pipeline outputs. The analyzer aggregates
// them; it performs no independent computation on the raw data.
type Inputs struct {
	Corrections []model.TimestampCorrection
	Identities  *vehicle.IdentityMap
	Integrity   model.LapIntegrityReport
	TotalPoints int
}

// GenerateReport combines all data quality metrics into one report.
func GenerateReport(in Inputs) model.TelemetryHealthReport {
	driftPercent := timestamp.DriftPercentage(in.Corrections)
	mismatchCount := in.Identities.MismatchCount()
	corruptCount := len(in.Integrity.CorruptedLaps)

	timestampsCorrected := 0
	for _, c := range in.Corrections {
		if math.Abs(c.DriftOffset) > correctedDriftThreshold {
			timestampsCorrected++
		}
	}

	return model.TelemetryHealthReport{
		SessionID:              uuid.NewString(),
		TimestampDriftPercent:  driftPercent,
		LapAnomalyCount:        corruptCount,
		CarNumberMismatchCount: mismatchCount,
		RecoveredLapsCount:     len(in.Integrity.ReconstructedLaps),
		DataQualityScore: QualityScore(
			driftPercent, corruptCount, mismatchCount, in.TotalPoints),
		VehicleIdentities: in.Identities.Identities(),
		LapIntegrity:      in.Integrity,
		Corrections: model.CorrectionCounts{
			TimestampsCorrected: timestampsCorrected,
			LapNumbersFixed:     len(in.Integrity.ReconstructedLaps),
			VehicleIDsResolved:  in.Identities.Size(),
		},
	}
}

// QualityScore starts at 100 and applies three independently capped
// deductions. Always within [0,100].
func QualityScore(driftPercent float64, lapAnomalyCount, mismatchCount, totalPoints int) float64 {
	score := 100.0

	score -= math.Min(20, driftPercent*2)

	denom := totalPoints
	if denom == 0 {
		denom = 1
	}
	lapAnomalyRatio := float64(lapAnomalyCount) / float64(denom)
	score -= math.Min(30, lapAnomalyRatio*1000)

	score -= math.Min(15, float64(mismatchCount)*5)

	return math.Max(0, math.Min(100, score))
}
