package processing

import (
	"github.com/racesense/telemetry-strategy-go/log"
	"github.com/racesense/telemetry-strategy-go/pkg/model"
	"github.com/racesense/telemetry-strategy-go/pkg/processing/health"
	"github.com/racesense/telemetry-strategy-go/pkg/processing/lap"
	"github.com/racesense/telemetry-strategy-go/pkg/processing/timestamp"
	"github.com/racesense/telemetry-strategy-go/pkg/processing/vehicle"
)

// Processor runs the telemetry cleaning and lap reconstruction pipeline for
// one raw dataset. Each run is an independent, synchronous batch; no state is
// shared between runs.
type Processor struct {
	reconstructor *lap.Reconstructor
	l             *log.Logger
}

type ProcessorOption func(proc *Processor)

func WithReconstructor(r *lap.Reconstructor) ProcessorOption {
	return func(proc *Processor) {
		proc.reconstructor = r
	}
}

func NewProcessor(opts ...ProcessorOption) *Processor {
	ret := &Processor{
		reconstructor: lap.NewReconstructor(),
		l:             log.Default().Named("processing"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Result is the output of one full pipeline run.
type Result struct {
	Laps         []model.CleanedLap
	HealthReport model.TelemetryHealthReport
}

// ProcessWithHealthCheck runs the full pipeline:
// timestamp correction -> lap reconstruction -> cleaning/aggregation,
// with the health analysis running over the raw and processed sequences.
func (p *Processor) ProcessWithHealthCheck(points []model.RawPoint) Result {
	corrections := timestamp.AnalyzeDrift(points)
	corrected := timestamp.ApplyCorrections(points, corrections)

	reconstructed, method := p.reconstructor.Reconstruct(corrected)
	integrity := lap.IntegrityReport(points, reconstructed, method)

	identities := vehicle.BuildIdentityMap(points)

	laps := lap.Aggregate(reconstructed)

	report := health.GenerateReport(health.Inputs{
		Corrections: corrections,
		Identities:  identities,
		Integrity:   integrity,
		TotalPoints: len(points),
	})
	p.l.Info("pipeline run complete",
		log.Int("points", len(points)),
		log.Int("laps", len(laps)),
		log.String("method", string(method)),
		log.Float64("qualityScore", report.DataQualityScore))

	return Result{Laps: laps, HealthReport: report}
}
