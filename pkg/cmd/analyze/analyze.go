package analyze

import (
	"errors"
	"fmt"
	"os"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/racesense/telemetry-strategy-go/log"
	"github.com/racesense/telemetry-strategy-go/pkg/config"
	"github.com/racesense/telemetry-strategy-go/pkg/ingest"
	"github.com/racesense/telemetry-strategy-go/pkg/model"
	"github.com/racesense/telemetry-strategy-go/pkg/processing"
	"github.com/racesense/telemetry-strategy-go/pkg/processing/lap"
	"github.com/racesense/telemetry-strategy-go/pkg/strategy"
)

var (
	outFile     string
	prettyPrint bool
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <telemetry-csv>",
		Short: "clean a telemetry CSV export and compute the race strategy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return analyzeFile(args[0])
		},
	}
	cmd.Flags().StringVarP(&outFile, "output", "o", "",
		"write the analysis result to this file instead of stdout")
	cmd.Flags().BoolVar(&prettyPrint, "pretty", true,
		"indent the JSON output")
	return cmd
}

// analysisResult is the document written by the analyze command.
type analysisResult struct {
	Health       model.TelemetryHealthReport `json:"health"`
	Laps         []model.CleanedLap          `json:"laps"`
	Degradation  []model.TireDegradation     `json:"tireDegradation"`
	Strategy     model.RaceStrategy          `json:"strategy"`
	SourcePoints int                         `json:"sourcePoints"`
}

func analyzeFile(filename string) error {
	l := log.Default().Named("cmd.analyze")
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", filename, err)
	}
	points, err := ingest.ParsePoints(string(data))
	if err != nil {
		if errors.Is(err, ingest.ErrNoData) {
			// recoverable condition, not a failure
			l.Warn("no usable telemetry rows", log.String("file", filename))
			fmt.Fprintf(os.Stderr, "%s contains no usable telemetry rows\n", filename)
			return nil
		}
		return err
	}
	l.Info("telemetry parsed",
		log.String("file", filename),
		log.Int("points", len(points)))

	proc := processing.NewProcessor(
		processing.WithReconstructor(lap.NewReconstructor(
			lap.WithExpectedLapTime(config.ExpectedLapTime),
			lap.WithStartFinishLine(
				config.StartFinishLatitude,
				config.StartFinishTolerance),
		)))
	result := proc.ProcessWithHealthCheck(points)

	tireDeg := strategy.CalculateTireDegradation(result.Laps)
	raceStrategy := strategy.BuildRaceStrategy(points, result.Laps, tireDeg,
		config.CurrentLap, config.TotalRaceLaps)

	out := analysisResult{
		Health:       result.HealthReport,
		Laps:         result.Laps,
		Degradation:  tireDeg,
		Strategy:     raceStrategy,
		SourcePoints: len(points),
	}
	return writeResult(&out)
}

func writeResult(res *analysisResult) error {
	opts := ojg.DefaultOptions
	opts.OmitNil = true
	if prettyPrint {
		opts.Indent = 2
	}
	doc := oj.JSON(res, &opts)
	if outFile == "" {
		fmt.Fprintln(os.Stdout, doc)
		return nil
	}
	//nolint:gosec // result file is meant to be readable
	return os.WriteFile(outFile, []byte(doc+"\n"), 0o644)
}
