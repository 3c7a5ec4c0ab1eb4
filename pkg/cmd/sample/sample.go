package sample

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/racesense/telemetry-strategy-go/log"
	"github.com/racesense/telemetry-strategy-go/pkg/ingest"
)

var outFile string

func NewSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "generate a synthetic race telemetry CSV for testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeSample()
		},
	}
	cmd.Flags().StringVarP(&outFile, "output", "o", "",
		"write the CSV to this file instead of stdout")
	return cmd
}

func writeSample() error {
	csvText := ingest.GenerateSampleRace()
	if outFile == "" {
		fmt.Fprint(os.Stdout, csvText)
		return nil
	}
	//nolint:gosec // sample file is meant to be readable
	if err := os.WriteFile(outFile, []byte(csvText), 0o644); err != nil {
		return err
	}
	log.Info("sample race written", log.String("file", outFile))
	return nil
}
