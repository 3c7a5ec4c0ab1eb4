package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/racesense/telemetry-strategy-go/log"
	analyzeCmd "github.com/racesense/telemetry-strategy-go/pkg/cmd/analyze"
	sampleCmd "github.com/racesense/telemetry-strategy-go/pkg/cmd/sample"
	"github.com/racesense/telemetry-strategy-go/pkg/config"
	"github.com/racesense/telemetry-strategy-go/version"
)

const envPrefix = "RACESENSE"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "racesense",
	Short:   "Race telemetry cleaning and pit strategy engine",
	Long:    ``,
	Version: version.FullVersion,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:lll // readability
func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.racesense.yml)")

	rootCmd.PersistentFlags().StringVar(&config.LogLevel, "log-level",
		"info",
		"controls the log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&config.LogFormat, "log-format",
		"text",
		"log format (text or json)")
	rootCmd.PersistentFlags().StringVar(&config.LogConfig, "log-config",
		"",
		"path to a log filter rules file")
	rootCmd.PersistentFlags().Float64Var(&config.ExpectedLapTime, "expected-lap-time",
		100,
		"expected lap duration in seconds (used by time-based lap reconstruction)")
	rootCmd.PersistentFlags().Float64Var(&config.StartFinishLatitude, "start-finish-lat",
		30.1328,
		"start/finish line latitude reference (used by GPS lap detection)")
	rootCmd.PersistentFlags().Float64Var(&config.StartFinishTolerance, "start-finish-tolerance",
		0.001,
		"tolerance band around the start/finish latitude")
	rootCmd.PersistentFlags().IntVar(&config.TotalRaceLaps, "total-laps",
		0,
		"race distance in laps (0: derive from telemetry)")
	rootCmd.PersistentFlags().IntVar(&config.CurrentLap, "current-lap",
		0,
		"lap to compute the pit recommendation for (0: latest lap in data)")

	// add commands here
	rootCmd.AddCommand(analyzeCmd.NewAnalyzeCmd())
	rootCmd.AddCommand(sampleCmd.NewSampleCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".racesense" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".racesense")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	bindFlags(rootCmd, viper.GetViper())
	for _, cmd := range rootCmd.Commands() {
		bindFlags(cmd, viper.GetViper())
	}
}

func initLogging() {
	level, err := log.ParseLevel(config.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %s, using info\n", config.LogLevel)
		level = log.InfoLevel
	}
	format := "console"
	if config.LogFormat == "json" {
		format = "json"
	}
	filters := ""
	if config.LogConfig != "" {
		if data, readErr := os.ReadFile(config.LogConfig); readErr == nil {
			filters = strings.TrimSpace(string(data))
		} else {
			fmt.Fprintf(os.Stderr, "could not read log config: %v\n", readErr)
		}
	}
	log.ResetDefault(log.New(&log.Config{
		Level:   level,
		Format:  format,
		Filters: filters,
	}))
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --log-level to RACESENSE_LOG_LEVEL
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", f.Name, err)
			}
		}
		// Apply the viper config value to the flag when the flag is not set and viper
		// has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				fmt.Fprintf(os.Stderr, "Could set flag value for %s: %v", f.Name, err)
			}
		}
	})
}
