package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	LogLevel             string  // sets the log level (zap log level values)
	LogFormat            string  // text vs json
	LogConfig            string  // path to log filter rules file
	ExpectedLapTime      float64 // expected lap duration in seconds (time-based lap reconstruction)
	StartFinishLatitude  float64 // start/finish line latitude reference (GPS lap detection)
	StartFinishTolerance float64 // tolerance band around the start/finish latitude
	TotalRaceLaps        int     // race distance in laps (0 means derive from data)
	CurrentLap           int     // visible-window lap for strategy output (0 means last lap)
)
