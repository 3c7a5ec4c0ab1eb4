package model

// TimestampCorrection is the per-point result of the drift analysis.
type TimestampCorrection struct {
	OriginalEcuTime    float64 `json:"originalEcuTime"`
	CorrectedTimestamp float64 `json:"correctedTimestamp"`
	DriftOffset        float64 `json:"driftOffset"` // ms
	Confidence         float64 `json:"confidence"`  // 0-1
}

// CarNumberChange records one race number reassignment on a chassis.
type CarNumberChange struct {
	Lap       int `json:"lap"`
	OldNumber int `json:"oldNumber"`
	NewNumber int `json:"newNumber"`
}

// VehicleIdentity tracks one physical car, keyed by its chassis number.
// The race number is secondary and may be reassigned within a session.
type VehicleIdentity struct {
	ChassisNumber     int               `json:"chassisNumber"`
	CarNumbers        []int             `json:"carNumbers"`
	PrimaryCarNumber  int               `json:"primaryCarNumber"`
	LastSeenCarNumber int               `json:"lastSeenCarNumber"`
	CarNumberChanges  []CarNumberChange `json:"carNumberChanges"`
}

// DetectionMethod describes how lap boundaries were determined.
type DetectionMethod string

const (
	MethodTelemetry DetectionMethod = "telemetry"
	MethodTimeBased DetectionMethod = "time-based"
	MethodGpsBased  DetectionMethod = "gps-based"
	MethodHybrid    DetectionMethod = "hybrid"
)

type LapIntegrityReport struct {
	TotalLaps          int             `json:"totalLaps"`
	CorruptedLaps      []int           `json:"corruptedLaps"`
	ReconstructedLaps  []int           `json:"reconstructedLaps"`
	LapDetectionMethod DetectionMethod `json:"lapDetectionMethod"`
	Confidence         float64         `json:"confidence"`
}

// CorrectionCounts summarizes how many corrections of each type were applied.
type CorrectionCounts struct {
	TimestampsCorrected int `json:"timestampsCorrected"`
	LapNumbersFixed     int `json:"lapNumbersFixed"`
	VehicleIDsResolved  int `json:"vehicleIDsResolved"`
}

// TelemetryHealthReport is the process-wide data quality summary.
type TelemetryHealthReport struct {
	SessionID              string             `json:"sessionId"`
	TimestampDriftPercent  float64            `json:"timestampDriftPercent"`
	LapAnomalyCount        int                `json:"lapAnomalyCount"`
	CarNumberMismatchCount int                `json:"carNumberMismatchCount"`
	RecoveredLapsCount     int                `json:"recoveredLapsCount"`
	DataQualityScore       float64            `json:"dataQualityScore"` // 0-100
	VehicleIdentities      []*VehicleIdentity `json:"vehicleIdentities"`
	LapIntegrity           LapIntegrityReport `json:"lapIntegrity"`
	Corrections            CorrectionCounts   `json:"corrections"`
}
