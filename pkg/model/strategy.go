package model

// TireDegradation is the per-lap pace loss estimate from the trailing window.
type TireDegradation struct {
	LapNumber        int     `json:"lapNumber"`
	LapTime          float64 `json:"lapTime"`
	DegradationRate  float64 `json:"degradationRate"` // seconds per lap
	PredictedNextLap float64 `json:"predictedNextLap"`
	Confidence       float64 `json:"confidence"`
}

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// PitScenario is one hypothetical pit lap with its projected race time.
// Ephemeral, computed on demand.
type PitScenario struct {
	PitLap            int     `json:"pitLap"`
	ProjectedPosition int     `json:"projectedPosition"`
	TotalTime         float64 `json:"totalTime"` // seconds
	Description       string  `json:"description"`
}

type PitRecommendation struct {
	RecommendedLap int           `json:"recommendedLap"`
	CurrentLap     int           `json:"currentLap"`
	Reason         string        `json:"reason"`
	TimeSaving     float64       `json:"timeSaving"` // seconds vs no-stop
	Urgency        Urgency       `json:"urgency"`
	Scenarios      []PitScenario `json:"scenarios"`
}

// UndercutAnalysis flags whether pitting before a competitor gains time.
type UndercutAnalysis struct {
	HasOpportunity bool    `json:"hasOpportunity"`
	Advantage      float64 `json:"advantage"` // seconds
	Description    string  `json:"description"`
}

// RaceStrategy is the aggregate handed to dashboard/export consumers.
type RaceStrategy struct {
	CarNumber          int                 `json:"carNumber"`
	ChassisNumber      int                 `json:"chassisNumber"`
	CurrentLap         int                 `json:"currentLap"`
	TotalLaps          int                 `json:"totalLaps"`
	Laps               []CleanedLap        `json:"laps"`
	TireDegradation    []TireDegradation   `json:"tireDegradation"`
	PitRecommendations []PitRecommendation `json:"pitRecommendations"`
	AverageLapTime     float64             `json:"averageLapTime"`
	BestLapTime        float64             `json:"bestLapTime"`
}
