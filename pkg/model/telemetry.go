package model

// RawPoint is one telemetry sample as delivered by the logger.
// The sequence order of points is the arrival order and is treated as
// time order by all downstream processing.
type RawPoint struct {
	// MetaTime is the centrally issued logger clock (ms). Ground truth.
	MetaTime float64 `json:"metaTime"`
	// EcuTime is the onboard device clock (ms). May drift or glitch.
	EcuTime float64 `json:"ecuTime"`
	// Lap is the raw lap counter. Subject to the 16 bit overflow bug.
	Lap int `json:"lap"`
	// CarNumber is the race number. 0 is a placeholder, may change mid-session.
	CarNumber int `json:"carNumber"`
	// ChassisNumber is the permanent vehicle id. 0 means unknown chassis.
	ChassisNumber int     `json:"chassisNumber"`
	Speed         float64 `json:"speed"` // km/h
	Gear          int     `json:"gear"`
	Nmot          float64 `json:"nmot"`              // engine speed (rpm)
	Ath           float64 `json:"ath"`               // throttle blade position (0-100%)
	Aps           float64 `json:"aps"`               // accelerator pedal position (0-100%)
	PbrakeF       float64 `json:"pbrakeF"`           // front brake pressure (bar)
	PbrakeR       float64 `json:"pbrakeR"`           // rear brake pressure (bar)
	AccxCan       float64 `json:"accxCan"`           // longitudinal acceleration (g)
	AccyCan       float64 `json:"accyCan"`           // lateral acceleration (g)
	SteeringAngle float64 `json:"steeringAngle"`     // degrees
	VboxLong      float64 `json:"vboxLongMinutes"`   // GPS longitude
	VboxLat       float64 `json:"vboxLatMin"`        // GPS latitude
	LapDist       float64 `json:"laptriggerLapdist"` // distance from start/finish (m)

	// legacy channel aliases, only set when an old-style export carried them
	Throttle  float64 `json:"throttle,omitempty"`
	Brake     float64 `json:"brake,omitempty"` // combined brake, split front/rear on cleaning
	Steering  float64 `json:"steering,omitempty"`
	Rpm       float64 `json:"rpm,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// CleanedPoint is a sample after range clamping and alias substitution.
// The two raw clocks are collapsed into a single authoritative timestamp.
type CleanedPoint struct {
	Time          float64 `json:"time"` // ms
	Speed         float64 `json:"speed"`
	Gear          int     `json:"gear"`
	Nmot          float64 `json:"nmot"`
	Ath           float64 `json:"ath"`
	Aps           float64 `json:"aps"`
	PbrakeF       float64 `json:"pbrakeF"`
	PbrakeR       float64 `json:"pbrakeR"`
	AccxCan       float64 `json:"accxCan"`
	AccyCan       float64 `json:"accyCan"`
	SteeringAngle float64 `json:"steeringAngle"`
	VboxLong      float64 `json:"vboxLongMinutes"`
	VboxLat       float64 `json:"vboxLatMin"`
	LapDist       float64 `json:"laptriggerLapdist"`
}

// CleanedLap aggregates all cleaned points sharing one reconstructed lap
// number. Immutable after creation.
type CleanedLap struct {
	LapNumber       int            `json:"lapNumber"`
	CarNumber       int            `json:"carNumber"`
	ChassisNumber   int            `json:"chassisNumber"`
	LapTime         float64        `json:"lapTime"` // seconds
	AvgSpeed        float64        `json:"avgSpeed"`
	MaxSpeed        float64        `json:"maxSpeed"`
	TelemetryPoints []CleanedPoint `json:"telemetryPoints"`
	IsPitLap        bool           `json:"isPitLap"`
}
