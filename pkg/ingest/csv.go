package ingest

import (
	"errors"
	"strconv"
	"strings"

	"github.com/racesense/telemetry-strategy-go/log"
	"github.com/racesense/telemetry-strategy-go/pkg/model"
)

// ErrNoData signals that the input contained no usable telemetry rows.
// Recoverable by design: the caller decides how to surface it.
var ErrNoData = errors.New("no usable telemetry data")

type column int

const (
	colMetaTime column = iota
	colEcuTime
	colLap
	colCarNumber
	colChassisNumber
	colSpeed
	colGear
	colNmot
	colAth
	colAps
	colPbrakeF
	colPbrakeR
	colAccxCan
	colAccyCan
	colSteeringAngle
	colVboxLong
	colVboxLat
	colLapDist
)

// columnAliases maps each logical column to its header candidates, tried in
// order, first match wins. Matching is case-insensitive on substrings, so
// "VBOX_Lat_Min" resolves via "lat". Kept data-driven for testability.
var columnAliases = map[column][]string{
	colMetaTime:      {"meta_time", "metatime", "timestamp", "time"},
	colEcuTime:       {"ecu_time", "ecutime", "ecu"},
	colLap:           {"lap", "lapnumber", "lap_number"},
	colCarNumber:     {"car_number", "carnumber", "car", "number"},
	colChassisNumber: {"chassis_number", "chassisnumber", "chassis"},
	colSpeed:         {"speed", "velocity"},
	colGear:          {"gear"},
	colNmot:          {"nmot", "rpm", "engine_rpm", "enginerpm"},
	colAth:           {"ath", "throttle", "throttle_position"},
	colAps:           {"aps", "throttle", "accelerator"},
	colPbrakeF:       {"pbrake_f", "pbrakef", "brake_front", "brakefront"},
	colPbrakeR:       {"pbrake_r", "pbraker", "brake_rear", "brakerear"},
	colAccxCan:       {"accx_can", "accx", "accel_x", "acceleration_x"},
	colAccyCan:       {"accy_can", "accy", "accel_y", "acceleration_y"},
	colSteeringAngle: {"steering_angle", "steeringangle", "steering"},
	colVboxLong:      {"vbox_long_minutes", "longitude", "long", "lon"},
	colVboxLat:       {"vbox_lat_min", "latitude", "lat"},
	colLapDist:       {"laptrigger_lapdist_dls", "lapdist", "distance", "lap_distance"},
}

type columnMap map[column]int

// resolveColumns builds the header index lookup. A missing column maps to -1.
func resolveColumns(headers []string) columnMap {
	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}
	cm := make(columnMap, len(columnAliases))
	for col, aliases := range columnAliases {
		cm[col] = -1
		for _, alias := range aliases {
			found := -1
			for i, h := range lowered {
				if strings.Contains(h, alias) {
					found = i
					break
				}
			}
			if found != -1 {
				cm[col] = found
				break
			}
		}
	}
	return cm
}

func (cm columnMap) raw(values []string, col column) string {
	idx := cm[col]
	if idx == -1 || idx >= len(values) {
		return ""
	}
	return strings.TrimSpace(values[idx])
}

// number parses a float cell. ok is false for empty/garbage cells AND for
// plain zero, so callers can chain fallbacks the same way for both.
func (cm columnMap) number(values []string, col column) (val float64, ok bool) {
	s := cm.raw(values, col)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return v, true
}

func (cm columnMap) numberOrZero(values []string, col column) float64 {
	v, _ := cm.number(values, col)
	return v
}

func (cm columnMap) intOrZero(values []string, col column) int {
	return int(cm.numberOrZero(values, col))
}

// ParsePoints turns raw delimited text into the raw telemetry sequence.
// Tolerant of column order, aliases and missing fields; returns ErrNoData
// when fewer than two lines are present or no row survives filtering.
func ParsePoints(csvText string) ([]model.RawPoint, error) {
	l := log.Default().Named("ingest")
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(csvText), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil, ErrNoData
	}
	cm := resolveColumns(strings.Split(lines[0], ","))

	points := make([]model.RawPoint, 0, len(lines)-1)
	for rowIdx, line := range lines[1:] {
		values := strings.Split(line, ",")

		// timestamp fallback chain: own column, sibling clock, synthetic
		metaTime, ok := cm.number(values, colMetaTime)
		if !ok {
			if metaTime, ok = cm.number(values, colEcuTime); !ok {
				metaTime = float64(rowIdx) * 100
			}
		}
		ecuTime, ok := cm.number(values, colEcuTime)
		if !ok {
			if ecuTime, ok = cm.number(values, colMetaTime); !ok {
				ecuTime = float64(rowIdx) * 100
			}
		}
		if metaTime <= 0 && ecuTime <= 0 {
			continue
		}

		lap := cm.intOrZero(values, colLap)
		if lap == 0 {
			lap = 1
		}

		points = append(points, model.RawPoint{
			MetaTime:      metaTime,
			EcuTime:       ecuTime,
			Lap:           lap,
			CarNumber:     cm.intOrZero(values, colCarNumber),
			ChassisNumber: cm.intOrZero(values, colChassisNumber),
			Speed:         cm.numberOrZero(values, colSpeed),
			Gear:          cm.intOrZero(values, colGear),
			Nmot:          cm.numberOrZero(values, colNmot),
			Ath:           cm.numberOrZero(values, colAth),
			Aps:           cm.numberOrZero(values, colAps),
			PbrakeF:       cm.numberOrZero(values, colPbrakeF),
			PbrakeR:       cm.numberOrZero(values, colPbrakeR),
			AccxCan:       cm.numberOrZero(values, colAccxCan),
			AccyCan:       cm.numberOrZero(values, colAccyCan),
			SteeringAngle: cm.numberOrZero(values, colSteeringAngle),
			VboxLong:      cm.numberOrZero(values, colVboxLong),
			VboxLat:       cm.numberOrZero(values, colVboxLat),
			LapDist:       cm.numberOrZero(values, colLapDist),
		})
	}
	if len(points) == 0 {
		return nil, ErrNoData
	}
	l.Debug("parsed telemetry",
		log.Int("rows", len(lines)-1),
		log.Int("points", len(points)))
	return points, nil
}
