package models

import (
	"emr-service/internal/pkg/constvars"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

var (
	measurementPattern   = regexp.MustCompile(`^\s*(-?\d+(?:[.,]\d+)?)\s*(\S.*?)?\s*$`)
	bloodPressurePattern = regexp.MustCompile(`(?i)^\s*(\d{2,3})\s*/\s*(\d{2,3})\s*(mmhg)?\s*$`)
)

// Measurement is a numeric reading with its unit. Raw keeps the text as it
// was entered so it can be sent back unchanged; Valid is false when Raw
// could not be read as a number.
type Measurement struct {
	Value float64
	Unit  string
	Raw   string
	Valid bool
}

func ParseMeasurement(raw, defaultUnit string) Measurement {
	measurement := Measurement{Raw: raw}
	matches := measurementPattern.FindStringSubmatch(raw)
	if matches == nil {
		return measurement
	}

	value, err := strconv.ParseFloat(strings.Replace(matches[1], ",", ".", 1), 64)
	if err != nil {
		return measurement
	}

	measurement.Value = value
	measurement.Unit = strings.TrimSpace(matches[2])
	if measurement.Unit == "" {
		measurement.Unit = defaultUnit
	}
	measurement.Valid = true
	return measurement
}

func (m Measurement) String() string {
	if m.Raw != "" {
		return m.Raw
	}
	if !m.Valid {
		return ""
	}
	return strconv.FormatFloat(m.Value, 'f', -1, 64) + m.Unit
}

func (m Measurement) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

type BloodPressure struct {
	Systolic  int
	Diastolic int
	Raw       string
	Valid     bool
}

func ParseBloodPressure(raw string) BloodPressure {
	bloodPressure := BloodPressure{Raw: raw}
	matches := bloodPressurePattern.FindStringSubmatch(raw)
	if matches == nil {
		return bloodPressure
	}

	bloodPressure.Systolic, _ = strconv.Atoi(matches[1])
	bloodPressure.Diastolic, _ = strconv.Atoi(matches[2])
	bloodPressure.Valid = true
	return bloodPressure
}

func (b BloodPressure) String() string {
	if b.Raw != "" {
		return b.Raw
	}
	if !b.Valid {
		return ""
	}
	return fmt.Sprintf("%d/%d", b.Systolic, b.Diastolic)
}

func (b BloodPressure) Unit() string {
	return constvars.UnitMillimeterHg
}

func (b BloodPressure) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}
