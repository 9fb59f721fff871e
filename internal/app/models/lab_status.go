package models

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// LabStatus is the single status vocabulary for lab results. Record listings
// use Normal, High, Low and Abnormal while the entry form offers normal,
// abnormal and critical; both decode into this set.
type LabStatus string

const (
	LabStatusNormal   LabStatus = "normal"
	LabStatusHigh     LabStatus = "high"
	LabStatusLow      LabStatus = "low"
	LabStatusAbnormal LabStatus = "abnormal"
	LabStatusCritical LabStatus = "critical"
)

var labStatusDisplay = map[LabStatus]string{
	LabStatusNormal:   "Normal",
	LabStatusHigh:     "High",
	LabStatusLow:      "Low",
	LabStatusAbnormal: "Abnormal",
	LabStatusCritical: "Critical",
}

func ParseLabStatus(value string) (LabStatus, error) {
	status := LabStatus(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := labStatusDisplay[status]; !ok {
		return "", fmt.Errorf("invalid lab status %q", value)
	}
	return status, nil
}

// Display returns the capitalised label used by record listings.
func (s LabStatus) Display() string {
	return labStatusDisplay[s]
}

// NeedsAttention reports whether the value is outside its reference range.
func (s LabStatus) NeedsAttention() bool {
	return s != LabStatusNormal
}

func (s *LabStatus) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("lab status must be a string: %w", err)
	}
	parsed, err := ParseLabStatus(value)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
