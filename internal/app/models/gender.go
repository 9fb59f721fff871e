package models

import (
	"emr-service/internal/pkg/constvars"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

type Gender string

const (
	GenderMale   Gender = constvars.GenderMale
	GenderFemale Gender = constvars.GenderFemale
)

func ParseGender(value string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "male":
		return GenderMale, nil
	case "female":
		return GenderFemale, nil
	}
	return "", fmt.Errorf("invalid gender %q, expected Male or Female", value)
}

func (g *Gender) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("gender must be a string: %w", err)
	}
	parsed, err := ParseGender(value)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
