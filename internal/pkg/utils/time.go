package utils

import (
	"emr-service/internal/pkg/constvars"
	"time"
)

// LoadLocationOrDefault falls back to Asia/Jakarta and then UTC when the
// configured zone is not available on the host.
func LoadLocationOrDefault(name string) *time.Location {
	if name == "" {
		name = constvars.DefaultTimezone
	}
	location, err := time.LoadLocation(name)
	if err == nil {
		return location
	}
	location, err = time.LoadLocation(constvars.DefaultTimezone)
	if err == nil {
		return location
	}
	return time.UTC
}
