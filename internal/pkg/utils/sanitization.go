package utils

import (
	"emr-service/internal/pkg/dto/requests"
	"strings"
)

// SanitizeSearchPatient strips the whitespace that is commonly pasted
// together with a NIK.
func SanitizeSearchPatient(request *requests.SearchPatient) {
	request.NIK = strings.TrimSpace(request.NIK)
}
