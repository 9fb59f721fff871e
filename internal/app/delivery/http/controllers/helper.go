package controllers

import (
	"emr-service/internal/pkg/exceptions"
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

// decodeJSON reads the request body into dst, reporting oversized bodies
// separately from malformed ones. The body is read in full first because the
// decoder does not surface the *http.MaxBytesError from a limited reader.
func decodeJSON(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return exceptions.ErrRequestEntityTooLarge(err, int(maxBytesErr.Limit>>20))
		}
		return exceptions.ErrCannotParseJSON(err)
	}

	err = json.Unmarshal(body, dst)
	if err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	return nil
}
