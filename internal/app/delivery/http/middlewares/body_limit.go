package middlewares

import (
	"net/http"
)

// LimitRequestBody caps request bodies at the configured number of
// megabytes. Reads beyond the cap fail with *http.MaxBytesError.
func (m *Middlewares) LimitRequestBody(next http.Handler) http.Handler {
	limit := int64(m.InternalConfig.App.RequestBodyLimitInMegabyte) << 20
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limit > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}
		next.ServeHTTP(w, r)
	})
}
