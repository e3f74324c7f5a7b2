package middleware

import "net/http"

// MaxRequestBodySize caps request bodies; planner payloads are tiny.
const MaxRequestBodySize = 64 * 1024

// RequestSize limits how much of a request body handlers will read.
func RequestSize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)
		}
		next.ServeHTTP(w, r)
	})
}
