package health

import (
	"encoding/json"
	"net/http"
)

// StatusHandler serves the last probe result as JSON.
//
// Returns:
//   - 200 OK: last probe succeeded, or no probe has run yet
//   - 503 Service Unavailable: last probe failed
func (p *Prober) StatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result := p.Last()

		status := http.StatusOK
		if result.Status == StatusDown {
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)

		if r.Method != http.MethodHead {
			_ = json.NewEncoder(w).Encode(result)
		}
	}
}
