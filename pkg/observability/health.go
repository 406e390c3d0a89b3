package observability

import (
	"encoding/json"
	"net/http"
)

const (
	healthPath     = "/healthz"
	healthStatusOK = "ok"
)

// HealthHandler answers liveness probes with HTTP 200 and {"status":"ok"}.
func HealthHandler() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		rw.Header().Set("Content-Type", "application/json")
		rw.WriteHeader(http.StatusOK)

		data, err := json.Marshal(map[string]string{"status": healthStatusOK})
		if err != nil {
			return
		}

		_, _ = rw.Write(data)
	})
}
