package server

import (
	"net/http"
	"time"

	"github.com/finbase/wallet-service/internal/boot"
	"github.com/finbase/wallet-service/internal/respond"
	"github.com/finbase/wallet-service/internal/version"
)

type healthBody struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

type readyBody struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// handleHealth is the liveness probe. It only reports that the process is
// serving; the listener is never bound before dependencies are up, so a
// 200 here implies startup completed.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, healthBody{
		Status:    "healthy",
		Service:   version.Service,
		Version:   version.Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// handleReady pings every dependency and reports per-dependency results,
// 503 if any is down.
func handleReady(deps *boot.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := deps.Check(r.Context())

		body := readyBody{Status: "ready", Checks: make(map[string]string, len(checks))}
		status := http.StatusOK
		for name, err := range checks {
			if err != nil {
				body.Checks[name] = err.Error()
				body.Status = "not ready"
				status = http.StatusServiceUnavailable
				continue
			}
			body.Checks[name] = "ok"
		}

		respond.JSON(w, status, body)
	}
}
