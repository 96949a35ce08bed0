package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	pkgpostgres "github.com/bibbank/bib/services/channeling-service/pkg/postgres"
)

const probeTimeout = 2 * time.Second

// Check is one readiness dependency.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

// PostgresCheck pings the connection pool.
func PostgresCheck(db pkgpostgres.Pinger) Check {
	return Check{
		Name: "postgres",
		Probe: func(ctx context.Context) error {
			return pkgpostgres.HealthCheck(ctx, db, probeTimeout)
		},
	}
}

// RedisPinger is satisfied by *redis.Client.
type RedisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// RedisCheck pings the rate config cache.
func RedisCheck(client RedisPinger) Check {
	return Check{
		Name: "redis",
		Probe: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, probeTimeout)
			defer cancel()
			return client.Ping(ctx).Err()
		},
	}
}

// HealthHandler serves liveness and readiness probes over HTTP.
type HealthHandler struct {
	service string
	checks  []Check
	logger  *slog.Logger
}

// NewHealthHandler creates a health check HTTP handler.
func NewHealthHandler(service string, logger *slog.Logger, checks ...Check) *HealthHandler {
	return &HealthHandler{service: service, checks: checks, logger: logger}
}

// RegisterRoutes attaches health-check routes to the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.liveness)
	mux.HandleFunc("GET /readyz", h.readiness)
}

func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": h.service,
	})
}

func (h *HealthHandler) readiness(w http.ResponseWriter, r *http.Request) {
	code := http.StatusOK
	state := "ready"
	results := make(map[string]string, len(h.checks))

	for _, c := range h.checks {
		if err := c.Probe(r.Context()); err != nil {
			h.logger.WarnContext(r.Context(), "readiness check failed", "check", c.Name, "error", err)
			results[c.Name] = "unavailable"
			code = http.StatusServiceUnavailable
			state = "not_ready"
			continue
		}
		results[c.Name] = "ok"
	}

	writeJSON(w, code, map[string]any{
		"status":  state,
		"service": h.service,
		"checks":  results,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}
