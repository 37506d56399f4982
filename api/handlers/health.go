package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// Pinger checks that a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service health
type HealthHandler struct {
	store Pinger
}

// NewHealthHandler creates a health handler for the given store
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// HealthOutput is the health check body
type HealthOutput struct {
	Body struct {
		Status string `json:"status" example:"ok"`
	}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "healthz",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Health check",
		Tags:        []string{"Health"},
		Errors:      []int{http.StatusServiceUnavailable},
	}, h.Health)
}

// Health pings the wiki database
func (h *HealthHandler) Health(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			return nil, huma.Error503ServiceUnavailable("database unavailable", err)
		}
	}

	out := &HealthOutput{}
	out.Body.Status = "ok"
	return out, nil
}
