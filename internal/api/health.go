package api

import (
	"net/http"

	"github.com/ashureev/simple-agent/internal/responder"
	"github.com/go-chi/chi/v5"
)

// RuleLister exposes the responder's rule names in priority order.
type RuleLister interface {
	Categories() []responder.Category
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	rules RuleLister
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(rules RuleLister) *HealthHandler {
	return &HealthHandler{rules: rules}
}

// HealthStatus is the payload of GET /api/health.
type HealthStatus struct {
	Status     string               `json:"status"`
	Rules      int                  `json:"rules"`
	Categories []responder.Category `json:"categories"`
}

// Health reports the service status and the loaded rule table.
func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	cats := h.rules.Categories()
	rules := 0
	for _, c := range cats {
		if c != responder.CategoryFallback {
			rules++
		}
	}
	JSON(w, http.StatusOK, HealthStatus{
		Status:     "healthy",
		Rules:      rules,
		Categories: cats,
	})
}

// RegisterHealth registers the health check route.
func (h *HealthHandler) RegisterHealth(r chi.Router) {
	r.Get("/api/health", h.Health)
}
