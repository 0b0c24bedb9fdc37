// Package http exposes the webhook surface: one endpoint receiving inbound
// events and a health check. Everything beyond this DTO boundary belongs to
// the transport collaborator.
package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"nutribot_backend/internal/transport"
	"nutribot_backend/platform/logger"
	"nutribot_backend/platform/validator"
)

// Dispatcher handles one inbound event.
type Dispatcher interface {
	Handle(ctx context.Context, event transport.InboundEvent) []transport.Response
}

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Handler serves the webhook routes.
type Handler struct {
	dispatcher Dispatcher
	health     HealthChecker
	validate   *validator.Validator
	log        *logger.Logger
}

// NewHandler creates the webhook handler.
func NewHandler(dispatcher Dispatcher, health HealthChecker, log *logger.Logger) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		health:     health,
		validate:   validator.New(),
		log:        log,
	}
}

// HandleEvent receives one inbound event and returns the ordered replies.
func (h *Handler) HandleEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	responses := h.dispatcher.Handle(c.Request.Context(), req.ToEvent())
	c.JSON(http.StatusOK, EventResponse{Responses: responses})
}

// Healthz reports process and database liveness.
func (h *Handler) Healthz(c *gin.Context) {
	if err := h.health.Ping(c.Request.Context()); err != nil {
		h.log.DatabaseError("health ping", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
