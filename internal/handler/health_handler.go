package handler

import (
	"context"
	"time"

	"mcq-generator/internal/domain"
	"mcq-generator/internal/dto"
	"mcq-generator/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HealthHandler reports service liveness and dependency status
type HealthHandler struct {
	cache     domain.Cache // optional
	modelName string
}

func NewHealthHandler(cache domain.Cache, modelName string) *HealthHandler {
	return &HealthHandler{cache: cache, modelName: modelName}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{Status: "ok", Model: h.modelName}

	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		resp.Checks = map[string]string{"cache": "ok"}
		if err := h.cache.Ping(ctx); err != nil {
			logger.Get().Warn("Cache health check failed", zap.Error(err))
			resp.Status = "degraded"
			resp.Checks["cache"] = "unavailable"
		}
	}

	return c.JSON(resp)
}
