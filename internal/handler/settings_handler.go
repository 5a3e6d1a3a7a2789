package handler

import (
	"errors"
	"net/http"

	"takjil_scheduler/internal/model"
	"takjil_scheduler/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SettingsHandler handles settings requests
type SettingsHandler struct {
	service service.SettingsService
	logger  *zap.Logger
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(s service.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{service: s, logger: logger}
}

// Get returns the credential-stripped settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.service.Get(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to get settings", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondData(c, http.StatusOK, settings)
}

// Update applies a partial settings update (admin only)
func (h *SettingsHandler) Update(c *gin.Context) {
	var req model.UpdateSettingsRequest
	if !bindJSON(c, &req) {
		return
	}

	settings, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			respondValidationError(c, verr)
			return
		}
		h.logger.Error("failed to update settings", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondData(c, http.StatusOK, settings)
}

// RegisterSettingsRoutes registers settings routes
func (h *SettingsHandler) RegisterSettingsRoutes(rg *gin.RouterGroup, sessionMW, readLimitMW gin.HandlerFunc) {
	rg.GET("/settings", readLimitMW, h.Get)
	rg.PUT("/settings", sessionMW, h.Update)
}
