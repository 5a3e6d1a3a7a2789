package handler

import (
	"errors"
	"net/http"
	"strconv"

	"takjil_scheduler/internal/model"
	"takjil_scheduler/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegistrationHandler handles registration related requests
type RegistrationHandler struct {
	service service.RegistrationService
	logger  *zap.Logger
}

// NewRegistrationHandler creates a new RegistrationHandler
func NewRegistrationHandler(s service.RegistrationService, logger *zap.Logger) *RegistrationHandler {
	return &RegistrationHandler{service: s, logger: logger}
}

// ListPublic returns all registrations without phone numbers
func (h *RegistrationHandler) ListPublic(c *gin.Context) {
	regs, err := h.service.ListPublic(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list registrations", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if regs == nil {
		regs = []model.PublicRegistration{}
	}
	respondData(c, http.StatusOK, regs)
}

// ListAdmin returns all registrations including phone numbers
func (h *RegistrationHandler) ListAdmin(c *gin.Context) {
	regs, err := h.service.ListAdmin(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list registrations", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondData(c, http.StatusOK, regs)
}

// Create handles the public submission
func (h *RegistrationHandler) Create(c *gin.Context) {
	var req model.CreateRegistrationRequest
	if !bindJSON(c, &req) {
		return
	}

	reg, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			respondValidationError(c, verr)
			return
		}
		h.logger.Error("failed to create registration", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondMessage(c, http.StatusOK, "Pendaftaran berhasil", gin.H{"id": reg.ID})
}

// Update overwrites an existing registration (admin only)
func (h *RegistrationHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid registration ID")
		return
	}

	var req model.UpdateRegistrationRequest
	if !bindJSON(c, &req) {
		return
	}

	reg, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			respondValidationError(c, verr)
		case errors.Is(err, service.ErrRegistrationNotFound):
			respondError(c, http.StatusNotFound, "Data tidak ditemukan")
		default:
			h.logger.Error("failed to update registration", zap.Int64("id", id), zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondData(c, http.StatusOK, reg)
}

// Delete removes one registration (admin only)
func (h *RegistrationHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid registration ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			respondError(c, http.StatusNotFound, "Data tidak ditemukan")
			return
		}
		h.logger.Error("failed to delete registration", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondMessage(c, http.StatusOK, "Data berhasil dihapus", nil)
}

// DeleteAll removes every registration (admin only). Calling it on an empty
// store succeeds with a zero count.
func (h *RegistrationHandler) DeleteAll(c *gin.Context) {
	count, err := h.service.DeleteAll(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to delete all registrations", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondMessage(c, http.StatusOK, "Semua data berhasil dihapus", gin.H{"deleted": count})
}

// RegisterRegistrationRoutes registers registration routes
func (h *RegistrationHandler) RegisterRegistrationRoutes(rg *gin.RouterGroup, sessionMW, createLimitMW, readLimitMW gin.HandlerFunc) {
	rg.GET("/public/registrations", readLimitMW, h.ListPublic)
	rg.POST("/registrations", createLimitMW, h.Create)

	adminRoutes := rg.Group("/registrations")
	adminRoutes.Use(sessionMW)
	{
		adminRoutes.GET("", h.ListAdmin)
		adminRoutes.PUT("/:id", h.Update)
		adminRoutes.DELETE("/:id", h.Delete)
		adminRoutes.DELETE("", h.DeleteAll)
	}
}
