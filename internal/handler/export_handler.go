package handler

import (
	"net/http"

	"takjil_scheduler/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExportHandler serves registration exports for download
type ExportHandler struct {
	service service.ExportService
	logger  *zap.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(s service.ExportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{service: s, logger: logger}
}

// ExportCSV streams all registrations as a BOM-prefixed CSV file
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	buffer, err := h.service.ExportCSV(c.Request.Context())
	if err != nil {
		h.logger.Error("csv export failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Export failed")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+service.ExportFilename("csv")+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buffer.Bytes())
}

// ExportXLSX streams all registrations as an Excel workbook
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	buffer, err := h.service.ExportXLSX(c.Request.Context())
	if err != nil {
		h.logger.Error("xlsx export failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Export failed")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+service.ExportFilename("xlsx")+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buffer.Bytes())
}

// RegisterExportRoutes registers export routes
func (h *ExportHandler) RegisterExportRoutes(rg *gin.RouterGroup, sessionMW, exportLimitMW gin.HandlerFunc) {
	exportGroup := rg.Group("/export")
	exportGroup.Use(sessionMW, exportLimitMW)
	{
		exportGroup.GET("/csv", h.ExportCSV)
		exportGroup.GET("/xlsx", h.ExportXLSX)
	}
}
