package handler

import (
	"errors"
	"net/http"

	"takjil_scheduler/internal/service"

	"github.com/gin-gonic/gin"
)

// Every response uses the same envelope: a success flag plus either a
// data/message payload or an error string with optional per-field messages.

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, status int, errMsg string) {
	c.JSON(status, gin.H{"success": false, "error": errMsg})
}

func respondValidationError(c *gin.Context, verr *service.ValidationError) {
	body := gin.H{"success": false, "error": verr.Message}
	if len(verr.Fields) > 0 {
		body["fields"] = verr.Fields
	}
	c.JSON(http.StatusBadRequest, body)
}

// bindJSON decodes the request body into dst, translating decode failures
// into the envelope. Oversized bodies map to 413, everything else to 400.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(c, http.StatusRequestEntityTooLarge, "Request body terlalu besar")
			return false
		}
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return false
	}
	return true
}
