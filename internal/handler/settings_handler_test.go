package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"takjil_scheduler/internal/middleware"
	"takjil_scheduler/internal/model"
	"takjil_scheduler/internal/service"
	"takjil_scheduler/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newSettingsTestRouter(svc service.SettingsService) (*gin.Engine, *utils.JWTUtil) {
	gin.SetMode(gin.TestMode)
	jwtUtil := utils.NewJWTUtil("test-secret", 1)
	router := gin.New()
	h := NewSettingsHandler(svc, zap.NewNop())
	h.RegisterSettingsRoutes(router.Group("/api"), middleware.AdminSessionMiddleware(jwtUtil), passMW)
	return router, jwtUtil
}

func TestSettingsHandler_Get_Public(t *testing.T) {
	start := "2026-02-18"
	svc := &fakeSettingsService{
		getFn: func(ctx context.Context) (*model.SettingsResponse, error) {
			return &model.SettingsResponse{
				Phase2Unlocked: true,
				AppTitle:       "Takjil Ramadhan 1447H",
				StartDate:      &start,
				UpdatedAt:      time.Now(),
			}, nil
		},
	}
	router, _ := newSettingsTestRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/settings", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"phase2_unlocked":true`)
	assert.Contains(t, w.Body.String(), `"start_date":"2026-02-18"`)
	// The credential never appears in any settings response
	assert.NotContains(t, w.Body.String(), "password")
}

func TestSettingsHandler_Update_RequiresSession(t *testing.T) {
	svc := &fakeSettingsService{}
	router, _ := newSettingsTestRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(`{"phase2_unlocked": true}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSettingsHandler_Update(t *testing.T) {
	svc := &fakeSettingsService{
		updateFn: func(ctx context.Context, req model.UpdateSettingsRequest) (*model.SettingsResponse, error) {
			assert.NotNil(t, req.Phase2Unlocked)
			assert.True(t, *req.Phase2Unlocked)
			assert.Nil(t, req.AppTitle)
			return &model.SettingsResponse{Phase2Unlocked: true, AppTitle: "Takjil Ramadhan 1447H"}, nil
		},
	}
	router, jwtUtil := newSettingsTestRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(`{"phase2_unlocked": true}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(adminCookie(t, jwtUtil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"phase2_unlocked":true`)
}

func TestSettingsHandler_Update_ValidationError(t *testing.T) {
	svc := &fakeSettingsService{
		updateFn: func(ctx context.Context, req model.UpdateSettingsRequest) (*model.SettingsResponse, error) {
			return nil, &service.ValidationError{
				Code:    service.CodeDateFormat,
				Message: "Tanggal mulai harus berformat YYYY-MM-DD",
				Fields:  map[string]string{"start_date": "Format harus YYYY-MM-DD"},
			}
		},
	}
	router, jwtUtil := newSettingsTestRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(`{"start_date": "18-02-2026"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(adminCookie(t, jwtUtil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Tanggal mulai harus berformat YYYY-MM-DD")
}
