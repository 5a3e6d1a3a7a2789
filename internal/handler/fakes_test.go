package handler

import (
	"bytes"
	"context"
	"time"

	"takjil_scheduler/internal/model"
	"takjil_scheduler/internal/service"

	"github.com/gin-gonic/gin"
)

// Function-field fakes for the service interfaces. Tests fill only the
// methods the route under test calls.

type fakeRegistrationService struct {
	listPublicFn func(ctx context.Context) ([]model.PublicRegistration, error)
	listAdminFn  func(ctx context.Context) ([]model.Registration, error)
	createFn     func(ctx context.Context, req model.CreateRegistrationRequest) (*model.Registration, error)
	updateFn     func(ctx context.Context, id int64, req model.UpdateRegistrationRequest) (*model.Registration, error)
	deleteFn     func(ctx context.Context, id int64) error
	deleteAllFn  func(ctx context.Context) (int64, error)
}

func (f *fakeRegistrationService) ListPublic(ctx context.Context) ([]model.PublicRegistration, error) {
	return f.listPublicFn(ctx)
}

func (f *fakeRegistrationService) ListAdmin(ctx context.Context) ([]model.Registration, error) {
	return f.listAdminFn(ctx)
}

func (f *fakeRegistrationService) Create(ctx context.Context, req model.CreateRegistrationRequest) (*model.Registration, error) {
	return f.createFn(ctx, req)
}

func (f *fakeRegistrationService) Update(ctx context.Context, id int64, req model.UpdateRegistrationRequest) (*model.Registration, error) {
	return f.updateFn(ctx, id, req)
}

func (f *fakeRegistrationService) Delete(ctx context.Context, id int64) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeRegistrationService) DeleteAll(ctx context.Context) (int64, error) {
	return f.deleteAllFn(ctx)
}

type fakeAuthService struct {
	loginFn func(ctx context.Context, password string) (string, time.Time, error)
}

func (f *fakeAuthService) Login(ctx context.Context, password string) (string, time.Time, error) {
	return f.loginFn(ctx, password)
}

type fakeSettingsService struct {
	getFn    func(ctx context.Context) (*model.SettingsResponse, error)
	updateFn func(ctx context.Context, req model.UpdateSettingsRequest) (*model.SettingsResponse, error)
}

func (f *fakeSettingsService) Get(ctx context.Context) (*model.SettingsResponse, error) {
	return f.getFn(ctx)
}

func (f *fakeSettingsService) Update(ctx context.Context, req model.UpdateSettingsRequest) (*model.SettingsResponse, error) {
	return f.updateFn(ctx, req)
}

func (f *fakeSettingsService) EnsureAdminCredential(ctx context.Context) error {
	return nil
}

type fakeExportService struct {
	csvFn  func(ctx context.Context) (*bytes.Buffer, error)
	xlsxFn func(ctx context.Context) (*bytes.Buffer, error)
}

func (f *fakeExportService) ExportCSV(ctx context.Context) (*bytes.Buffer, error) {
	return f.csvFn(ctx)
}

func (f *fakeExportService) ExportXLSX(ctx context.Context) (*bytes.Buffer, error) {
	return f.xlsxFn(ctx)
}

var _ service.RegistrationService = (*fakeRegistrationService)(nil)
var _ service.AuthService = (*fakeAuthService)(nil)
var _ service.SettingsService = (*fakeSettingsService)(nil)
var _ service.ExportService = (*fakeExportService)(nil)

// passMW stands in for rate-limit middlewares that are not under test.
func passMW(c *gin.Context) { c.Next() }
