package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-timetable-api/internal/dto"
	"github.com/noah-isme/campus-timetable-api/internal/models"
)

type scheduleGeneratorMock struct {
	captured       dto.GenerateScheduleRequest
	capturedOptReq dto.ApplyExternalOptimizationRequest
	generateResp   *dto.GenerateScheduleResponse
	optimizeResp   *dto.ApplyExternalOptimizationResponse
	optimizeErr    error
}

func (m *scheduleGeneratorMock) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	m.captured = req
	if m.generateResp != nil {
		return m.generateResp, nil
	}
	return &dto.GenerateScheduleResponse{Success: true, VersionID: "version-1"}, nil
}

func (m *scheduleGeneratorMock) ApplyExternalOptimization(ctx context.Context, req dto.ApplyExternalOptimizationRequest) (*dto.ApplyExternalOptimizationResponse, error) {
	m.capturedOptReq = req
	if m.optimizeErr != nil {
		return nil, m.optimizeErr
	}
	if m.optimizeResp != nil {
		return m.optimizeResp, nil
	}
	return &dto.ApplyExternalOptimizationResponse{NewVersionID: "version-2"}, nil
}

func (m *scheduleGeneratorMock) ListVersions(ctx context.Context, req dto.ScheduleVersionQuery) ([]models.ScheduleVersionSummary, error) {
	return []models.ScheduleVersionSummary{{ID: "version-1", Semester: req.Semester}}, nil
}

func (m *scheduleGeneratorMock) SetVersionStatus(ctx context.Context, versionID string, req dto.UpdateVersionStatusRequest) error {
	return nil
}

func TestScheduleGeneratorHandlerGenerateSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &scheduleGeneratorMock{}
	handler := &ScheduleGeneratorHandler{service: mockSvc}
	payload := []byte(`{"semester":1,"version_name":"fall-2026"}`)
	req, _ := http.NewRequest(http.MethodPost, "/schedules/generate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, mockSvc.captured.Semester)
	require.Equal(t, "fall-2026", mockSvc.captured.VersionName)
}

func TestScheduleGeneratorHandlerGenerateValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &ScheduleGeneratorHandler{service: &scheduleGeneratorMock{}}
	req, _ := http.NewRequest(http.MethodPost, "/schedules/generate", bytes.NewReader([]byte(`{"semester":`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleGeneratorHandlerListVersions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &ScheduleGeneratorHandler{service: &scheduleGeneratorMock{}}
	req, _ := http.NewRequest(http.MethodGet, "/schedules/versions?semester=3", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.ListVersions(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "version-1")
}

func TestScheduleGeneratorHandlerApplyExternalOptimizationSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &scheduleGeneratorMock{}
	handler := &ScheduleGeneratorHandler{service: mockSvc}
	payload := []byte(`{"semester":1,"goals":[{"name":"minimize_waste"}]}`)
	req, _ := http.NewRequest(http.MethodPost, "/schedules/optimize", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.ApplyExternalOptimization(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, mockSvc.capturedOptReq.Semester)
	require.Len(t, mockSvc.capturedOptReq.Goals, 1)
	require.Equal(t, "minimize_waste", mockSvc.capturedOptReq.Goals[0].Name)
}
