package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-timetable-api/internal/dto"
	"github.com/noah-isme/campus-timetable-api/internal/models"
	"github.com/noah-isme/campus-timetable-api/internal/service"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
	"github.com/noah-isme/campus-timetable-api/pkg/response"
)

type scheduleGenerator interface {
	Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error)
	ApplyExternalOptimization(ctx context.Context, req dto.ApplyExternalOptimizationRequest) (*dto.ApplyExternalOptimizationResponse, error)
	ListVersions(ctx context.Context, req dto.ScheduleVersionQuery) ([]models.ScheduleVersionSummary, error)
	SetVersionStatus(ctx context.Context, versionID string, req dto.UpdateVersionStatusRequest) error
}

// ScheduleGeneratorHandler exposes the schedule generation and
// re-optimization endpoints.
type ScheduleGeneratorHandler struct {
	service scheduleGenerator
}

// NewScheduleGeneratorHandler constructs the handler.
func NewScheduleGeneratorHandler(svc *service.ScheduleGeneratorService) *ScheduleGeneratorHandler {
	return &ScheduleGeneratorHandler{service: svc}
}

// Generate godoc
// @Summary Generate a conflict-free timetable for a semester
// @Description Runs the constraint solver against current rooms, timeslots, batches and offerings, and persists the result as a new draft schedule version on success.
// @Tags Scheduler
// @Accept json
// @Produce json
// @Param payload body dto.GenerateScheduleRequest true "Generate schedule payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedules/generate [post]
func (h *ScheduleGeneratorHandler) Generate(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate_schedule payload"))
		return
	}

	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ApplyExternalOptimization godoc
// @Summary Re-optimize a previously generated schedule
// @Description Routes a prior version's assignments through the re-optimizer and re-validates the result before persisting it as a new derived version. Rejected proposals are never written.
// @Tags Scheduler
// @Accept json
// @Produce json
// @Param payload body dto.ApplyExternalOptimizationRequest true "Apply external optimization payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /schedules/optimize [post]
func (h *ScheduleGeneratorHandler) ApplyExternalOptimization(c *gin.Context) {
	var req dto.ApplyExternalOptimizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid apply_external_optimization payload"))
		return
	}

	result, err := h.service.ApplyExternalOptimization(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ListVersions godoc
// @Summary List schedule versions for a semester
// @Tags Scheduler
// @Produce json
// @Param semester query int true "Semester"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedules/versions [get]
func (h *ScheduleGeneratorHandler) ListVersions(c *gin.Context) {
	var req dto.ScheduleVersionQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid version listing query"))
		return
	}

	versions, err := h.service.ListVersions(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, versions, nil)
}

// SetVersionStatus godoc
// @Summary Transition a schedule version's lifecycle status
// @Tags Scheduler
// @Accept json
// @Produce json
// @Param id path string true "Version ID"
// @Param payload body dto.UpdateVersionStatusRequest true "Status payload"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedules/versions/{id}/status [put]
func (h *ScheduleGeneratorHandler) SetVersionStatus(c *gin.Context) {
	var req dto.UpdateVersionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid version status payload"))
		return
	}

	if err := h.service.SetVersionStatus(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
