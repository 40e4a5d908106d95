package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/noah-isme/campus-timetable-api/internal/dto"
	"github.com/noah-isme/campus-timetable-api/internal/scheduler/jobqueue"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
	"github.com/noah-isme/campus-timetable-api/pkg/response"
)

// AsyncScheduleHandler exposes a non-blocking variant of
// generate_schedule for callers that don't want to hold a connection
// open through a 20-30s solve.
type AsyncScheduleHandler struct {
	queue *jobqueue.SolveQueue
}

// NewAsyncScheduleHandler constructs the handler.
func NewAsyncScheduleHandler(queue *jobqueue.SolveQueue) *AsyncScheduleHandler {
	return &AsyncScheduleHandler{queue: queue}
}

// GenerateAsync godoc
// @Summary Queue a timetable solve without blocking the caller
// @Description Submits the same generate_schedule request onto a background worker pool and returns a job id to poll.
// @Tags Scheduler
// @Accept json
// @Produce json
// @Param payload body dto.GenerateScheduleRequest true "Generate schedule payload"
// @Success 202 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedules/generate/async [post]
func (h *AsyncScheduleHandler) GenerateAsync(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate_schedule payload"))
		return
	}

	jobID := uuid.NewString()
	if err := h.queue.Submit(req, jobID); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to queue solve"))
		return
	}

	response.JSON(c, http.StatusAccepted, dto.GenerateScheduleAsyncResponse{JobID: jobID, QueueDepth: h.queue.Depth()}, nil)
}

// JobStatus godoc
// @Summary Poll a queued solve's status
// @Tags Scheduler
// @Produce json
// @Param id path string true "Job id returned by GenerateAsync"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schedules/jobs/{id} [get]
func (h *AsyncScheduleHandler) JobStatus(c *gin.Context) {
	jobID := c.Param("id")
	record, ok := h.queue.Status(jobID)
	if !ok {
		response.Error(c, appErrors.ErrNotFound)
		return
	}

	body := dto.SolveJobStatusResponse{JobID: record.JobID, Status: string(record.Status), Error: record.Error}
	if record.Result != nil {
		body.Result = record.Result
	}
	response.JSON(c, http.StatusOK, body, nil)
}
