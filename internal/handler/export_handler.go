package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-timetable-api/internal/dto"
	"github.com/noah-isme/campus-timetable-api/internal/service"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
	"github.com/noah-isme/campus-timetable-api/pkg/response"
)

// ExportHandler exposes CSV/PDF schedule grid downloads.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Export godoc
// @Summary Render a schedule version as a CSV/PDF day-by-slot grid
// @Tags Scheduler
// @Produce json
// @Param id path string true "Schedule version id"
// @Param format query string true "csv or pdf"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedules/versions/{id}/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	versionID := c.Param("id")
	var req dto.ExportScheduleRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export request"))
		return
	}

	result, err := h.service.Generate(c.Request.Context(), versionID, service.ExportFormat(req.Format))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto.ExportScheduleResponse{
		URL:       result.URL,
		ExpiresAt: result.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}, nil)
}

// Download godoc
// @Summary Download an exported schedule grid file via its signed token
// @Tags Scheduler
// @Produce application/octet-stream
// @Param token path string true "Signed export token"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /export/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	token := c.Param("token")
	_, relPath, _, err := h.service.ParseToken(token, false)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "export link expired or invalid"))
		return
	}

	f, err := h.service.Open(relPath)
	if err != nil {
		response.Error(c, appErrors.ErrNotFound)
		return
	}
	defer f.Close()

	c.FileAttachment(f.Name(), relPath)
}
