package dto

// GenerateScheduleRequest is the generate_schedule payload: which
// semester to solve for, an optional label for the resulting version,
// and an optional override for the solver's wall-clock budget.
type GenerateScheduleRequest struct {
	Semester         int    `json:"semester" validate:"required,min=1"`
	VersionName      string `json:"version_name" validate:"omitempty,max=120"`
	TimeLimitSeconds int    `json:"time_limit_seconds" validate:"omitempty,min=1,max=300"`
}

// ScheduleEntryView is the response-facing projection of one placed event.
type ScheduleEntryView struct {
	OfferingID int64 `json:"offering_id"`
	BatchID    int64 `json:"batch_id"`
	FacultyID  int64 `json:"faculty_id"`
	RoomID     int64 `json:"room_id"`
	Day        int   `json:"day"`
	Slot       int   `json:"slot"`
}

// GenerateScheduleResponse is generate_schedule's result envelope. On
// success Reason/Message are empty; on failure VersionID/EntriesCount/
// SampleEntries/SolverStatus are zero-valued.
type GenerateScheduleResponse struct {
	Success       bool                `json:"success"`
	VersionID     string              `json:"version_id,omitempty"`
	EntriesCount  int                 `json:"entries_count,omitempty"`
	SampleEntries []ScheduleEntryView `json:"sample_entries,omitempty"`
	SolverStatus  string              `json:"solver_status,omitempty"`
	Reason        string              `json:"reason,omitempty"`
	Message       string              `json:"message,omitempty"`
}

// GoalRequest is an opaque soft-goal hint forwarded untouched to the re-optimizer.
type GoalRequest struct {
	Name   string            `json:"name" validate:"required"`
	Params map[string]string `json:"params"`
}

// ApplyExternalOptimizationRequest carries the version to re-optimize
// from (defaulting to the semester's most recent version when
// SourceVersionID is blank) and the goals to forward.
type ApplyExternalOptimizationRequest struct {
	Semester        int           `json:"semester" validate:"required,min=1"`
	SourceVersionID string        `json:"source_version_id" validate:"omitempty,uuid4"`
	Goals           []GoalRequest `json:"goals"`
}

// ApplyExternalOptimizationResponse names the freshly written version on success.
type ApplyExternalOptimizationResponse struct {
	NewVersionID string `json:"new_version_id"`
}

// ScheduleVersionQuery filters version listings by semester.
type ScheduleVersionQuery struct {
	Semester int `form:"semester" validate:"required,min=1"`
}

// UpdateVersionStatusRequest transitions a version's lifecycle status.
type UpdateVersionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=DRAFT PUBLISHED ARCHIVED"`
}

// GenerateScheduleAsyncResponse acknowledges a queued solve; poll
// /schedules/jobs/:id for its outcome.
type GenerateScheduleAsyncResponse struct {
	JobID      string `json:"job_id"`
	QueueDepth int    `json:"queue_depth"`
}

// SolveJobStatusResponse reports a queued solve's current lifecycle state.
type SolveJobStatusResponse struct {
	JobID  string                    `json:"job_id"`
	Status string                    `json:"status"`
	Result *GenerateScheduleResponse `json:"result,omitempty"`
	Error  string                    `json:"error,omitempty"`
}

// ExportScheduleRequest selects the rendered format for a schedule download.
type ExportScheduleRequest struct {
	Format string `form:"format" validate:"required,oneof=csv pdf"`
}

// ExportScheduleResponse points the caller at the signed download link.
type ExportScheduleResponse struct {
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at"`
}
