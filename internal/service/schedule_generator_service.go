package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-timetable-api/internal/dto"
	"github.com/noah-isme/campus-timetable-api/internal/models"
	"github.com/noah-isme/campus-timetable-api/internal/scheduler/domain"
	"github.com/noah-isme/campus-timetable-api/internal/scheduler/engine"
	"github.com/noah-isme/campus-timetable-api/internal/scheduler/optimize"
	"github.com/noah-isme/campus-timetable-api/internal/scheduler/validate"
	appErrors "github.com/noah-isme/campus-timetable-api/pkg/errors"
)

// roomRepository, timeslotRepository, etc. are the narrow read
// surfaces the generator needs, one per entity rather than one god
// repository interface.
type roomRepository interface {
	ListAll(ctx context.Context) ([]models.Room, error)
}

type timeslotRepository interface {
	ListAll(ctx context.Context) ([]models.Timeslot, error)
}

type batchRepository interface {
	ListBySemester(ctx context.Context, semester int) ([]models.Batch, error)
}

type subjectRepository interface {
	ListAll(ctx context.Context) ([]models.Subject, error)
}

type offeringRepository interface {
	ListBySemester(ctx context.Context, semester int) ([]models.Offering, error)
}

type facultyAssignmentRepository interface {
	ListByOfferingIDs(ctx context.Context, offeringIDs []int64) ([]models.FacultyAssignment, error)
}

type facultyUnavailabilityRepository interface {
	ListByFacultyIDs(ctx context.Context, facultyIDs []int64) ([]models.FacultyUnavailability, error)
}

type fixedSlotRepository interface {
	ListByOfferingIDs(ctx context.Context, offeringIDs []int64) ([]models.FixedSlot, error)
}

type scheduleVersionRepository interface {
	FindByID(ctx context.Context, id string) (*models.ScheduleVersion, error)
	FindMostRecent(ctx context.Context, semester int) (*models.ScheduleVersion, error)
	ListBySemester(ctx context.Context, semester int) ([]models.ScheduleVersionSummary, error)
	UpdateStatus(ctx context.Context, id string, status models.ScheduleVersionStatus) error
}

type scheduleEntryRepository interface {
	ListByVersion(ctx context.Context, versionID string) ([]models.ScheduleEntry, error)
}

type versionWriter interface {
	Write(ctx context.Context, version *models.ScheduleVersion, entries []models.ScheduleEntry) error
}

// ScheduleGeneratorConfig tunes the solver's wall-clock budget and
// worker fan-out, sourced from pkg/config.SchedulerConfig with
// per-request overrides.
type ScheduleGeneratorConfig struct {
	TimeLimitSeconds int
	Workers          int
	// ProposalTTL bounds how long a staged source-version read (the
	// entry list handed to the re-optimizer) stays cached.
	ProposalTTL time.Duration
}

// ScheduleGeneratorService orchestrates generate_schedule and
// apply_external_optimization: load repository state into a
// domain.Input, hand it to the scheduler core, and persist whatever
// the core hands back through the Version Writer.
type ScheduleGeneratorService struct {
	rooms       roomRepository
	timeslots   timeslotRepository
	batches     batchRepository
	subjects    subjectRepository
	offerings   offeringRepository
	assignments facultyAssignmentRepository
	unavailable facultyUnavailabilityRepository
	fixedSlots  fixedSlotRepository
	versions    scheduleVersionRepository
	entries     scheduleEntryRepository
	writer      versionWriter
	reoptimizer optimize.Reoptimizer
	validator   *validator.Validate
	logger      *zap.Logger
	metrics     *MetricsService
	cache       *CacheService
	cfg         ScheduleGeneratorConfig
}

// NewScheduleGeneratorService constructs the service.
func NewScheduleGeneratorService(
	rooms roomRepository,
	timeslots timeslotRepository,
	batches batchRepository,
	subjects subjectRepository,
	offerings offeringRepository,
	assignments facultyAssignmentRepository,
	unavailable facultyUnavailabilityRepository,
	fixedSlots fixedSlotRepository,
	versions scheduleVersionRepository,
	entries scheduleEntryRepository,
	writer versionWriter,
	reoptimizer optimize.Reoptimizer,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg ScheduleGeneratorConfig,
) *ScheduleGeneratorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if reoptimizer == nil {
		reoptimizer = optimize.NewLocalSearchReoptimizer()
	}
	if cfg.TimeLimitSeconds <= 0 {
		cfg.TimeLimitSeconds = 20
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 8
	}
	return &ScheduleGeneratorService{
		rooms:       rooms,
		timeslots:   timeslots,
		batches:     batches,
		subjects:    subjects,
		offerings:   offerings,
		assignments: assignments,
		unavailable: unavailable,
		fixedSlots:  fixedSlots,
		versions:    versions,
		entries:     entries,
		writer:      writer,
		reoptimizer: reoptimizer,
		validator:   validate,
		logger:      logger,
		cfg:         cfg,
	}
}

// WithMetrics attaches solve/proposal instrumentation. Safe to skip in
// tests; a nil MetricsService is a no-op on every observation.
func (s *ScheduleGeneratorService) WithMetrics(m *MetricsService) *ScheduleGeneratorService {
	s.metrics = m
	return s
}

// WithCache attaches the optional Redis-backed cache used to
// accelerate re-optimization reads (recent-version resolution and a
// version's entry list). The solve path itself never consults it.
func (s *ScheduleGeneratorService) WithCache(c *CacheService) *ScheduleGeneratorService {
	s.cache = c
	return s
}

// Generate runs the full solve pipeline for a semester and, on
// success, persists the result as a new draft version.
func (s *ScheduleGeneratorService) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generate_schedule payload")
	}

	in, fixed, err := s.loadInput(ctx, req.Semester)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load scheduler input")
	}

	timeLimit := s.cfg.TimeLimitSeconds
	if req.TimeLimitSeconds > 0 {
		timeLimit = req.TimeLimitSeconds
	}
	cfg := engine.Config{TimeLimit: time.Duration(timeLimit) * time.Second, Workers: s.cfg.Workers}

	solveStart := time.Now()
	result := engine.Generate(ctx, in, fixed, cfg)
	if result.Success {
		s.metrics.ObserveSolve(string(result.SolverStatus), time.Since(solveStart))
	} else {
		s.metrics.ObserveSolve(string(result.FailureReason), time.Since(solveStart))
	}
	if !result.Success {
		s.logger.Sugar().Warnw("generate_schedule did not produce a schedule",
			"semester", req.Semester, "reason", result.FailureReason, "message", result.Message)
		return &dto.GenerateScheduleResponse{
			Success: false,
			Reason:  string(result.FailureReason),
			Message: result.Message,
		}, nil
	}

	eventsByIndex := make(map[domain.EventIndex]domain.Event, len(result.Events))
	classesPerWeek := make(map[domain.OfferingID]int, len(in.Offerings))
	eventToOffering := make(map[domain.EventIndex]domain.OfferingID, len(result.Events))
	for _, e := range result.Events {
		eventsByIndex[e.Index] = e
		eventToOffering[e.Index] = e.OfferingID
	}
	for _, o := range in.Offerings {
		if subj, ok := in.Subjects[o.SubjectCode]; ok {
			classesPerWeek[o.ID] = subj.ClassesPerWeek
		}
	}
	if err := validate.AssertCoverage(result.Assignments, eventToOffering, classesPerWeek); err != nil {
		s.logger.Sugar().Errorw("solver output failed coverage assertion", "semester", req.Semester, "error", err)
		return &dto.GenerateScheduleResponse{
			Success: false,
			Reason:  string(engine.ReasonNoSolution),
			Message: err.Error(),
		}, nil
	}

	entries := make([]models.ScheduleEntry, 0, len(result.Assignments))
	for _, a := range result.Assignments {
		ev := eventsByIndex[a.Event]
		entries = append(entries, models.ScheduleEntry{
			OfferingID: int64(ev.OfferingID),
			BatchID:    int64(ev.BatchID),
			FacultyID:  int64(ev.FacultyID),
			RoomID:     int64(a.Placement.RoomID),
			Day:        a.Placement.Day,
			Slot:       a.Placement.Slot,
		})
	}

	versionName := req.VersionName
	if versionName == "" {
		versionName = fmt.Sprintf("semester-%d %s", req.Semester, time.Now().UTC().Format("2006-01-02 15:04"))
	}
	meta, _ := json.Marshal(map[string]any{
		"solver_status":           string(result.SolverStatus),
		"skipped_missing_subject": result.Summary.SkippedMissingSubject,
		"skipped_missing_batch":   result.Summary.SkippedMissingBatch,
		"skipped_no_faculty":      result.Summary.SkippedNoFaculty,
	})
	version := &models.ScheduleVersion{
		Name:       versionName,
		Semester:   req.Semester,
		Status:     models.ScheduleVersionStatusDraft,
		WasteSlots: totalWaste(entries, in),
		Meta:       types.JSONText(meta),
	}

	if err := s.writer.Write(ctx, version, entries); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist schedule version")
	}
	s.invalidateRecent(ctx, req.Semester)

	return &dto.GenerateScheduleResponse{
		Success:       true,
		VersionID:     version.ID,
		EntriesCount:  len(entries),
		SampleEntries: sampleEntries(entries),
		SolverStatus:  string(result.SolverStatus),
	}, nil
}

// ApplyExternalOptimization routes a prior version's assignments through
// the Optimizer Integration Adapter (re-optimize, re-validate, then —
// only on acceptance — persist as a new derived version).
func (s *ScheduleGeneratorService) ApplyExternalOptimization(ctx context.Context, req dto.ApplyExternalOptimizationRequest) (*dto.ApplyExternalOptimizationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid apply_external_optimization payload")
	}

	version, err := s.resolveSourceVersion(ctx, req.Semester, req.SourceVersionID)
	if err != nil {
		return nil, err
	}

	entries, err := s.loadEntries(ctx, version.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load source schedule entries")
	}
	if len(entries) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "source version has no entries")
	}

	in, _, err := s.loadInput(ctx, req.Semester)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load scheduler input")
	}

	source, eventToOffering, classesPerWeek := buildSource(version, entries, in)
	goals := make([]optimize.Goal, 0, len(req.Goals))
	for _, g := range req.Goals {
		goals = append(goals, optimize.Goal{Name: g.Name, Params: g.Params})
	}

	outcome, err := optimize.Apply(ctx, s.reoptimizer, source, goals)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "re-optimization failed")
	}
	s.metrics.RecordProposal(outcome.Accepted)
	if !outcome.Accepted {
		return nil, appErrors.Clone(appErrors.ErrNoSolution, "re-optimized schedule rejected: "+outcome.Reason)
	}

	assignments := make([]domain.Assignment, 0, len(outcome.Candidates))
	timeslotByID := make(map[domain.TimeslotID]domain.Timeslot, len(in.Timeslots))
	for _, t := range in.Timeslots {
		timeslotByID[t.ID] = t
	}
	for _, c := range outcome.Candidates {
		ts := timeslotByID[c.TimeslotID]
		assignments = append(assignments, domain.Assignment{
			Event:     c.EventID,
			Placement: domain.Placement{Day: ts.Day, Slot: ts.Slot, RoomID: c.RoomID},
		})
	}
	if err := validate.AssertCoverage(assignments, eventToOffering, classesPerWeek); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNoSolution, "re-optimized schedule failed coverage check: "+err.Error())
	}

	newEntries := make([]models.ScheduleEntry, 0, len(outcome.Candidates))
	for _, c := range outcome.Candidates {
		ts := timeslotByID[c.TimeslotID]
		proj := source.Lookups.Events[c.EventID]
		newEntries = append(newEntries, models.ScheduleEntry{
			OfferingID: int64(proj.OfferingID),
			BatchID:    int64(proj.BatchID),
			FacultyID:  int64(proj.FacultyID),
			RoomID:     int64(c.RoomID),
			Day:        ts.Day,
			Slot:       ts.Slot,
		})
	}

	meta, _ := json.Marshal(map[string]any{"source_version_id": version.ID, "reoptimized": true})
	newVersion := &models.ScheduleVersion{
		Name:       outcome.VersionName,
		Semester:   req.Semester,
		Status:     models.ScheduleVersionStatusDraft,
		WasteSlots: totalWaste(newEntries, in),
		Meta:       types.JSONText(meta),
	}
	if err := s.writer.Write(ctx, newVersion, newEntries); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist re-optimized schedule version")
	}
	s.invalidateRecent(ctx, req.Semester)

	return &dto.ApplyExternalOptimizationResponse{NewVersionID: newVersion.ID}, nil
}

// ListVersions returns every persisted version summary for a semester,
// newest first.
func (s *ScheduleGeneratorService) ListVersions(ctx context.Context, req dto.ScheduleVersionQuery) ([]models.ScheduleVersionSummary, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid version listing query")
	}
	versions, err := s.versions.ListBySemester(ctx, req.Semester)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedule versions")
	}
	return versions, nil
}

// SetVersionStatus transitions a version between draft, published and
// archived. Entries are immutable regardless of status; publishing is
// a visibility decision, not a re-validation.
func (s *ScheduleGeneratorService) SetVersionStatus(ctx context.Context, versionID string, req dto.UpdateVersionStatusRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid version status payload")
	}
	if err := s.versions.UpdateStatus(ctx, versionID, models.ScheduleVersionStatus(req.Status)); err != nil {
		return err
	}
	return nil
}

func (s *ScheduleGeneratorService) resolveSourceVersion(ctx context.Context, semester int, sourceVersionID string) (*models.ScheduleVersion, error) {
	if sourceVersionID != "" {
		version, err := s.versions.FindByID(ctx, sourceVersionID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "source schedule version not found")
		}
		return version, nil
	}

	key := fmt.Sprintf("schedule:recent:%d", semester)
	var cached models.ScheduleVersion
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	version, err := s.versions.FindMostRecent(ctx, semester)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "no schedule version exists for this semester")
	}
	_ = s.cache.Set(ctx, key, version, 0)
	return version, nil
}

// loadEntries reads one version's entries, through the cache when it
// is enabled. Versions are immutable once written, so a cached entry
// list can only go stale by expiring.
func (s *ScheduleGeneratorService) loadEntries(ctx context.Context, versionID string) ([]models.ScheduleEntry, error) {
	key := "schedule:entries:" + versionID
	var cached []models.ScheduleEntry
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}
	entries, err := s.entries.ListByVersion(ctx, versionID)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, entries, s.cfg.ProposalTTL)
	return entries, nil
}

// invalidateRecent drops the cached most-recent-version pointer for a
// semester after a new version lands.
func (s *ScheduleGeneratorService) invalidateRecent(ctx context.Context, semester int) {
	if err := s.cache.Invalidate(ctx, fmt.Sprintf("schedule:recent:%d", semester)); err != nil {
		s.logger.Sugar().Warnw("failed to invalidate recent-version cache", "semester", semester, "error", err)
	}
}

// loadInput assembles a domain.Input plus the fixed-placement map the
// engine expects, from every repository this service was given.
func (s *ScheduleGeneratorService) loadInput(ctx context.Context, semester int) (domain.Input, map[domain.OfferingID]domain.FixedPlacement, error) {
	rooms, err := s.rooms.ListAll(ctx)
	if err != nil {
		return domain.Input{}, nil, fmt.Errorf("list rooms: %w", err)
	}
	timeslots, err := s.timeslots.ListAll(ctx)
	if err != nil {
		return domain.Input{}, nil, fmt.Errorf("list timeslots: %w", err)
	}
	batches, err := s.batches.ListBySemester(ctx, semester)
	if err != nil {
		return domain.Input{}, nil, fmt.Errorf("list batches: %w", err)
	}
	subjects, err := s.subjects.ListAll(ctx)
	if err != nil {
		return domain.Input{}, nil, fmt.Errorf("list subjects: %w", err)
	}
	offerings, err := s.offerings.ListBySemester(ctx, semester)
	if err != nil {
		return domain.Input{}, nil, fmt.Errorf("list offerings: %w", err)
	}

	offeringIDs := make([]int64, len(offerings))
	for i, o := range offerings {
		offeringIDs[i] = o.ID
	}

	assignments, err := s.assignments.ListByOfferingIDs(ctx, offeringIDs)
	if err != nil {
		return domain.Input{}, nil, fmt.Errorf("list faculty assignments: %w", err)
	}

	facultyIDSet := make(map[int64]struct{}, len(assignments))
	for _, a := range assignments {
		facultyIDSet[a.FacultyID] = struct{}{}
	}
	facultyIDs := make([]int64, 0, len(facultyIDSet))
	for id := range facultyIDSet {
		facultyIDs = append(facultyIDs, id)
	}

	unavailable, err := s.unavailable.ListByFacultyIDs(ctx, facultyIDs)
	if err != nil {
		return domain.Input{}, nil, fmt.Errorf("list faculty unavailability: %w", err)
	}
	fixedSlots, err := s.fixedSlots.ListByOfferingIDs(ctx, offeringIDs)
	if err != nil {
		return domain.Input{}, nil, fmt.Errorf("list fixed slots: %w", err)
	}

	in := domain.Input{
		Rooms:       mapRooms(rooms),
		Timeslots:   mapTimeslots(timeslots),
		Batches:     mapBatches(batches),
		Subjects:    mapSubjects(subjects),
		Offerings:   mapOfferings(offerings),
		Assignments: mapAssignments(assignments),
		Unavailable: mapUnavailable(unavailable),
		Fixed:       mapFixed(fixedSlots),
	}

	fixed := make(map[domain.OfferingID]domain.FixedPlacement, len(in.Fixed))
	for _, f := range in.Fixed {
		fixed[f.OfferingID] = f
	}

	return in, fixed, nil
}

func mapRooms(rows []models.Room) []domain.Room {
	out := make([]domain.Room, len(rows))
	for i, r := range rows {
		out[i] = domain.Room{ID: domain.RoomID(r.ID), Code: r.Code, Capacity: r.Capacity, Type: domain.RoomType(r.Type)}
	}
	return out
}

func mapTimeslots(rows []models.Timeslot) []domain.Timeslot {
	out := make([]domain.Timeslot, len(rows))
	for i, t := range rows {
		out[i] = domain.Timeslot{ID: domain.TimeslotID(t.ID), Day: t.Day, Slot: t.Slot, Start: t.Start, End: t.End}
	}
	return out
}

func mapBatches(rows []models.Batch) []domain.Batch {
	out := make([]domain.Batch, len(rows))
	for i, b := range rows {
		out[i] = domain.Batch{ID: domain.BatchID(b.ID), Name: b.Name, Semester: b.Semester, Size: b.Size, Shift: domain.Shift(b.Shift)}
	}
	return out
}

func mapSubjects(rows []models.Subject) map[string]domain.Subject {
	out := make(map[string]domain.Subject, len(rows))
	for _, sub := range rows {
		out[sub.Code] = domain.Subject{
			Code: sub.Code, Title: sub.Title, Type: domain.SubjectType(sub.Type),
			ClassesPerWeek: sub.ClassesPerWeek, DurationSlots: sub.DurationSlots,
		}
	}
	return out
}

func mapOfferings(rows []models.Offering) []domain.Offering {
	out := make([]domain.Offering, len(rows))
	for i, o := range rows {
		out[i] = domain.Offering{ID: domain.OfferingID(o.ID), SubjectCode: o.SubjectCode, BatchID: domain.BatchID(o.BatchID), Semester: o.Semester, Elective: o.Elective}
	}
	return out
}

func mapAssignments(rows []models.FacultyAssignment) []domain.FacultyAssignment {
	out := make([]domain.FacultyAssignment, len(rows))
	for i, a := range rows {
		out[i] = domain.FacultyAssignment{OfferingID: domain.OfferingID(a.OfferingID), FacultyID: domain.FacultyID(a.FacultyID), PreferenceScore: a.PreferenceScore}
	}
	return out
}

func mapUnavailable(rows []models.FacultyUnavailability) []domain.Unavailability {
	out := make([]domain.Unavailability, len(rows))
	for i, u := range rows {
		out[i] = domain.Unavailability{FacultyID: domain.FacultyID(u.FacultyID), Day: u.Day, Slot: u.Slot}
	}
	return out
}

func mapFixed(rows []models.FixedSlot) []domain.FixedPlacement {
	out := make([]domain.FixedPlacement, len(rows))
	for i, f := range rows {
		out[i] = domain.FixedPlacement{OfferingID: domain.OfferingID(f.OfferingID), Day: f.Day, Slot: f.Slot, RoomID: domain.RoomID(f.RoomID)}
	}
	return out
}

func totalWaste(entries []models.ScheduleEntry, in domain.Input) int {
	roomCapacity := make(map[int64]int, len(in.Rooms))
	for _, r := range in.Rooms {
		roomCapacity[int64(r.ID)] = r.Capacity
	}
	batchSize := make(map[int64]int, len(in.Batches))
	for _, b := range in.Batches {
		batchSize[int64(b.ID)] = b.Size
	}
	waste := 0
	for _, e := range entries {
		if w := roomCapacity[e.RoomID] - batchSize[e.BatchID]; w > 0 {
			waste += w
		}
	}
	return waste
}

func sampleEntries(entries []models.ScheduleEntry) []dto.ScheduleEntryView {
	sorted := append([]models.ScheduleEntry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Day != sorted[j].Day {
			return sorted[i].Day < sorted[j].Day
		}
		return sorted[i].Slot < sorted[j].Slot
	})
	limit := 20
	if len(sorted) < limit {
		limit = len(sorted)
	}
	out := make([]dto.ScheduleEntryView, limit)
	for i := 0; i < limit; i++ {
		e := sorted[i]
		out[i] = dto.ScheduleEntryView{
			OfferingID: e.OfferingID, BatchID: e.BatchID, FacultyID: e.FacultyID,
			RoomID: e.RoomID, Day: e.Day, Slot: e.Slot,
		}
	}
	return out
}

// buildSource reconstructs an optimize.Source from a persisted
// version's entries: each entry becomes one synthetic EventIndex (its
// slice position), since the solver's own event numbering is ephemeral
// and never persisted.
func buildSource(version *models.ScheduleVersion, entries []models.ScheduleEntry, in domain.Input) (optimize.Source, map[domain.EventIndex]domain.OfferingID, map[domain.OfferingID]int) {
	timeslotByDaySlot := make(map[[2]int]domain.TimeslotID, len(in.Timeslots))
	timeslots := make(map[domain.TimeslotID]optimize.TimeslotProjection, len(in.Timeslots))
	for _, t := range in.Timeslots {
		timeslotByDaySlot[[2]int{t.Day, t.Slot}] = t.ID
		timeslots[t.ID] = optimize.TimeslotProjection{Day: t.Day, Slot: t.Slot}
	}
	rooms := make(map[domain.RoomID]optimize.RoomProjection, len(in.Rooms))
	for _, r := range in.Rooms {
		rooms[r.ID] = optimize.RoomProjection{Capacity: r.Capacity, Type: r.Type}
	}
	batchSize := make(map[domain.BatchID]int, len(in.Batches))
	for _, b := range in.Batches {
		batchSize[b.ID] = b.Size
	}
	offeringByID := make(map[domain.OfferingID]domain.Offering, len(in.Offerings))
	for _, o := range in.Offerings {
		offeringByID[o.ID] = o
	}

	events := make(map[domain.EventIndex]optimize.EventProjection, len(entries))
	assignments := make([]validate.CandidateAssignment, 0, len(entries))
	eventToOffering := make(map[domain.EventIndex]domain.OfferingID, len(entries))
	classesPerWeek := make(map[domain.OfferingID]int, len(in.Offerings))
	for _, o := range in.Offerings {
		if subj, ok := in.Subjects[o.SubjectCode]; ok {
			classesPerWeek[o.ID] = subj.ClassesPerWeek
		}
	}

	for i, e := range entries {
		idx := domain.EventIndex(i)
		offeringID := domain.OfferingID(e.OfferingID)
		offering := offeringByID[offeringID]
		subj := in.Subjects[offering.SubjectCode]
		events[idx] = optimize.EventProjection{
			OfferingID: offeringID,
			BatchID:    domain.BatchID(e.BatchID),
			FacultyID:  domain.FacultyID(e.FacultyID),
			BatchSize:  batchSize[domain.BatchID(e.BatchID)],
			IsLab:      subj.Type == domain.SubjectTypeLab,
		}
		eventToOffering[idx] = offeringID
		assignments = append(assignments, validate.CandidateAssignment{
			EventID:    idx,
			TimeslotID: timeslotByDaySlot[[2]int{e.Day, e.Slot}],
			RoomID:     domain.RoomID(e.RoomID),
			FacultyID:  domain.FacultyID(e.FacultyID),
			BatchID:    domain.BatchID(e.BatchID),
		})
	}

	source := optimize.Source{
		VersionID:   version.ID,
		VersionName: version.Name,
		Assignments: assignments,
		Lookups:     optimize.Lookups{Events: events, Timeslots: timeslots, Rooms: rooms},
	}
	return source, eventToOffering, classesPerWeek
}
