package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-timetable-api/internal/dto"
	"github.com/noah-isme/campus-timetable-api/internal/models"
)

type fakeRoomRepo struct{ rooms []models.Room }

func (f *fakeRoomRepo) ListAll(ctx context.Context) ([]models.Room, error) { return f.rooms, nil }

type fakeTimeslotRepo struct{ timeslots []models.Timeslot }

func (f *fakeTimeslotRepo) ListAll(ctx context.Context) ([]models.Timeslot, error) {
	return f.timeslots, nil
}

type fakeBatchRepo struct{ batches []models.Batch }

func (f *fakeBatchRepo) ListBySemester(ctx context.Context, semester int) ([]models.Batch, error) {
	return f.batches, nil
}

type fakeSubjectRepo struct{ subjects []models.Subject }

func (f *fakeSubjectRepo) ListAll(ctx context.Context) ([]models.Subject, error) {
	return f.subjects, nil
}

type fakeOfferingRepo struct{ offerings []models.Offering }

func (f *fakeOfferingRepo) ListBySemester(ctx context.Context, semester int) ([]models.Offering, error) {
	return f.offerings, nil
}

type fakeAssignmentRepo struct{ assignments []models.FacultyAssignment }

func (f *fakeAssignmentRepo) ListByOfferingIDs(ctx context.Context, offeringIDs []int64) ([]models.FacultyAssignment, error) {
	return f.assignments, nil
}

type fakeUnavailabilityRepo struct{ rows []models.FacultyUnavailability }

func (f *fakeUnavailabilityRepo) ListByFacultyIDs(ctx context.Context, facultyIDs []int64) ([]models.FacultyUnavailability, error) {
	return f.rows, nil
}

type fakeFixedSlotRepo struct{ rows []models.FixedSlot }

func (f *fakeFixedSlotRepo) ListByOfferingIDs(ctx context.Context, offeringIDs []int64) ([]models.FixedSlot, error) {
	return f.rows, nil
}

type fakeVersionRepo struct {
	mostRecent *models.ScheduleVersion
	byID       map[string]*models.ScheduleVersion
}

func (f *fakeVersionRepo) FindByID(ctx context.Context, id string) (*models.ScheduleVersion, error) {
	if v, ok := f.byID[id]; ok {
		return v, nil
	}
	return nil, errNotFoundStub
}

func (f *fakeVersionRepo) FindMostRecent(ctx context.Context, semester int) (*models.ScheduleVersion, error) {
	if f.mostRecent == nil {
		return nil, errNotFoundStub
	}
	return f.mostRecent, nil
}

func (f *fakeVersionRepo) UpdateStatus(ctx context.Context, id string, status models.ScheduleVersionStatus) error {
	v, ok := f.byID[id]
	if !ok {
		return errNotFoundStub
	}
	v.Status = status
	return nil
}

func (f *fakeVersionRepo) ListBySemester(ctx context.Context, semester int) ([]models.ScheduleVersionSummary, error) {
	var out []models.ScheduleVersionSummary
	for _, v := range f.byID {
		if v.Semester == semester {
			out = append(out, models.ScheduleVersionSummary{ID: v.ID, Name: v.Name, Semester: v.Semester, Status: v.Status})
		}
	}
	return out, nil
}

type fakeEntryRepo struct{ byVersion map[string][]models.ScheduleEntry }

func (f *fakeEntryRepo) ListByVersion(ctx context.Context, versionID string) ([]models.ScheduleEntry, error) {
	return f.byVersion[versionID], nil
}

type fakeVersionWriter struct {
	written      []models.ScheduleVersion
	writtenEntry [][]models.ScheduleEntry
	nextID       string
}

func (f *fakeVersionWriter) Write(ctx context.Context, version *models.ScheduleVersion, entries []models.ScheduleEntry) error {
	version.ID = f.nextID
	f.written = append(f.written, *version)
	f.writtenEntry = append(f.writtenEntry, entries)
	return nil
}

type stubErr string

func (e stubErr) Error() string { return string(e) }

const errNotFoundStub = stubErr("not found")

func feasibleFixture() (*fakeRoomRepo, *fakeTimeslotRepo, *fakeBatchRepo, *fakeSubjectRepo, *fakeOfferingRepo, *fakeAssignmentRepo, *fakeUnavailabilityRepo, *fakeFixedSlotRepo) {
	rooms := &fakeRoomRepo{rooms: []models.Room{{ID: 1, Code: "R1", Capacity: 50, Type: models.RoomTypeTheory}}}
	timeslots := &fakeTimeslotRepo{timeslots: []models.Timeslot{
		{ID: 1, Day: 1, Slot: 1, Start: time.Now(), End: time.Now()},
		{ID: 2, Day: 1, Slot: 2, Start: time.Now(), End: time.Now()},
	}}
	batches := &fakeBatchRepo{batches: []models.Batch{{ID: 1, Name: "B1", Semester: 1, Size: 30, Shift: models.ShiftDay}}}
	subjects := &fakeSubjectRepo{subjects: []models.Subject{{Code: "MATH", Title: "Math", Type: models.SubjectTypeTheory, ClassesPerWeek: 1, DurationSlots: 1}}}
	offerings := &fakeOfferingRepo{offerings: []models.Offering{{ID: 1, SubjectCode: "MATH", BatchID: 1, Semester: 1}}}
	assignments := &fakeAssignmentRepo{assignments: []models.FacultyAssignment{{OfferingID: 1, FacultyID: 1, PreferenceScore: 1}}}
	unavailable := &fakeUnavailabilityRepo{}
	fixed := &fakeFixedSlotRepo{}
	return rooms, timeslots, batches, subjects, offerings, assignments, unavailable, fixed
}

func TestScheduleGeneratorServiceGenerateSuccess(t *testing.T) {
	rooms, timeslots, batches, subjects, offerings, assignments, unavailable, fixed := feasibleFixture()
	writer := &fakeVersionWriter{nextID: "version-1"}

	svc := NewScheduleGeneratorService(
		rooms, timeslots, batches, subjects, offerings, assignments, unavailable, fixed,
		&fakeVersionRepo{}, &fakeEntryRepo{}, writer, nil,
		validator.New(), zap.NewNop(), ScheduleGeneratorConfig{TimeLimitSeconds: 5, Workers: 2},
	)

	resp, err := svc.Generate(context.Background(), dto.GenerateScheduleRequest{Semester: 1})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "version-1", resp.VersionID)
	assert.Equal(t, 1, resp.EntriesCount)
	require.Len(t, writer.written, 1)
	assert.Equal(t, 1, writer.written[0].Semester)
}

func TestScheduleGeneratorServiceGenerateInsufficientData(t *testing.T) {
	writer := &fakeVersionWriter{nextID: "version-1"}
	svc := NewScheduleGeneratorService(
		&fakeRoomRepo{}, &fakeTimeslotRepo{}, &fakeBatchRepo{}, &fakeSubjectRepo{}, &fakeOfferingRepo{},
		&fakeAssignmentRepo{}, &fakeUnavailabilityRepo{}, &fakeFixedSlotRepo{},
		&fakeVersionRepo{}, &fakeEntryRepo{}, writer, nil,
		validator.New(), zap.NewNop(), ScheduleGeneratorConfig{},
	)

	resp, err := svc.Generate(context.Background(), dto.GenerateScheduleRequest{Semester: 1})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "insufficient_data", resp.Reason)
	assert.Empty(t, writer.written)
}

func TestScheduleGeneratorServiceGenerateRejectsInvalidRequest(t *testing.T) {
	svc := NewScheduleGeneratorService(
		&fakeRoomRepo{}, &fakeTimeslotRepo{}, &fakeBatchRepo{}, &fakeSubjectRepo{}, &fakeOfferingRepo{},
		&fakeAssignmentRepo{}, &fakeUnavailabilityRepo{}, &fakeFixedSlotRepo{},
		&fakeVersionRepo{}, &fakeEntryRepo{}, &fakeVersionWriter{}, nil,
		validator.New(), zap.NewNop(), ScheduleGeneratorConfig{},
	)

	_, err := svc.Generate(context.Background(), dto.GenerateScheduleRequest{Semester: 0})
	require.Error(t, err)
}

func TestScheduleGeneratorServiceApplyExternalOptimizationNoSourceVersion(t *testing.T) {
	svc := NewScheduleGeneratorService(
		&fakeRoomRepo{}, &fakeTimeslotRepo{}, &fakeBatchRepo{}, &fakeSubjectRepo{}, &fakeOfferingRepo{},
		&fakeAssignmentRepo{}, &fakeUnavailabilityRepo{}, &fakeFixedSlotRepo{},
		&fakeVersionRepo{}, &fakeEntryRepo{}, &fakeVersionWriter{}, nil,
		validator.New(), zap.NewNop(), ScheduleGeneratorConfig{},
	)

	_, err := svc.ApplyExternalOptimization(context.Background(), dto.ApplyExternalOptimizationRequest{Semester: 1})
	require.Error(t, err)
}
