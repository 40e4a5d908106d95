package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-timetable-api/internal/models"
	"github.com/noah-isme/campus-timetable-api/pkg/export"
	"github.com/noah-isme/campus-timetable-api/pkg/storage"
)

type fakeVersionFinder struct{ version models.ScheduleVersion }

func (f fakeVersionFinder) FindByID(ctx context.Context, id string) (*models.ScheduleVersion, error) {
	v := f.version
	v.ID = id
	return &v, nil
}

type fakeEntryLister struct{ entries []models.ScheduleEntry }

func (f fakeEntryLister) ListByVersion(ctx context.Context, versionID string) ([]models.ScheduleEntry, error) {
	return f.entries, nil
}

type fakeRoomLister struct{ rooms []models.Room }

func (f fakeRoomLister) ListAll(ctx context.Context) ([]models.Room, error) { return f.rooms, nil }

type fakeSubjectLister struct{ subjects []models.Subject }

func (f fakeSubjectLister) ListAll(ctx context.Context) ([]models.Subject, error) {
	return f.subjects, nil
}

type fakeOfferingListerBySemester struct{ offerings []models.Offering }

func (f fakeOfferingListerBySemester) ListBySemester(ctx context.Context, semester int) ([]models.Offering, error) {
	return f.offerings, nil
}

type fakeFacultyLister struct{ faculty []models.Faculty }

func (f fakeFacultyLister) ListActive(ctx context.Context) ([]models.Faculty, error) {
	return f.faculty, nil
}

type fakeBatchListerBySemester struct{ batches []models.Batch }

func (f fakeBatchListerBySemester) ListBySemester(ctx context.Context, semester int) ([]models.Batch, error) {
	return f.batches, nil
}

func newExportServiceForTest(t *testing.T) (*ExportService, *storage.LocalStorage) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	cfg := ExportConfig{APIPrefix: "/api/v1", ResultTTL: time.Hour}

	versions := fakeVersionFinder{version: models.ScheduleVersion{Name: "semester-1 draft", Semester: 1}}
	entries := fakeEntryLister{entries: []models.ScheduleEntry{
		{ID: 1, OfferingID: 1, BatchID: 1, FacultyID: 1, RoomID: 1, Day: 0, Slot: 1},
		{ID: 2, OfferingID: 1, BatchID: 1, FacultyID: 1, RoomID: 1, Day: 0, Slot: 2},
	}}
	rooms := fakeRoomLister{rooms: []models.Room{{ID: 1, Code: "R-101"}}}
	subjects := fakeSubjectLister{subjects: []models.Subject{{Code: "MATH", Title: "Mathematics"}}}
	offerings := fakeOfferingListerBySemester{offerings: []models.Offering{{ID: 1, SubjectCode: "MATH", BatchID: 1}}}
	faculty := fakeFacultyLister{faculty: []models.Faculty{{ID: 1, Name: "J. Smith"}}}
	batches := fakeBatchListerBySemester{batches: []models.Batch{{ID: 1, Name: "B1"}}}

	svc := NewExportService(versions, entries, rooms, subjects, offerings, faculty, batches, store, signer, cfg, zap.NewNop(), export.NewCSVExporter(), export.NewPDFExporter())
	return svc, store
}

func TestExportServiceGenerateCSV(t *testing.T) {
	svc, store := newExportServiceForTest(t)

	result, err := svc.Generate(context.Background(), "v1", ExportFormatCSV)

	require.NoError(t, err)
	require.NotEmpty(t, result.RelativePath)
	require.Contains(t, result.URL, "/export/")

	path := store.Path(result.RelativePath)
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestExportServiceGeneratePDF(t *testing.T) {
	svc, store := newExportServiceForTest(t)

	result, err := svc.Generate(context.Background(), "v2", ExportFormatPDF)

	require.NoError(t, err)
	require.Equal(t, ExportFormatPDF, result.Format)

	path := filepath.Clean(store.Path(result.RelativePath))
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestExportServiceGenerateRejectsUnsupportedFormat(t *testing.T) {
	svc, _ := newExportServiceForTest(t)

	_, err := svc.Generate(context.Background(), "v3", ExportFormat("xlsx"))

	require.Error(t, err)
}
