package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-timetable-api/internal/models"
	schedexport "github.com/noah-isme/campus-timetable-api/internal/scheduler/export"
	"github.com/noah-isme/campus-timetable-api/pkg/export"
	"github.com/noah-isme/campus-timetable-api/pkg/storage"
)

// ExportFormat selects the rendered file shape for a schedule download.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

type scheduleVersionFinder interface {
	FindByID(ctx context.Context, id string) (*models.ScheduleVersion, error)
}

type scheduleEntryLister interface {
	ListByVersion(ctx context.Context, versionID string) ([]models.ScheduleEntry, error)
}

type roomLister interface {
	ListAll(ctx context.Context) ([]models.Room, error)
}

type subjectLister interface {
	ListAll(ctx context.Context) ([]models.Subject, error)
}

type offeringListerBySemester interface {
	ListBySemester(ctx context.Context, semester int) ([]models.Offering, error)
}

type facultyLister interface {
	ListActive(ctx context.Context) ([]models.Faculty, error)
}

type batchListerBySemester interface {
	ListBySemester(ctx context.Context, semester int) ([]models.Batch, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes rendered schedule export storage and download links.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	Format       ExportFormat
	ExpiresAt    time.Time
}

// ExportService renders a solved, validated schedule version as a
// day x timeslot CSV/PDF grid and persists it behind a signed
// download link.
type ExportService struct {
	versions  scheduleVersionFinder
	entries   scheduleEntryLister
	rooms     roomLister
	subjects  subjectLister
	offerings offeringListerBySemester
	faculty   facultyLister
	batches   batchListerBySemester
	storage   fileStorage
	csv       csvRenderer
	pdf       pdfRenderer
	signer    *storage.SignedURLSigner
	logger    *zap.Logger
	cfg       ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(
	versions scheduleVersionFinder,
	entries scheduleEntryLister,
	rooms roomLister,
	subjects subjectLister,
	offerings offeringListerBySemester,
	faculty facultyLister,
	batches batchListerBySemester,
	store fileStorage,
	signer *storage.SignedURLSigner,
	cfg ExportConfig,
	logger *zap.Logger,
	csv csvRenderer,
	pdf pdfRenderer,
) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		versions:  versions,
		entries:   entries,
		rooms:     rooms,
		subjects:  subjects,
		offerings: offerings,
		faculty:   faculty,
		batches:   batches,
		storage:   store,
		csv:       csv,
		pdf:       pdf,
		signer:    signer,
		logger:    logger,
		cfg:       cfg,
	}
}

// Generate renders versionID's entries as a day x slot grid in the
// requested format, stores the file, and returns a signed download URL.
func (s *ExportService) Generate(ctx context.Context, versionID string, format ExportFormat) (*ExportResult, error) {
	version, err := s.versions.FindByID(ctx, versionID)
	if err != nil {
		return nil, fmt.Errorf("find schedule version: %w", err)
	}
	entries, err := s.entries.ListByVersion(ctx, versionID)
	if err != nil {
		return nil, fmt.Errorf("list schedule entries: %w", err)
	}

	cell, slotLabels, err := s.buildLookups(ctx, version.Semester, entries)
	if err != nil {
		return nil, err
	}
	dataset := schedexport.BuildGrid(entries, slotLabels, cell)

	var payload []byte
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, version.Name)
	default:
		err = fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return nil, err
	}

	filename := s.buildFilename(version, format)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.signer.Generate(version.ID, relPath)
	if err != nil {
		return nil, err
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/export/%s", prefix, token),
		Format:       format,
		ExpiresAt:    expiresAt,
	}, nil
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string, allowExpired bool) (versionID, relPath string, expiresAt time.Time, err error) {
	return s.signer.Parse(token, allowExpired)
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Delete removes a stored export file.
func (s *ExportService) Delete(relPath string) error {
	return s.storage.Delete(relPath)
}

// Cleanup removes files older than ttl (defaults to configured ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

// buildLookups resolves the ids on each entry into the descriptive
// text the grid cells show, and derives 1-indexed "Slot N" labels from
// the entries actually present.
func (s *ExportService) buildLookups(ctx context.Context, semester int, entries []models.ScheduleEntry) (schedexport.CellLookup, map[int]string, error) {
	rooms, err := s.rooms.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list rooms: %w", err)
	}
	subjects, err := s.subjects.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list subjects: %w", err)
	}
	offerings, err := s.offerings.ListBySemester(ctx, semester)
	if err != nil {
		return nil, nil, fmt.Errorf("list offerings: %w", err)
	}
	faculty, err := s.faculty.ListActive(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list faculty: %w", err)
	}
	batches, err := s.batches.ListBySemester(ctx, semester)
	if err != nil {
		return nil, nil, fmt.Errorf("list batches: %w", err)
	}

	roomCode := make(map[int64]string, len(rooms))
	for _, r := range rooms {
		roomCode[r.ID] = r.Code
	}
	subjectTitle := make(map[string]string, len(subjects))
	for _, sub := range subjects {
		subjectTitle[sub.Code] = sub.Title
	}
	offeringSubject := make(map[int64]string, len(offerings))
	for _, o := range offerings {
		offeringSubject[o.ID] = o.SubjectCode
	}
	facultyName := make(map[int64]string, len(faculty))
	for _, f := range faculty {
		facultyName[f.ID] = f.Name
	}
	batchName := make(map[int64]string, len(batches))
	for _, b := range batches {
		batchName[b.ID] = b.Name
	}

	slotLabels := make(map[int]string)
	for _, e := range entries {
		if _, ok := slotLabels[e.Slot]; !ok {
			slotLabels[e.Slot] = fmt.Sprintf("Slot %d", e.Slot)
		}
	}

	cell := func(entry models.ScheduleEntry) string {
		subjectCode := offeringSubject[entry.OfferingID]
		title := subjectTitle[subjectCode]
		if title == "" {
			title = subjectCode
		}
		return fmt.Sprintf("%s / %s / %s / %s", title, facultyName[entry.FacultyID], batchName[entry.BatchID], roomCode[entry.RoomID])
	}

	return cell, slotLabels, nil
}

func (s *ExportService) buildFilename(version *models.ScheduleVersion, format ExportFormat) string {
	timestamp := time.Now().UTC().Format("20060102_150405")
	return fmt.Sprintf("schedule_%s_%s.%s", sanitizeFilename(version.ID), timestamp, format)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
