// Package jobqueue runs generate_schedule asynchronously for large
// inputs, so an HTTP caller isn't blocked on a 20-30s solve. It wraps
// the pkg/jobs worker pool; the synchronous solve it invokes is
// unchanged.
package jobqueue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-timetable-api/internal/dto"
	"github.com/noah-isme/campus-timetable-api/pkg/jobs"
)

// GenerateFunc runs a single generate_schedule request synchronously —
// the caller passes in *ScheduleGeneratorService.Generate.
type GenerateFunc func(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error)

// SolveStatus tracks one submitted solve's lifecycle.
type SolveStatus string

const (
	SolveStatusQueued  SolveStatus = "QUEUED"
	SolveStatusRunning SolveStatus = "RUNNING"
	SolveStatusDone    SolveStatus = "DONE"
	SolveStatusFailed  SolveStatus = "FAILED"
)

// SolveRecord is the pollable state of one asynchronous solve.
type SolveRecord struct {
	JobID     string
	Status    SolveStatus
	Result    *dto.GenerateScheduleResponse
	Error     string
	UpdatedAt time.Time
}

// SolveQueue dispatches generate_schedule requests onto a bounded
// worker pool and keeps the latest status of each submitted job in
// memory for polling.
type SolveQueue struct {
	queue    *jobs.Queue
	generate GenerateFunc
	logger   *zap.Logger

	mu      sync.RWMutex
	records map[string]*SolveRecord
}

// NewSolveQueue builds and starts a solve queue. ctx governs the
// worker pool's lifetime; call Stop to drain it on shutdown.
func NewSolveQueue(ctx context.Context, generate GenerateFunc, cfg jobs.QueueConfig, logger *zap.Logger) *SolveQueue {
	if logger == nil {
		logger = zap.NewNop()
	}
	sq := &SolveQueue{
		generate: generate,
		logger:   logger,
		records:  make(map[string]*SolveRecord),
	}
	cfg.Logger = logger
	sq.queue = jobs.NewQueue("generate_schedule", sq.handle, cfg)
	sq.queue.Start(ctx)
	return sq
}

// Submit enqueues a generate_schedule request and returns its job id
// immediately. The caller polls Status(jobID) for the outcome.
func (sq *SolveQueue) Submit(req dto.GenerateScheduleRequest, jobID string) error {
	sq.mu.Lock()
	sq.records[jobID] = &SolveRecord{JobID: jobID, Status: SolveStatusQueued, UpdatedAt: time.Now().UTC()}
	sq.mu.Unlock()

	return sq.queue.Enqueue(jobs.Job{ID: jobID, Type: "generate_schedule", Payload: req})
}

// Depth reports how many submitted solves are still waiting for a worker.
func (sq *SolveQueue) Depth() int {
	return sq.queue.Depth()
}

// Status returns the current state of a submitted job, or false if unknown.
func (sq *SolveQueue) Status(jobID string) (SolveRecord, bool) {
	sq.mu.RLock()
	defer sq.mu.RUnlock()
	rec, ok := sq.records[jobID]
	if !ok {
		return SolveRecord{}, false
	}
	return *rec, true
}

// Stop drains in-flight workers.
func (sq *SolveQueue) Stop() {
	sq.queue.Stop()
}

func (sq *SolveQueue) handle(ctx context.Context, job jobs.Job) error {
	req, ok := job.Payload.(dto.GenerateScheduleRequest)
	if !ok {
		return fmt.Errorf("generate_schedule job %s: unexpected payload type %T", job.ID, job.Payload)
	}

	sq.setStatus(job.ID, SolveStatusRunning, nil, "")

	result, err := sq.generate(ctx, req)
	if err != nil {
		sq.setStatus(job.ID, SolveStatusFailed, nil, err.Error())
		return err
	}

	sq.setStatus(job.ID, SolveStatusDone, result, "")
	return nil
}

func (sq *SolveQueue) setStatus(jobID string, status SolveStatus, result *dto.GenerateScheduleResponse, errMsg string) {
	sq.mu.Lock()
	defer sq.mu.Unlock()
	rec, ok := sq.records[jobID]
	if !ok {
		rec = &SolveRecord{JobID: jobID}
		sq.records[jobID] = rec
	}
	rec.Status = status
	rec.Result = result
	rec.Error = errMsg
	rec.UpdatedAt = time.Now().UTC()
}
