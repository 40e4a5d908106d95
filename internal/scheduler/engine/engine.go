// Package engine wires the event expander, domain pruner, model
// builder, solver driver and hard-constraint validator together into
// the single schedule-generation pipeline. Failures are classified
// into a FailureReason enum rather than thrown across the boundary.
package engine

import (
	"context"
	"strconv"
	"time"

	"github.com/noah-isme/campus-timetable-api/internal/scheduler/domain"
	"github.com/noah-isme/campus-timetable-api/internal/scheduler/expand"
	"github.com/noah-isme/campus-timetable-api/internal/scheduler/prune"
	"github.com/noah-isme/campus-timetable-api/internal/scheduler/solver"
	"github.com/noah-isme/campus-timetable-api/internal/scheduler/validate"
)

// FailureReason classifies why a solve produced no schedule.
type FailureReason string

const (
	ReasonInsufficientData FailureReason = "insufficient_data"
	ReasonNoEvents         FailureReason = "no_events"
	ReasonPrecheckFailed   FailureReason = "precheck_failed"
	ReasonNoDomainForEvent FailureReason = "no_domain_for_event"
	ReasonNoSolution       FailureReason = "no_solution"
)

// Config tunes the solve.
type Config struct {
	TimeLimit time.Duration
	Workers   int
}

// Result is the outcome of Generate: either a successful solved
// assignment list, or a structured failure naming its reason.
type Result struct {
	Success       bool
	Events        []domain.Event
	Assignments   []domain.Assignment
	Summary       expand.Summary
	SolverStatus  solver.Status
	FailureReason FailureReason
	Message       string
}

// Generate runs the full expand, prune, build, solve, validate
// pipeline over one immutable input snapshot.
func Generate(ctx context.Context, in domain.Input, fixed map[domain.OfferingID]domain.FixedPlacement, cfg Config) Result {
	if len(in.Rooms) == 0 || len(in.Timeslots) == 0 || len(in.Offerings) == 0 {
		return Result{FailureReason: ReasonInsufficientData, Message: "rooms, timeslots, or offerings are empty"}
	}

	batchesByID := make(map[domain.BatchID]domain.Batch, len(in.Batches))
	for _, b := range in.Batches {
		batchesByID[b.ID] = b
	}

	expansion := expand.Expand(in.Offerings, in.Subjects, batchesByID, in.Assignments, fixed)
	if len(expansion.Events) == 0 {
		return Result{Summary: expansion.Summary, FailureReason: ReasonNoEvents, Message: "no offerings were schedulable (missing subject, batch, or faculty)"}
	}

	if len(expansion.Events) > len(in.Rooms)*len(in.Timeslots) {
		return Result{Events: expansion.Events, Summary: expansion.Summary, FailureReason: ReasonPrecheckFailed, Message: "required events exceed rooms x timeslots capacity"}
	}

	unavailable := buildUnavailability(in.Unavailable)
	domains := prune.Prune(expansion.Events, in.Rooms, in.Timeslots, prune.Options{Unavailable: unavailable})

	if empties := prune.EmptyDomains(expansion.Events, domains); len(empties) > 0 {
		return Result{Events: expansion.Events, Summary: expansion.Summary, FailureReason: ReasonNoDomainForEvent, Message: offeringsMessage(empties)}
	}

	roomCapacity := make(map[domain.RoomID]int, len(in.Rooms))
	for _, r := range in.Rooms {
		roomCapacity[r.ID] = r.Capacity
	}

	built := solver.Build(expansion.Events, domains, roomCapacity)
	solved := solver.SolveWithTimeout(ctx, built.Model, solver.DriverConfig{TimeLimit: cfg.TimeLimit, Workers: cfg.Workers})

	if solved.Status != solver.StatusOptimal && solved.Status != solver.StatusFeasible {
		return Result{Events: expansion.Events, Summary: expansion.Summary, SolverStatus: solved.Status, FailureReason: ReasonNoSolution, Message: "solver status " + string(solved.Status)}
	}

	assignments := solver.ExtractAssignments(solved, built.Vars)

	// The solver's own output goes through the same validator that
	// gates external proposals.
	sanity := validateSolverOutput(expansion.Events, in, assignments)
	if !sanity.OK {
		return Result{Events: expansion.Events, Summary: expansion.Summary, SolverStatus: solved.Status, FailureReason: ReasonNoSolution, Message: "solver produced an invalid assignment: " + sanity.Reason}
	}

	return Result{
		Success:      true,
		Events:       expansion.Events,
		Assignments:  assignments,
		Summary:      expansion.Summary,
		SolverStatus: solved.Status,
	}
}

func buildUnavailability(rows []domain.Unavailability) map[domain.FacultyID]map[[2]int]struct{} {
	if len(rows) == 0 {
		return nil
	}
	out := make(map[domain.FacultyID]map[[2]int]struct{})
	for _, u := range rows {
		if out[u.FacultyID] == nil {
			out[u.FacultyID] = make(map[[2]int]struct{})
		}
		out[u.FacultyID][[2]int{u.Day, u.Slot}] = struct{}{}
	}
	return out
}

func offeringsMessage(offerings []domain.OfferingID) string {
	if len(offerings) == 0 {
		return ""
	}
	msg := "no feasible placement for offering"
	if len(offerings) > 1 {
		msg += "s"
	}
	for i, o := range offerings {
		if i > 0 {
			msg += ","
		}
		msg += " " + strconv.FormatInt(int64(o), 10)
	}
	return msg
}

func validateSolverOutput(events []domain.Event, in domain.Input, assignments []domain.Assignment) validate.Result {
	eventRows := make(map[domain.EventIndex]validate.EventRow, len(events))
	for _, e := range events {
		eventRows[e.Index] = validate.EventRow{
			FacultyID: e.FacultyID,
			BatchID:   e.BatchID,
			BatchSize: e.BatchSize,
			IsLab:     e.SubjectType == domain.SubjectTypeLab,
		}
	}
	timeslotRows := make(map[domain.TimeslotID]validate.TimeslotRow, len(in.Timeslots))
	timeslotByDaySlot := make(map[[2]int]domain.TimeslotID, len(in.Timeslots))
	for _, t := range in.Timeslots {
		timeslotRows[t.ID] = validate.TimeslotRow{Day: t.Day, Slot: t.Slot}
		timeslotByDaySlot[[2]int{t.Day, t.Slot}] = t.ID
	}
	roomRows := make(map[domain.RoomID]validate.RoomRow, len(in.Rooms))
	for _, r := range in.Rooms {
		roomRows[r.ID] = validate.RoomRow{Capacity: r.Capacity, Type: r.Type}
	}

	candidates := make([]validate.CandidateAssignment, 0, len(assignments))
	for _, a := range assignments {
		candidates = append(candidates, validate.CandidateAssignment{
			EventID:    a.Event,
			TimeslotID: timeslotByDaySlot[[2]int{a.Placement.Day, a.Placement.Slot}],
			RoomID:     a.Placement.RoomID,
		})
	}
	return validate.Validate(candidates, timeslotRows, roomRows, eventRows)
}
