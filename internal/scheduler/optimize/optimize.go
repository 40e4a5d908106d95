// Package optimize assembles the lookup tables a re-optimizer needs,
// forwards the soft goals, and routes the returned candidate schedule
// through the hard-constraint validator before any write. The
// re-optimizer itself is an opaque producer behind the Reoptimizer
// interface; its output is never trusted.
package optimize

import (
	"context"
	"fmt"

	"github.com/noah-isme/campus-timetable-api/internal/scheduler/domain"
	"github.com/noah-isme/campus-timetable-api/internal/scheduler/validate"
)

// RoomProjection is the minimal room view handed to the re-optimizer.
type RoomProjection struct {
	Capacity int
	Type     domain.RoomType
}

// EventProjection is the minimal event view handed to the re-optimizer.
type EventProjection struct {
	OfferingID domain.OfferingID
	BatchID    domain.BatchID
	FacultyID  domain.FacultyID
	BatchSize  int
	IsLab      bool
}

// TimeslotProjection is the minimal timeslot view handed to the re-optimizer.
type TimeslotProjection struct {
	Day  int
	Slot int
}

// Lookups bundles the named projections the re-optimizer receives.
type Lookups struct {
	Events    map[domain.EventIndex]EventProjection
	Timeslots map[domain.TimeslotID]TimeslotProjection
	Rooms     map[domain.RoomID]RoomProjection
}

// Goal is an opaque soft-goal hint forwarded to the re-optimizer
// untouched — the adapter never interprets goal content itself.
type Goal struct {
	Name   string
	Params map[string]string
}

// Reoptimizer is the opaque producer of candidate re-optimized
// assignments. Its output is never trusted: it must pass the same
// Validate call as any other candidate schedule.
type Reoptimizer interface {
	Reoptimize(ctx context.Context, lookups Lookups, current []validate.CandidateAssignment, goals []Goal) ([]validate.CandidateAssignment, error)
}

// Source bundles the prior version's data the adapter reads before
// calling the re-optimizer.
type Source struct {
	VersionID   string
	VersionName string
	Assignments []validate.CandidateAssignment
	Lookups     Lookups
}

// Outcome is the result of Apply: either a validated candidate list
// ready to persist, or a rejection naming the validator's first
// violation. No write happens on rejection.
type Outcome struct {
	Accepted    bool
	Candidates  []validate.CandidateAssignment
	VersionName string
	Reason      string
}

// Apply reconstructs the lookups already present on Source, passes
// them plus goals to the re-optimizer, and validates the result. On
// success it derives the new version's name from the source version's
// name. On validation failure it returns a rejected Outcome whose
// Reason is the validator's message (the error stays nil) and
// performs no write — persistence is the caller's job (via the Version
// Writer), never this adapter's.
func Apply(ctx context.Context, reopt Reoptimizer, source Source, goals []Goal) (Outcome, error) {
	candidates, err := reopt.Reoptimize(ctx, source.Lookups, source.Assignments, goals)
	if err != nil {
		return Outcome{}, fmt.Errorf("reoptimize: %w", err)
	}

	timeslots := make(map[domain.TimeslotID]validate.TimeslotRow, len(source.Lookups.Timeslots))
	for id, t := range source.Lookups.Timeslots {
		timeslots[id] = validate.TimeslotRow{Day: t.Day, Slot: t.Slot}
	}
	rooms := make(map[domain.RoomID]validate.RoomRow, len(source.Lookups.Rooms))
	for id, r := range source.Lookups.Rooms {
		rooms[id] = validate.RoomRow{Capacity: r.Capacity, Type: r.Type}
	}
	events := make(map[domain.EventIndex]validate.EventRow, len(source.Lookups.Events))
	for id, e := range source.Lookups.Events {
		events[id] = validate.EventRow{FacultyID: e.FacultyID, BatchID: e.BatchID, BatchSize: e.BatchSize, IsLab: e.IsLab}
	}

	result := validate.Validate(candidates, timeslots, rooms, events)
	if !result.OK {
		return Outcome{Accepted: false, Reason: result.Reason}, nil
	}

	return Outcome{
		Accepted:    true,
		Candidates:  candidates,
		VersionName: deriveName(source.VersionName),
	}, nil
}

func deriveName(sourceName string) string {
	if sourceName == "" {
		return "reoptimized"
	}
	return sourceName + " (reoptimized)"
}
