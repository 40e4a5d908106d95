// Package validate implements the hard-constraint validator: a pure
// function with no database access and no mutation of its inputs. It
// is the single source of truth for room/batch/faculty exclusivity,
// capacity, and lab compatibility on any assignment list, regardless
// of whether it came from the solver or an external re-optimizer, and
// must never be bypassed before persistence.
//
// Coverage (every offering getting exactly its classes-per-week worth
// of entries) is deliberately not checked here — see AssertCoverage in
// coverage.go for the caller-side assertion that covers it.
package validate

import (
	"fmt"

	"github.com/noah-isme/campus-timetable-api/internal/scheduler/domain"
)

// CandidateAssignment is one row to validate: an event placed at a
// timeslot and room. FacultyID/BatchID are fallbacks used only if the
// referenced event row itself doesn't carry them.
type CandidateAssignment struct {
	EventID    domain.EventIndex
	TimeslotID domain.TimeslotID
	RoomID     domain.RoomID
	FacultyID  domain.FacultyID
	BatchID    domain.BatchID
}

// EventRow is the minimal projection of an event the validator needs.
type EventRow struct {
	FacultyID domain.FacultyID
	BatchID   domain.BatchID
	BatchSize int
	IsLab     bool
}

// TimeslotRow is the minimal projection of a timeslot.
type TimeslotRow struct {
	Day  int
	Slot int
}

// RoomRow is the minimal projection of a room.
type RoomRow struct {
	Capacity int
	Type     domain.RoomType
}

// Result is the validator's verdict: ok, or fail with the first
// violation's human-readable reason. Violations are values, never
// panics.
type Result struct {
	OK     bool
	Reason string
}

// Validate checks assignments in order: existence, then room
// double-booking, faculty clash, batch clash, capacity, and lab
// compatibility. The first violation short-circuits and is reported.
// Lookup maps are borrowed read-only snapshots; Validate allocates its
// own transient sets (seenRoomTS, facultyTS, batchTS) and never
// mutates the inputs.
func Validate(
	assignments []CandidateAssignment,
	timeslots map[domain.TimeslotID]TimeslotRow,
	rooms map[domain.RoomID]RoomRow,
	events map[domain.EventIndex]EventRow,
) Result {
	for _, a := range assignments {
		if _, ok := events[a.EventID]; !ok {
			return Result{OK: false, Reason: fmt.Sprintf("unknown event_id %d", a.EventID)}
		}
		if _, ok := timeslots[a.TimeslotID]; !ok {
			return Result{OK: false, Reason: fmt.Sprintf("unknown timeslot_id %d", a.TimeslotID)}
		}
		if _, ok := rooms[a.RoomID]; !ok {
			return Result{OK: false, Reason: fmt.Sprintf("unknown room_id %d", a.RoomID)}
		}
	}

	type roomTimeslotKey struct {
		Timeslot domain.TimeslotID
		Room     domain.RoomID
	}
	seenRoomTS := make(map[roomTimeslotKey]struct{})
	facultyTS := make(map[domain.FacultyID]map[domain.TimeslotID]struct{})
	batchTS := make(map[domain.BatchID]map[domain.TimeslotID]struct{})

	for _, a := range assignments {
		if _, ok := events[a.EventID]; !ok {
			return Result{OK: false, Reason: fmt.Sprintf("unknown event_id %d", a.EventID)}
		}
		if _, ok := timeslots[a.TimeslotID]; !ok {
			return Result{OK: false, Reason: fmt.Sprintf("unknown timeslot_id %d", a.TimeslotID)}
		}
		if _, ok := rooms[a.RoomID]; !ok {
			return Result{OK: false, Reason: fmt.Sprintf("unknown room_id %d", a.RoomID)}
		}

		key := roomTimeslotKey{Timeslot: a.TimeslotID, Room: a.RoomID}
		if _, seen := seenRoomTS[key]; seen {
			return Result{OK: false, Reason: fmt.Sprintf("room %d double-booked at timeslot %d", a.RoomID, a.TimeslotID)}
		}
		seenRoomTS[key] = struct{}{}

		ev := events[a.EventID]
		facultyID := ev.FacultyID
		if facultyID == 0 {
			facultyID = a.FacultyID
		}
		batchID := ev.BatchID
		if batchID == 0 {
			batchID = a.BatchID
		}

		if facultyID != 0 {
			if facultyTS[facultyID] == nil {
				facultyTS[facultyID] = make(map[domain.TimeslotID]struct{})
			}
			if _, clash := facultyTS[facultyID][a.TimeslotID]; clash {
				return Result{OK: false, Reason: fmt.Sprintf("faculty %d has multiple events at timeslot %d", facultyID, a.TimeslotID)}
			}
			facultyTS[facultyID][a.TimeslotID] = struct{}{}
		}

		if batchID != 0 {
			if batchTS[batchID] == nil {
				batchTS[batchID] = make(map[domain.TimeslotID]struct{})
			}
			if _, clash := batchTS[batchID][a.TimeslotID]; clash {
				return Result{OK: false, Reason: fmt.Sprintf("batch %d has multiple events at timeslot %d", batchID, a.TimeslotID)}
			}
			batchTS[batchID][a.TimeslotID] = struct{}{}
		}

		room := rooms[a.RoomID]
		if room.Capacity < ev.BatchSize {
			return Result{OK: false, Reason: fmt.Sprintf("room %d capacity (%d) smaller than batch size (%d) for event %d", a.RoomID, room.Capacity, ev.BatchSize, a.EventID)}
		}
		if ev.IsLab && room.Type != domain.RoomTypeLab {
			return Result{OK: false, Reason: fmt.Sprintf("event %d requires a lab but room %d is type %s", a.EventID, a.RoomID, room.Type)}
		}
	}

	return Result{OK: true}
}
