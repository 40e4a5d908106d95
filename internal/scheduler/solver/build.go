package solver

import (
	"fmt"

	"github.com/noah-isme/campus-timetable-api/internal/scheduler/domain"
	"github.com/noah-isme/campus-timetable-api/internal/scheduler/prune"
)

// VarKey identifies which (event, placement) pair a decision variable
// stands for, so the driver's solved values can be turned back into
// domain.Assignment records.
type VarKey struct {
	Event     domain.EventIndex
	Placement domain.Placement
}

// Built is the model plus the reverse mapping from VarID to VarKey.
type Built struct {
	Model *Model
	Vars  map[VarID]VarKey
}

// Build constructs the decision variables, the hard constraints
// (every event placed exactly once, room/batch/faculty exclusivity per
// timeslot) and the waste-minimizing objective over the pruned
// per-event domains. One boolean variable is created per surviving
// (event, timeslot, room) triple; constraints with an empty term set
// are never posted (e.g. a batch with no events in play). roomCapacity
// resolves a room id to its capacity so the objective can compute
// max(0, capacity - batch_size); terms with zero waste are omitted
// from the objective.
func Build(events []domain.Event, domains prune.Domain, roomCapacity map[domain.RoomID]int) Built {
	m := NewModel()
	vars := make(map[VarID]VarKey)

	varsByEvent := make(map[domain.EventIndex][]VarID)
	varsByRoomSlot := make(map[[3]int][]VarID)
	varsByBatchSlot := make(map[[3]int][]VarID)
	varsByFacultySlot := make(map[[3]int][]VarID)

	objective := Terms{}

	for _, e := range events {
		for _, p := range domains[e.Index] {
			v := m.NewBoolVar(fmt.Sprintf("x[e=%d,d=%d,s=%d,r=%d]", e.Index, p.Day, p.Slot, p.RoomID))
			vars[v] = VarKey{Event: e.Index, Placement: p}
			varsByEvent[e.Index] = append(varsByEvent[e.Index], v)

			roomKey := [3]int{p.Day, p.Slot, int(p.RoomID)}
			varsByRoomSlot[roomKey] = append(varsByRoomSlot[roomKey], v)

			batchKey := [3]int{int(e.BatchID), p.Day, p.Slot}
			varsByBatchSlot[batchKey] = append(varsByBatchSlot[batchKey], v)

			facultyKey := [3]int{int(e.FacultyID), p.Day, p.Slot}
			varsByFacultySlot[facultyKey] = append(varsByFacultySlot[facultyKey], v)

			if waste := roomCapacity[p.RoomID] - e.BatchSize; waste > 0 {
				objective[v] = waste
			}
		}
	}

	// Each event must land on exactly one surviving placement.
	for _, e := range events {
		terms := Terms{}
		for _, v := range varsByEvent[e.Index] {
			terms[v] = 1
		}
		if len(terms) > 0 {
			m.AddLinearEq(terms, 1)
		}
	}

	// At most one event per (day, slot, room),
	postAtMostOne(m, varsByRoomSlot)
	// at most one event per batch per (day, slot),
	postAtMostOne(m, varsByBatchSlot)
	// and at most one event per faculty per (day, slot).
	postAtMostOne(m, varsByFacultySlot)

	if len(objective) > 0 {
		m.Minimize(objective)
	}

	return Built{Model: m, Vars: vars}
}

func postAtMostOne(m *Model, groups map[[3]int][]VarID) {
	for _, vs := range groups {
		if len(vs) < 2 {
			continue
		}
		terms := Terms{}
		for _, v := range vs {
			terms[v] = 1
		}
		m.AddLinearLE(terms, 1)
	}
}

// ExtractAssignments turns a solved Result back into domain.Assignment
// records by reading every variable fixed to true.
func ExtractAssignments(result Result, vars map[VarID]VarKey) []domain.Assignment {
	var assignments []domain.Assignment
	for v, key := range vars {
		if result.Value(v) {
			assignments = append(assignments, domain.Assignment{Event: key.Event, Placement: key.Placement})
		}
	}
	return assignments
}
