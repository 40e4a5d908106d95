package optimize

import (
	"context"
	"math/rand"

	"github.com/noah-isme/campus-timetable-api/internal/scheduler/domain"
	"github.com/noah-isme/campus-timetable-api/internal/scheduler/validate"
)

// LocalSearchReoptimizer is the one concrete Reoptimizer implementation
// shipped with this service: a deterministic pairwise-swap local search
// over the current assignment list. An LLM-backed producer can be
// plugged in behind the same interface; whatever the producer, its
// output still goes through the validator before any write.
type LocalSearchReoptimizer struct {
	Iterations int
	Rand       *rand.Rand
}

// NewLocalSearchReoptimizer constructs a reoptimizer with sane defaults.
func NewLocalSearchReoptimizer() *LocalSearchReoptimizer {
	return &LocalSearchReoptimizer{Iterations: 200, Rand: rand.New(rand.NewSource(1))}
}

// Reoptimize tries swapping the (timeslot, room) pair of two randomly
// chosen candidate assignments, keeping a swap only when it lowers
// total seat waste and the swapped list still passes the same
// hard-constraint check that later gates persistence — a swap that
// frees seats but double-books a faculty member is useless.
func (o *LocalSearchReoptimizer) Reoptimize(_ context.Context, lookups Lookups, current []validate.CandidateAssignment, _ []Goal) ([]validate.CandidateAssignment, error) {
	if len(current) < 2 {
		return current, nil
	}

	working := append([]validate.CandidateAssignment(nil), current...)
	iterations := o.Iterations
	if iterations <= 0 {
		iterations = 200
	}
	rng := o.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	timeslotRows := make(map[domain.TimeslotID]validate.TimeslotRow, len(lookups.Timeslots))
	for id, t := range lookups.Timeslots {
		timeslotRows[id] = validate.TimeslotRow{Day: t.Day, Slot: t.Slot}
	}
	roomRows := make(map[domain.RoomID]validate.RoomRow, len(lookups.Rooms))
	for id, r := range lookups.Rooms {
		roomRows[id] = validate.RoomRow{Capacity: r.Capacity, Type: r.Type}
	}
	eventRows := make(map[domain.EventIndex]validate.EventRow, len(lookups.Events))
	for id, e := range lookups.Events {
		eventRows[id] = validate.EventRow{FacultyID: e.FacultyID, BatchID: e.BatchID, BatchSize: e.BatchSize, IsLab: e.IsLab}
	}

	for i := 0; i < iterations; i++ {
		a := rng.Intn(len(working))
		b := rng.Intn(len(working))
		if a == b {
			continue
		}
		candidate := append([]validate.CandidateAssignment(nil), working...)
		candidate[a].TimeslotID, candidate[b].TimeslotID = candidate[b].TimeslotID, candidate[a].TimeslotID
		candidate[a].RoomID, candidate[b].RoomID = candidate[b].RoomID, candidate[a].RoomID

		if wasteOf(candidate, lookups) >= wasteOf(working, lookups) {
			continue
		}
		if validate.Validate(candidate, timeslotRows, roomRows, eventRows).OK {
			working = candidate
		}
	}

	return working, nil
}

func wasteOf(assignments []validate.CandidateAssignment, lookups Lookups) int {
	total := 0
	for _, a := range assignments {
		ev, ok := lookups.Events[a.EventID]
		if !ok {
			continue
		}
		room, ok := lookups.Rooms[a.RoomID]
		if !ok {
			continue
		}
		if waste := room.Capacity - ev.BatchSize; waste > 0 {
			total += waste
		}
	}
	return total
}
