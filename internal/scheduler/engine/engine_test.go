package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-timetable-api/internal/scheduler/domain"
)

func baseInput() domain.Input {
	return domain.Input{
		Rooms: []domain.Room{{ID: 1, Code: "R1", Capacity: 30, Type: domain.RoomTypeTheory}},
		Timeslots: []domain.Timeslot{
			{ID: 1, Day: 0, Slot: 1},
			{ID: 2, Day: 0, Slot: 2},
		},
		Batches:   []domain.Batch{{ID: 1, Name: "B1", Size: 25}},
		Subjects:  map[string]domain.Subject{"MATH": {Code: "MATH", Type: domain.SubjectTypeTheory, ClassesPerWeek: 2}},
		Offerings: []domain.Offering{{ID: 1, SubjectCode: "MATH", BatchID: 1}},
		Assignments: []domain.FacultyAssignment{{OfferingID: 1, FacultyID: 1}},
	}
}

// A tiny feasible instance: one room, two timeslots, one twice-a-week subject.
func TestGenerateTinyFeasible(t *testing.T) {
	result := Generate(context.Background(), baseInput(), nil, Config{TimeLimit: 2 * time.Second, Workers: 2})

	require.True(t, result.Success)
	require.Len(t, result.Assignments, 2)
	rooms := map[domain.RoomID]bool{}
	slots := map[int]bool{}
	for _, a := range result.Assignments {
		rooms[a.Placement.RoomID] = true
		slots[a.Placement.Slot] = true
	}
	assert.Len(t, rooms, 1, "both entries should land in the same (only) room")
	assert.Len(t, slots, 2, "both entries should land on distinct timeslots")
}

// A lab subject must land in the lab room, never the theory room.
func TestGenerateLabCompatibility(t *testing.T) {
	in := domain.Input{
		Rooms: []domain.Room{
			{ID: 1, Code: "LAB1", Capacity: 40, Type: domain.RoomTypeLab},
			{ID: 2, Code: "TH1", Capacity: 40, Type: domain.RoomTypeTheory},
		},
		Timeslots: []domain.Timeslot{{ID: 1, Day: 0, Slot: 1}, {ID: 2, Day: 0, Slot: 2}},
		Batches:   []domain.Batch{{ID: 1, Name: "B1", Size: 25}},
		Subjects:  map[string]domain.Subject{"PHY": {Code: "PHY", Type: domain.SubjectTypeLab, ClassesPerWeek: 1}},
		Offerings: []domain.Offering{{ID: 1, SubjectCode: "PHY", BatchID: 1}},
		Assignments: []domain.FacultyAssignment{{OfferingID: 1, FacultyID: 1}},
	}

	result := Generate(context.Background(), in, nil, Config{TimeLimit: 2 * time.Second, Workers: 2})

	require.True(t, result.Success)
	require.Len(t, result.Assignments, 1)
	assert.Equal(t, domain.RoomID(1), result.Assignments[0].Placement.RoomID)
}

// A batch larger than every room leaves an event with no feasible placement.
func TestGenerateCapacityInfeasibleReturnsNoDomainForEvent(t *testing.T) {
	in := domain.Input{
		Rooms:     []domain.Room{{ID: 1, Code: "R1", Capacity: 20, Type: domain.RoomTypeTheory}},
		Timeslots: []domain.Timeslot{{ID: 1, Day: 0, Slot: 1}},
		Batches:   []domain.Batch{{ID: 1, Name: "B1", Size: 30}},
		Subjects:  map[string]domain.Subject{"MATH": {Code: "MATH", Type: domain.SubjectTypeTheory, ClassesPerWeek: 1}},
		Offerings: []domain.Offering{{ID: 1, SubjectCode: "MATH", BatchID: 1}},
		Assignments: []domain.FacultyAssignment{{OfferingID: 1, FacultyID: 1}},
	}

	result := Generate(context.Background(), in, nil, Config{TimeLimit: 2 * time.Second, Workers: 2})

	require.False(t, result.Success)
	assert.Equal(t, ReasonNoDomainForEvent, result.FailureReason)
}

// A shared faculty member makes 4 required events impossible to pack
// into 2 timeslots.
func TestGenerateSharedFacultyDoubleBookingImpossible(t *testing.T) {
	in := domain.Input{
		Rooms: []domain.Room{
			{ID: 1, Code: "R1", Capacity: 30, Type: domain.RoomTypeTheory},
			{ID: 2, Code: "R2", Capacity: 30, Type: domain.RoomTypeTheory},
		},
		Timeslots: []domain.Timeslot{{ID: 1, Day: 0, Slot: 1}, {ID: 2, Day: 0, Slot: 2}},
		Batches: []domain.Batch{
			{ID: 1, Name: "B1", Size: 20},
			{ID: 2, Name: "B2", Size: 20},
		},
		Subjects: map[string]domain.Subject{
			"MATH": {Code: "MATH", Type: domain.SubjectTypeTheory, ClassesPerWeek: 2},
			"PHY":  {Code: "PHY", Type: domain.SubjectTypeTheory, ClassesPerWeek: 2},
		},
		Offerings: []domain.Offering{
			{ID: 1, SubjectCode: "MATH", BatchID: 1},
			{ID: 2, SubjectCode: "PHY", BatchID: 2},
		},
		Assignments: []domain.FacultyAssignment{
			{OfferingID: 1, FacultyID: 1},
			{OfferingID: 2, FacultyID: 1},
		},
	}

	result := Generate(context.Background(), in, nil, Config{TimeLimit: 2 * time.Second, Workers: 2})

	require.False(t, result.Success)
	assert.Contains(t, []FailureReason{ReasonNoSolution, ReasonNoDomainForEvent}, result.FailureReason)
}

// Far more events than rooms x timeslots can hold fails fast, before
// model construction.
func TestGeneratePrecheckFailed(t *testing.T) {
	subjects := map[string]domain.Subject{"MATH": {Code: "MATH", Type: domain.SubjectTypeTheory, ClassesPerWeek: 100}}
	in := domain.Input{
		Rooms:       []domain.Room{{ID: 1, Code: "R1", Capacity: 30, Type: domain.RoomTypeTheory}},
		Timeslots:   []domain.Timeslot{{ID: 1, Day: 0, Slot: 1}, {ID: 2, Day: 0, Slot: 2}},
		Batches:     []domain.Batch{{ID: 1, Name: "B1", Size: 20}},
		Subjects:    subjects,
		Offerings:   []domain.Offering{{ID: 1, SubjectCode: "MATH", BatchID: 1}},
		Assignments: []domain.FacultyAssignment{{OfferingID: 1, FacultyID: 1}},
	}

	result := Generate(context.Background(), in, nil, Config{TimeLimit: 2 * time.Second, Workers: 2})

	require.False(t, result.Success)
	assert.Equal(t, ReasonPrecheckFailed, result.FailureReason)
}

func TestGenerateInsufficientDataOnEmptyInput(t *testing.T) {
	result := Generate(context.Background(), domain.Input{}, nil, Config{})

	require.False(t, result.Success)
	assert.Equal(t, ReasonInsufficientData, result.FailureReason)
}

func TestGenerateNoEventsWhenAllOfferingsUnschedulable(t *testing.T) {
	in := domain.Input{
		Rooms:       []domain.Room{{ID: 1, Code: "R1", Capacity: 30, Type: domain.RoomTypeTheory}},
		Timeslots:   []domain.Timeslot{{ID: 1, Day: 0, Slot: 1}},
		Batches:     []domain.Batch{{ID: 1, Name: "B1", Size: 20}},
		Subjects:    map[string]domain.Subject{"MATH": {Code: "MATH", Type: domain.SubjectTypeTheory, ClassesPerWeek: 1}},
		Offerings:   []domain.Offering{{ID: 1, SubjectCode: "MATH", BatchID: 1}},
		Assignments: nil, // no faculty resolvable
	}

	result := Generate(context.Background(), in, nil, Config{})

	require.False(t, result.Success)
	assert.Equal(t, ReasonNoEvents, result.FailureReason)
	assert.Equal(t, 1, result.Summary.SkippedNoFaculty)
}
