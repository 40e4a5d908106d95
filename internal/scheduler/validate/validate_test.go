package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/campus-timetable-api/internal/scheduler/domain"
)

func fixtureLookups() (map[domain.TimeslotID]TimeslotRow, map[domain.RoomID]RoomRow, map[domain.EventIndex]EventRow) {
	timeslots := map[domain.TimeslotID]TimeslotRow{1: {Day: 0, Slot: 1}, 2: {Day: 0, Slot: 2}}
	rooms := map[domain.RoomID]RoomRow{1: {Capacity: 30, Type: domain.RoomTypeTheory}, 2: {Capacity: 40, Type: domain.RoomTypeLab}}
	events := map[domain.EventIndex]EventRow{
		0: {FacultyID: 1, BatchID: 1, BatchSize: 25, IsLab: false},
		1: {FacultyID: 2, BatchID: 2, BatchSize: 25, IsLab: false},
	}
	return timeslots, rooms, events
}

func TestValidateAcceptsDisjointAssignments(t *testing.T) {
	timeslots, rooms, events := fixtureLookups()
	assignments := []CandidateAssignment{
		{EventID: 0, TimeslotID: 1, RoomID: 1},
		{EventID: 1, TimeslotID: 2, RoomID: 1},
	}

	result := Validate(assignments, timeslots, rooms, events)

	assert.True(t, result.OK)
}

func TestValidateRejectsUnknownIDs(t *testing.T) {
	timeslots, rooms, events := fixtureLookups()
	assignments := []CandidateAssignment{{EventID: 99, TimeslotID: 1, RoomID: 1}}

	result := Validate(assignments, timeslots, rooms, events)

	assert.False(t, result.OK)
	assert.Contains(t, result.Reason, "unknown event_id")
}

func TestValidateRejectsRoomDoubleBooking(t *testing.T) {
	timeslots, rooms, events := fixtureLookups()
	assignments := []CandidateAssignment{
		{EventID: 0, TimeslotID: 1, RoomID: 1},
		{EventID: 1, TimeslotID: 1, RoomID: 1},
	}

	result := Validate(assignments, timeslots, rooms, events)

	assert.False(t, result.OK)
	assert.Contains(t, result.Reason, "double-booked")
}

func TestValidateRejectsFacultyClashBeforeBatchClash(t *testing.T) {
	timeslots, rooms, events := fixtureLookups()
	events[1] = EventRow{FacultyID: 1, BatchID: 2, BatchSize: 25}
	assignments := []CandidateAssignment{
		{EventID: 0, TimeslotID: 1, RoomID: 1},
		{EventID: 1, TimeslotID: 1, RoomID: 2},
	}

	result := Validate(assignments, timeslots, rooms, events)

	assert.False(t, result.OK)
	assert.Contains(t, result.Reason, "faculty")
}

func TestValidateRejectsBatchClash(t *testing.T) {
	timeslots, rooms, events := fixtureLookups()
	events[1] = EventRow{FacultyID: 2, BatchID: 1, BatchSize: 25}
	assignments := []CandidateAssignment{
		{EventID: 0, TimeslotID: 1, RoomID: 1},
		{EventID: 1, TimeslotID: 1, RoomID: 2},
	}

	result := Validate(assignments, timeslots, rooms, events)

	assert.False(t, result.OK)
	assert.Contains(t, result.Reason, "batch")
}

func TestValidateRejectsCapacityBreach(t *testing.T) {
	timeslots, rooms, events := fixtureLookups()
	assignments := []CandidateAssignment{{EventID: 0, TimeslotID: 1, RoomID: 1}}
	events[0] = EventRow{FacultyID: 1, BatchID: 1, BatchSize: 999}

	result := Validate(assignments, timeslots, rooms, events)

	assert.False(t, result.OK)
	assert.Contains(t, result.Reason, "capacity")
}

func TestValidateRejectsLabInTheoryRoom(t *testing.T) {
	timeslots, rooms, events := fixtureLookups()
	events[0] = EventRow{FacultyID: 1, BatchID: 1, BatchSize: 25, IsLab: true}
	assignments := []CandidateAssignment{{EventID: 0, TimeslotID: 1, RoomID: 1}}

	result := Validate(assignments, timeslots, rooms, events)

	assert.False(t, result.OK)
	assert.Contains(t, result.Reason, "lab")
}

func TestValidateIsStableUnderReordering(t *testing.T) {
	timeslots, rooms, events := fixtureLookups()
	a := []CandidateAssignment{
		{EventID: 0, TimeslotID: 1, RoomID: 1},
		{EventID: 1, TimeslotID: 2, RoomID: 1},
	}
	b := []CandidateAssignment{a[1], a[0]}

	assert.True(t, Validate(a, timeslots, rooms, events).OK)
	assert.True(t, Validate(b, timeslots, rooms, events).OK)
}

func TestValidateFallsBackToAssignmentFacultyAndBatchWhenEventLacksThem(t *testing.T) {
	timeslots, rooms, _ := fixtureLookups()
	events := map[domain.EventIndex]EventRow{0: {BatchSize: 10}, 1: {BatchSize: 10}}
	assignments := []CandidateAssignment{
		{EventID: 0, TimeslotID: 1, RoomID: 1, FacultyID: 9, BatchID: 9},
		{EventID: 1, TimeslotID: 1, RoomID: 2, FacultyID: 9, BatchID: 9},
	}

	result := Validate(assignments, timeslots, rooms, events)

	assert.False(t, result.OK)
	assert.Contains(t, result.Reason, "faculty")
}
