package prune

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-timetable-api/internal/scheduler/domain"
)

func TestPruneFiltersByCapacityAndLabCompatibility(t *testing.T) {
	events := []domain.Event{
		{Index: 0, SubjectType: domain.SubjectTypeLab, BatchSize: 25},
	}
	rooms := []domain.Room{
		{ID: 1, Capacity: 40, Type: domain.RoomTypeLab},
		{ID: 2, Capacity: 40, Type: domain.RoomTypeTheory},
		{ID: 3, Capacity: 10, Type: domain.RoomTypeLab},
	}
	timeslots := []domain.Timeslot{{Day: 0, Slot: 1}, {Day: 0, Slot: 2}}

	d := Prune(events, rooms, timeslots, Options{})

	placements := d[0]
	for _, p := range placements {
		assert.Equal(t, domain.RoomID(1), p.RoomID, "only the capacity+type compatible lab room should survive")
	}
	assert.Len(t, placements, len(timeslots))
}

func TestPruneEmptyDomainWhenNoRoomFits(t *testing.T) {
	events := []domain.Event{{Index: 0, SubjectType: domain.SubjectTypeTheory, BatchSize: 30}}
	rooms := []domain.Room{{ID: 1, Capacity: 20, Type: domain.RoomTypeTheory}}
	timeslots := []domain.Timeslot{{Day: 0, Slot: 1}}

	d := Prune(events, rooms, timeslots, Options{})

	require.Empty(t, d[0])
	empties := EmptyDomains(events, d)
	assert.Equal(t, []domain.OfferingID{0}, empties)
}

func TestPruneHonorsFacultyUnavailability(t *testing.T) {
	events := []domain.Event{{Index: 0, FacultyID: 5, SubjectType: domain.SubjectTypeTheory, BatchSize: 10}}
	rooms := []domain.Room{{ID: 1, Capacity: 50, Type: domain.RoomTypeTheory}}
	timeslots := []domain.Timeslot{{Day: 0, Slot: 1}, {Day: 0, Slot: 2}}
	opts := Options{Unavailable: map[domain.FacultyID]map[[2]int]struct{}{
		5: {{0, 1}: {}},
	}}

	d := Prune(events, rooms, timeslots, opts)

	require.Len(t, d[0], 1)
	assert.Equal(t, 2, d[0][0].Slot)
}

func TestPruneCollapsesFixedEventToSinglePlacement(t *testing.T) {
	events := []domain.Event{{
		Index:       0,
		SubjectType: domain.SubjectTypeTheory,
		BatchSize:   10,
		Fixed:       &domain.FixedPlacement{Day: 3, Slot: 4, RoomID: 7},
	}}
	rooms := []domain.Room{{ID: 7, Capacity: 50, Type: domain.RoomTypeTheory}}
	timeslots := []domain.Timeslot{{Day: 0, Slot: 1}, {Day: 3, Slot: 4}}

	d := Prune(events, rooms, timeslots, Options{})

	require.Len(t, d[0], 1)
	assert.Equal(t, domain.Placement{Day: 3, Slot: 4, RoomID: 7}, d[0][0])
}
