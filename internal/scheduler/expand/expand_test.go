package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-timetable-api/internal/scheduler/domain"
)

func TestExpandEmitsDenseEventsPerClassesPerWeek(t *testing.T) {
	offerings := []domain.Offering{
		{ID: 1, SubjectCode: "MATH", BatchID: 1, Semester: 1},
	}
	subjects := map[string]domain.Subject{
		"MATH": {Code: "MATH", Type: domain.SubjectTypeTheory, ClassesPerWeek: 3},
	}
	batches := map[domain.BatchID]domain.Batch{1: {ID: 1, Size: 25}}
	assignments := []domain.FacultyAssignment{{OfferingID: 1, FacultyID: 7}}

	result := Expand(offerings, subjects, batches, assignments, nil)

	require.Len(t, result.Events, 3)
	for i, e := range result.Events {
		assert.Equal(t, domain.EventIndex(i), e.Index)
		assert.Equal(t, domain.OfferingID(1), e.OfferingID)
		assert.Equal(t, domain.FacultyID(7), e.FacultyID)
		assert.Equal(t, 25, e.BatchSize)
	}
}

func TestExpandSkipsMissingSubjectBatchOrFaculty(t *testing.T) {
	offerings := []domain.Offering{
		{ID: 1, SubjectCode: "MISSING", BatchID: 1},
		{ID: 2, SubjectCode: "MATH", BatchID: 99},
		{ID: 3, SubjectCode: "MATH", BatchID: 1},
	}
	subjects := map[string]domain.Subject{
		"MATH": {Code: "MATH", Type: domain.SubjectTypeTheory, ClassesPerWeek: 1},
	}
	batches := map[domain.BatchID]domain.Batch{1: {ID: 1, Size: 25}}

	result := Expand(offerings, subjects, batches, nil, nil)

	assert.Empty(t, result.Events)
	assert.Equal(t, 1, result.Summary.SkippedMissingSubject)
	assert.Equal(t, 1, result.Summary.SkippedMissingBatch)
	assert.Equal(t, 1, result.Summary.SkippedNoFaculty)
}

func TestExpandResolvesFirstFacultyByAscendingID(t *testing.T) {
	offerings := []domain.Offering{{ID: 1, SubjectCode: "MATH", BatchID: 1}}
	subjects := map[string]domain.Subject{"MATH": {Code: "MATH", Type: domain.SubjectTypeTheory, ClassesPerWeek: 1}}
	batches := map[domain.BatchID]domain.Batch{1: {ID: 1, Size: 10}}
	assignments := []domain.FacultyAssignment{
		{OfferingID: 1, FacultyID: 9},
		{OfferingID: 1, FacultyID: 3},
	}

	result := Expand(offerings, subjects, batches, assignments, nil)

	require.Len(t, result.Events, 1)
	assert.Equal(t, domain.FacultyID(3), result.Events[0].FacultyID)
}

func TestExpandLowerCasesSubjectTypeAndFloorsBatchSize(t *testing.T) {
	offerings := []domain.Offering{{ID: 1, SubjectCode: "PHY", BatchID: 1}}
	subjects := map[string]domain.Subject{"PHY": {Code: "PHY", Type: domain.SubjectType("LAB"), ClassesPerWeek: 1}}
	batches := map[domain.BatchID]domain.Batch{1: {ID: 1, Size: -5}}
	assignments := []domain.FacultyAssignment{{OfferingID: 1, FacultyID: 1}}

	result := Expand(offerings, subjects, batches, assignments, nil)

	require.Len(t, result.Events, 1)
	assert.Equal(t, domain.SubjectTypeLab, result.Events[0].SubjectType)
	assert.Equal(t, 0, result.Events[0].BatchSize)
}

func TestExpandAttachesFixedPlacement(t *testing.T) {
	offerings := []domain.Offering{{ID: 1, SubjectCode: "MATH", BatchID: 1}}
	subjects := map[string]domain.Subject{"MATH": {Code: "MATH", Type: domain.SubjectTypeTheory, ClassesPerWeek: 1}}
	batches := map[domain.BatchID]domain.Batch{1: {ID: 1, Size: 10}}
	assignments := []domain.FacultyAssignment{{OfferingID: 1, FacultyID: 1}}
	fixed := map[domain.OfferingID]domain.FixedPlacement{1: {OfferingID: 1, Day: 2, Slot: 3, RoomID: 9}}

	result := Expand(offerings, subjects, batches, assignments, fixed)

	require.Len(t, result.Events, 1)
	require.NotNil(t, result.Events[0].Fixed)
	assert.Equal(t, domain.RoomID(9), result.Events[0].Fixed.RoomID)
}
