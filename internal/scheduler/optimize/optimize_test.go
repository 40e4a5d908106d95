package optimize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-timetable-api/internal/scheduler/domain"
	"github.com/noah-isme/campus-timetable-api/internal/scheduler/validate"
)

type fakeReoptimizer struct {
	candidates []validate.CandidateAssignment
	err        error
}

func (f *fakeReoptimizer) Reoptimize(ctx context.Context, lookups Lookups, current []validate.CandidateAssignment, goals []Goal) ([]validate.CandidateAssignment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.candidates, nil
}

func fixtureSource() Source {
	return Source{
		VersionID:   "v1",
		VersionName: "semester-1 draft",
		Assignments: []validate.CandidateAssignment{{EventID: 0, TimeslotID: 1, RoomID: 1}},
		Lookups: Lookups{
			Events:    map[domain.EventIndex]EventProjection{0: {OfferingID: 1, BatchID: 1, FacultyID: 1, BatchSize: 25}},
			Timeslots: map[domain.TimeslotID]TimeslotProjection{1: {Day: 0, Slot: 1}, 2: {Day: 0, Slot: 2}},
			Rooms:     map[domain.RoomID]RoomProjection{1: {Capacity: 30, Type: domain.RoomTypeTheory}},
		},
	}
}

func TestApplyAcceptsValidCandidate(t *testing.T) {
	reopt := &fakeReoptimizer{candidates: []validate.CandidateAssignment{{EventID: 0, TimeslotID: 2, RoomID: 1}}}

	outcome, err := Apply(context.Background(), reopt, fixtureSource(), nil)

	require.NoError(t, err)
	assert.True(t, outcome.Accepted)
	assert.Equal(t, "semester-1 draft (reoptimized)", outcome.VersionName)
}

func TestApplyRejectsInvalidCandidateAndPerformsNoWrite(t *testing.T) {
	reopt := &fakeReoptimizer{candidates: []validate.CandidateAssignment{
		{EventID: 0, TimeslotID: 2, RoomID: 99}, // unknown room
	}}

	outcome, err := Apply(context.Background(), reopt, fixtureSource(), nil)

	require.NoError(t, err)
	assert.False(t, outcome.Accepted)
	assert.Contains(t, outcome.Reason, "unknown room_id")
	assert.Empty(t, outcome.Candidates)
}

func TestApplyPropagatesReoptimizerError(t *testing.T) {
	reopt := &fakeReoptimizer{err: assertErr("boom")}

	_, err := Apply(context.Background(), reopt, fixtureSource(), nil)

	require.Error(t, err)
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
