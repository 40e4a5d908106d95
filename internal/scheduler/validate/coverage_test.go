package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-timetable-api/internal/scheduler/domain"
)

func TestAssertCoveragePassesWhenCountsMatch(t *testing.T) {
	assignments := []domain.Assignment{{Event: 0}, {Event: 1}, {Event: 2}}
	eventToOffering := map[domain.EventIndex]domain.OfferingID{0: 10, 1: 10, 2: 20}
	classesPerWeek := map[domain.OfferingID]int{10: 2, 20: 1}

	err := AssertCoverage(assignments, eventToOffering, classesPerWeek)

	assert.NoError(t, err)
}

func TestAssertCoverageFailsWhenOfferingUndercovered(t *testing.T) {
	assignments := []domain.Assignment{{Event: 0}}
	eventToOffering := map[domain.EventIndex]domain.OfferingID{0: 10}
	classesPerWeek := map[domain.OfferingID]int{10: 2}

	err := AssertCoverage(assignments, eventToOffering, classesPerWeek)

	require.Error(t, err)
	var coverageErr *CoverageError
	require.ErrorAs(t, err, &coverageErr)
	assert.Equal(t, domain.OfferingID(10), coverageErr.OfferingID)
	assert.Equal(t, 2, coverageErr.Want)
	assert.Equal(t, 1, coverageErr.Got)
}
