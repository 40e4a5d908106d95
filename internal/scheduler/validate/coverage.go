package validate

import (
	"fmt"

	"github.com/noah-isme/campus-timetable-api/internal/scheduler/domain"
)

// CoverageError names an offering whose entry count didn't match its
// required classes_per_week.
type CoverageError struct {
	OfferingID domain.OfferingID
	Want       int
	Got        int
}

func (e *CoverageError) Error() string {
	return fmt.Sprintf("offering %d: expected %d entries, found %d", e.OfferingID, e.Want, e.Got)
}

// AssertCoverage checks that every offering with classes-per-week k
// is referenced by exactly k assignments. This is deliberately kept
// outside Validate: coverage is the caller's responsibility, so an
// externally proposed schedule's coverage is checked explicitly before
// persistence, not silently inside the hard-constraint pass.
func AssertCoverage(assignments []domain.Assignment, eventToOffering map[domain.EventIndex]domain.OfferingID, classesPerWeek map[domain.OfferingID]int) error {
	counts := make(map[domain.OfferingID]int, len(classesPerWeek))
	for _, a := range assignments {
		offeringID, ok := eventToOffering[a.Event]
		if !ok {
			continue
		}
		counts[offeringID]++
	}
	for offeringID, want := range classesPerWeek {
		if got := counts[offeringID]; got != want {
			return &CoverageError{OfferingID: offeringID, Want: want, Got: got}
		}
	}
	return nil
}
