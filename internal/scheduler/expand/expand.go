// Package expand materializes offerings into the dense Event list the
// rest of the scheduler core operates on.
package expand

import (
	"sort"
	"strings"

	"github.com/noah-isme/campus-timetable-api/internal/scheduler/domain"
)

// Summary reports how many offerings were skipped and why, so callers
// can surface data-quality issues without the expander returning an error.
type Summary struct {
	SkippedMissingSubject int
	SkippedMissingBatch   int
	SkippedNoFaculty      int
}

// Result is the output of expansion: the dense event list plus the skip summary.
type Result struct {
	Events  []domain.Event
	Summary Summary
}

// Expand turns offerings into Events. Offerings are processed in the
// order given; callers are expected to have already sorted them by id
// so that repeated runs over the same data expand identically. For each
// offering, a single faculty is resolved by scanning assignments in
// stable FacultyID-ascending order and taking the first match;
// offerings lacking a resolvable subject, batch, or faculty are
// skipped silently (policy, not error) and counted in the Summary.
// SubjectType is lower-cased on the emitted event regardless of how it
// was cased in the subject record.
func Expand(
	offerings []domain.Offering,
	subjects map[string]domain.Subject,
	batchesByID map[domain.BatchID]domain.Batch,
	assignments []domain.FacultyAssignment,
	fixed map[domain.OfferingID]domain.FixedPlacement,
) Result {
	byOffering := assignmentsByOffering(assignments)

	var events []domain.Event
	var summary Summary
	nextIndex := domain.EventIndex(0)

	for _, offering := range offerings {
		subject, ok := subjects[offering.SubjectCode]
		if !ok {
			summary.SkippedMissingSubject++
			continue
		}
		batch, ok := batchesByID[offering.BatchID]
		if !ok {
			summary.SkippedMissingBatch++
			continue
		}
		facultyID, ok := resolveFaculty(offering.ID, byOffering)
		if !ok {
			summary.SkippedNoFaculty++
			continue
		}

		batchSize := batch.Size
		if batchSize < 0 {
			batchSize = 0
		}

		var pin *domain.FixedPlacement
		if f, ok := fixed[offering.ID]; ok {
			pinCopy := f
			pin = &pinCopy
		}

		subjectType := domain.SubjectType(strings.ToLower(string(subject.Type)))

		for i := 0; i < subject.ClassesPerWeek; i++ {
			events = append(events, domain.Event{
				Index:       nextIndex,
				OfferingID:  offering.ID,
				BatchID:     offering.BatchID,
				FacultyID:   facultyID,
				SubjectCode: offering.SubjectCode,
				SubjectType: subjectType,
				BatchSize:   batchSize,
				Fixed:       pin,
			})
			nextIndex++
		}
	}

	return Result{Events: events, Summary: summary}
}

func assignmentsByOffering(assignments []domain.FacultyAssignment) map[domain.OfferingID][]domain.FacultyAssignment {
	grouped := make(map[domain.OfferingID][]domain.FacultyAssignment, len(assignments))
	for _, a := range assignments {
		grouped[a.OfferingID] = append(grouped[a.OfferingID], a)
	}
	for id, list := range grouped {
		sorted := append([]domain.FacultyAssignment(nil), list...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].FacultyID < sorted[j].FacultyID })
		grouped[id] = sorted
	}
	return grouped
}

func resolveFaculty(offeringID domain.OfferingID, byOffering map[domain.OfferingID][]domain.FacultyAssignment) (domain.FacultyID, bool) {
	candidates, ok := byOffering[offeringID]
	if !ok || len(candidates) == 0 {
		return 0, false
	}
	return candidates[0].FacultyID, true
}
