// Package prune computes, for each event, the feasible set of
// (timeslot, room) pairs. Capacity and lab/theory compatibility are
// the unconditional rules; faculty unavailability is an additive
// filter, and a fixed placement collapses an event's domain to the
// single pinned pair.
package prune

import (
	"github.com/noah-isme/campus-timetable-api/internal/scheduler/domain"
)

// Domain is the feasible set of placements for one event, indexed by EventIndex.
type Domain map[domain.EventIndex][]domain.Placement

// Options carries the additive filters beyond the unconditional capacity and lab rules.
type Options struct {
	// Unavailable maps a faculty member to the set of (day, slot) pairs they cannot teach.
	Unavailable map[domain.FacultyID]map[[2]int]struct{}
}

// Prune returns, for every event, the list of (timeslot, room) pairs
// satisfying: room.capacity >= event.batch_size AND (event.subject_type
// != lab OR room.type == lab). A fixed event's domain is collapsed to
// its single pinned (day, slot, room) without applying the capacity,
// lab or unavailability filters to it; an unavailable faculty window
// removes otherwise-feasible timeslots.
func Prune(events []domain.Event, rooms []domain.Room, timeslots []domain.Timeslot, opts Options) Domain {
	result := make(Domain, len(events))
	for _, e := range events {
		if e.Fixed != nil {
			result[e.Index] = []domain.Placement{{Day: e.Fixed.Day, Slot: e.Fixed.Slot, RoomID: e.Fixed.RoomID}}
			continue
		}

		blocked := opts.Unavailable[e.FacultyID]
		var placements []domain.Placement
		for _, t := range timeslots {
			if blocked != nil {
				if _, isBlocked := blocked[[2]int{t.Day, t.Slot}]; isBlocked {
					continue
				}
			}
			for _, r := range rooms {
				if r.Capacity < e.BatchSize {
					continue
				}
				if e.SubjectType == domain.SubjectTypeLab && r.Type != domain.RoomTypeLab {
					continue
				}
				placements = append(placements, domain.Placement{Day: t.Day, Slot: t.Slot, RoomID: r.ID})
			}
		}
		result[e.Index] = placements
	}
	return result
}

// EmptyDomains returns the offering ids of every event whose domain came
// back empty, for the DomainEmpty/no_domain_for_event failure report.
func EmptyDomains(events []domain.Event, d Domain) []domain.OfferingID {
	var offerings []domain.OfferingID
	for _, e := range events {
		if len(d[e.Index]) == 0 {
			offerings = append(offerings, e.OfferingID)
		}
	}
	return offerings
}
