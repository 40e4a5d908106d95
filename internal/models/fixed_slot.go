package models

// FixedSlot pins an offering to a single (day, slot, room) ahead of
// solving, collapsing its event's domain to that one pair before the
// domain pruner runs.
type FixedSlot struct {
	ID         int64   `db:"id" json:"id"`
	OfferingID int64   `db:"offering_id" json:"offering_id"`
	Day        int     `db:"day" json:"day"`
	Slot       int     `db:"slot" json:"slot"`
	RoomID     int64   `db:"room_id" json:"room_id"`
	Reason     *string `db:"reason" json:"reason,omitempty"`
}
