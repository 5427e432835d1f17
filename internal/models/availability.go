package models

import "github.com/noah-isme/tutoring-api/pkg/timeofday"

// AvailabilityWindow is one recurring weekly interval [FromMinute, ToMinute)
// during which a class offering can be booked.
type AvailabilityWindow struct {
	ID              string            `db:"id" json:"id"`
	ClassOfferingID string            `db:"class_offering_id" json:"class_offering_id"`
	Weekday         timeofday.Weekday `db:"weekday" json:"week_day"`
	FromMinute      int               `db:"from_minute" json:"from_minute"`
	ToMinute        int               `db:"to_minute" json:"to_minute"`
}

// Contains reports whether minute falls inside the half-open window.
func (w AvailabilityWindow) Contains(weekday timeofday.Weekday, minute int) bool {
	return w.Weekday == weekday && w.FromMinute <= minute && minute < w.ToMinute
}
