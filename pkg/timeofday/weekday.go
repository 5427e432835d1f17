package timeofday

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// Weekday indexes a day of the repeating week, Sunday first.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [...]string{"SUNDAY", "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY"}

// Valid reports whether d is within Sunday..Saturday.
func (d Weekday) Valid() bool {
	return d >= Sunday && d <= Saturday
}

// String returns the upper-case day name.
func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// ParseWeekday accepts the integer form used on the wire ("0".."6").
func ParseWeekday(raw string) (Weekday, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid weekday %q: %w", raw, err)
	}
	day := Weekday(value)
	if !day.Valid() {
		return 0, fmt.Errorf("weekday %d out of range", value)
	}
	return day, nil
}

// Value stores the day as its integer index.
func (d Weekday) Value() (driver.Value, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("weekday %d out of range", int(d))
	}
	return int64(d), nil
}
