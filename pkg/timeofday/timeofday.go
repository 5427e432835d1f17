package timeofday

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the exclusive upper bound of an encoded time of day.
const MinutesPerDay = 24 * 60

// ErrInvalidFormat is wrapped by every FormatError.
var ErrInvalidFormat = errors.New("invalid time of day")

// FormatError describes why a time string could not be encoded.
type FormatError struct {
	Value  string
	Reason string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("invalid time of day %q: %s", e.Value, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidFormat).
func (e *FormatError) Unwrap() error {
	return ErrInvalidFormat
}

// Encode converts an "HH:MM" string into minutes since midnight.
// Both components may be one or two digits.
func Encode(value string) (int, error) {
	hoursRaw, minutesRaw, ok := strings.Cut(value, ":")
	if !ok {
		return 0, &FormatError{Value: value, Reason: "expected HH:MM"}
	}
	hours, err := parseComponent(hoursRaw)
	if err != nil {
		return 0, &FormatError{Value: value, Reason: "hours " + err.Error()}
	}
	minutes, err := parseComponent(minutesRaw)
	if err != nil {
		return 0, &FormatError{Value: value, Reason: "minutes " + err.Error()}
	}
	if hours > 23 {
		return 0, &FormatError{Value: value, Reason: "hours out of range"}
	}
	if minutes > 59 {
		return 0, &FormatError{Value: value, Reason: "minutes out of range"}
	}
	return hours*60 + minutes, nil
}

// MustEncode is Encode for literals known to be valid.
func MustEncode(value string) int {
	minutes, err := Encode(value)
	if err != nil {
		panic(err)
	}
	return minutes
}

// Format renders minutes since midnight as zero-padded "HH:MM".
func Format(minutes int) string {
	if minutes < 0 || minutes >= MinutesPerDay {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Valid reports whether value is accepted by Encode.
func Valid(value string) bool {
	_, err := Encode(value)
	return err == nil
}

func parseComponent(raw string) (int, error) {
	if len(raw) == 0 || len(raw) > 2 {
		return 0, errors.New("must be one or two digits")
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, errors.New("must be numeric")
		}
	}
	return strconv.Atoi(raw)
}
