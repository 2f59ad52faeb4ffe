package validator

import (
	"strings"
	"time"
	"unicode/utf8"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ExceedsLength reports whether s is longer than max characters.
func ExceedsLength(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IsValidDateTime checks if a string is a valid ISO8601 timestamp.
// Accepts formats like: "2024-01-15T10:30:00Z" or "2024-01-15T10:30:00+07:00"
func IsValidDateTime(dateTimeStr string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, dateTimeStr)
	if err == nil {
		return t, true
	}
	return time.Time{}, false
}

// ParseBound parses a range bound given either as an ISO8601 timestamp or as
// a plain YYYY-MM-DD date. A date is read in loc; with endOfDay set it covers
// the whole day, otherwise it starts at midnight.
func ParseBound(s string, loc *time.Location, endOfDay bool) (time.Time, bool) {
	if t, ok := IsValidDateTime(s); ok {
		return t, true
	}
	d, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, false
	}
	if endOfDay {
		return d.AddDate(0, 0, 1).Add(-time.Nanosecond), true
	}
	return d, true
}

// ValidateRange checks optional from/to bounds and appends field errors to
// errs. Both bounds, when present, must parse and from must not be after to.
// Dates are read in loc, as ParseBound does when the range is resolved; a nil
// loc means UTC.
func ValidateRange(from, to *string, loc *time.Location, errs ValidationErrors) ValidationErrors {
	if loc == nil {
		loc = time.UTC
	}

	var fromT, toT time.Time
	var fromOK, toOK bool

	if from != nil {
		if fromT, fromOK = ParseBound(*from, loc, false); !fromOK {
			errs = append(errs, ValidationError{
				Field:   "from",
				Message: "from must be a date (YYYY-MM-DD) or an ISO8601 timestamp",
			})
		}
	}
	if to != nil {
		if toT, toOK = ParseBound(*to, loc, true); !toOK {
			errs = append(errs, ValidationError{
				Field:   "to",
				Message: "to must be a date (YYYY-MM-DD) or an ISO8601 timestamp",
			})
		}
	}
	if fromOK && toOK && fromT.After(toT) {
		errs = append(errs, ValidationError{
			Field:   "to",
			Message: "to must not be before from",
		})
	}
	return errs
}
