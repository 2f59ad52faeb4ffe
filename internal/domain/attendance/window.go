package attendance

import (
	"fmt"
	"time"
)

const timeOfDayLayout = "15:04:05"

// CheckInWindow is the daily wall-clock interval in which check-in is
// accepted. Both ends are inclusive.
type CheckInWindow struct {
	// Offsets from local midnight.
	Start time.Duration
	End   time.Duration
}

// DefaultCheckInWindow is 07:30:00–09:00:00.
func DefaultCheckInWindow() CheckInWindow {
	return CheckInWindow{
		Start: 7*time.Hour + 30*time.Minute,
		End:   9 * time.Hour,
	}
}

// ParseCheckInWindow parses two HH:MM:SS bounds.
func ParseCheckInWindow(start, end string) (CheckInWindow, error) {
	s, err := parseTimeOfDay(start)
	if err != nil {
		return CheckInWindow{}, fmt.Errorf("%w: start %q: %v", ErrInvalidWindow, start, err)
	}
	e, err := parseTimeOfDay(end)
	if err != nil {
		return CheckInWindow{}, fmt.Errorf("%w: end %q: %v", ErrInvalidWindow, end, err)
	}
	if s > e {
		return CheckInWindow{}, fmt.Errorf("%w: start %s is after end %s", ErrInvalidWindow, start, end)
	}
	return CheckInWindow{Start: s, End: e}, nil
}

// Contains reports whether the wall-clock time of t, read in t's own
// location, lies inside the window.
func (w CheckInWindow) Contains(t time.Time) bool {
	tod := timeOfDay(t)
	return tod >= w.Start && tod <= w.End
}

func (w CheckInWindow) String() string {
	return formatTimeOfDay(w.Start) + "–" + formatTimeOfDay(w.End)
}

func timeOfDay(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond())
}

func parseTimeOfDay(v string) (time.Duration, error) {
	t, err := time.Parse(timeOfDayLayout, v)
	if err != nil {
		return 0, err
	}
	return timeOfDay(t), nil
}

func formatTimeOfDay(d time.Duration) string {
	return time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC).Add(d).Format(timeOfDayLayout)
}
