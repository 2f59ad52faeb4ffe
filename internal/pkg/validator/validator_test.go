package validator

import (
	"testing"
	"time"
	_ "time/tzdata"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestExceedsLength(t *testing.T) {
	if ExceedsLength("héllo", 5) {
		t.Errorf("ExceedsLength(%q, 5) = true, want false", "héllo")
	}
	if !ExceedsLength("héllo!", 5) {
		t.Errorf("ExceedsLength(%q, 5) = false, want true", "héllo!")
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00+07:00", "2024-01-15T10:30:00.123456Z"}
	invalid := []string{"2024-01-15", "2024-01-15 10:30:00", "10:30:00", ""}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", s)
		}
	}
}

func TestParseBound(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)

	start, ok := ParseBound("2024-03-01", jakarta, false)
	if !ok {
		t.Fatalf("ParseBound start = false, want true")
	}
	if want := time.Date(2024, 3, 1, 0, 0, 0, 0, jakarta); !start.Equal(want) {
		t.Errorf("ParseBound start = %v, want %v", start, want)
	}

	end, ok := ParseBound("2024-03-01", jakarta, true)
	if !ok {
		t.Fatalf("ParseBound end = false, want true")
	}
	if want := time.Date(2024, 3, 2, 0, 0, 0, 0, jakarta).Add(-time.Nanosecond); !end.Equal(want) {
		t.Errorf("ParseBound end = %v, want %v", end, want)
	}

	ts, ok := ParseBound("2024-03-01T08:00:00Z", jakarta, true)
	if !ok {
		t.Fatalf("ParseBound timestamp = false, want true")
	}
	if want := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC); !ts.Equal(want) {
		t.Errorf("ParseBound timestamp = %v, want %v", ts, want)
	}

	if _, ok := ParseBound("yesterday", jakarta, false); ok {
		t.Errorf("ParseBound(%q) = true, want false", "yesterday")
	}
}

func TestValidateRange(t *testing.T) {
	str := func(s string) *string { return &s }
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		t.Fatalf("LoadLocation(Asia/Jakarta) error = %v", err)
	}

	reversed := map[string]string{"to": "to must not be before from"}

	cases := []struct {
		name     string
		from, to *string
		loc      *time.Location
		want     map[string]string
	}{
		{name: "no bounds"},
		{name: "same day", from: str("2024-03-01"), to: str("2024-03-01")},
		{name: "mixed formats", from: str("2024-03-01T07:00:00Z"), to: str("2024-03-02")},
		{name: "reversed", from: str("2024-03-02"), to: str("2024-03-01"), want: reversed},
		{
			name: "malformed from",
			from: str("03/01/2024"),
			want: map[string]string{"from": "from must be a date (YYYY-MM-DD) or an ISO8601 timestamp"},
		},
		{
			name: "date from, early timestamp to in zone",
			from: str("2026-10-15"),
			to:   str("2026-10-15T03:00:00+07:00"),
			loc:  jakarta,
		},
		{
			name: "timestamp from after date to in zone",
			from: str("2026-10-15T05:00:00+07:00"),
			to:   str("2026-10-14"),
			loc:  jakarta,
			want: reversed,
		},
		{
			name: "timestamp to before local midnight",
			from: str("2026-10-15"),
			to:   str("2026-10-14T23:30:00+07:00"),
			loc:  jakarta,
			want: reversed,
		},
		{
			name: "timestamp from inside date to in zone",
			from: str("2026-10-14T20:00:00Z"),
			to:   str("2026-10-15"),
			loc:  jakarta,
		},
	}
	for _, c := range cases {
		errs := ValidateRange(c.from, c.to, c.loc, nil)
		if len(errs) != len(c.want) {
			t.Errorf("%s: ValidateRange() = %v, want %d errors", c.name, errs, len(c.want))
			continue
		}
		got := errs.ToMap()
		for k, v := range c.want {
			if got[k] != v {
				t.Errorf("%s: ValidateRange()[%q] = %q, want %q", c.name, k, got[k], v)
			}
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "notes", Message: "too long"},
		{Field: "from", Message: "invalid"},
	}
	got := errs.Error()
	want := "notes: too long; from: invalid"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "notes", Message: "too long"},
		{Field: "from", Message: "invalid"},
	}
	got := errs.ToMap()
	want := map[string]string{"notes": "too long", "from": "invalid"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}
