package scoring

import (
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestToDate(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   time.Time
		wantOK bool
	}{
		{name: "calendar string", input: "1950-01-01", want: date(1950, time.January, 1), wantOK: true},
		{name: "padded string", input: "  2026-03-15 ", want: date(2026, time.March, 15), wantOK: true},
		{name: "empty string", input: "", wantOK: false},
		{name: "garbage string", input: "not-a-date", wantOK: false},
		{name: "wrong layout", input: "01/02/2026", wantOK: false},
		{name: "timestamp", input: Timestamp{Seconds: date(2026, time.June, 2).Unix()}, want: date(2026, time.June, 2), wantOK: true},
		{name: "zero timestamp", input: Timestamp{}, wantOK: false},
		{name: "nil timestamp pointer", input: (*Timestamp)(nil), wantOK: false},
		{name: "native time", input: time.Date(2026, time.June, 2, 13, 45, 0, 0, time.UTC), want: date(2026, time.June, 2), wantOK: true},
		{name: "zero time", input: time.Time{}, wantOK: false},
		{name: "nil", input: nil, wantOK: false},
		{name: "unsupported shape", input: 42, wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ToDate(tc.input)
			if ok != tc.wantOK {
				t.Fatalf("ToDate(%v) ok=%v want=%v", tc.input, ok, tc.wantOK)
			}
			if ok && !got.Equal(tc.want) {
				t.Fatalf("ToDate(%v) = %v want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestAgeAt(t *testing.T) {
	birth := date(1950, time.June, 15)

	tests := []struct {
		name string
		ref  time.Time
		want int
	}{
		{name: "day before birthday", ref: date(2026, time.June, 14), want: 75},
		{name: "on birthday", ref: date(2026, time.June, 15), want: 76},
		{name: "after birthday", ref: date(2026, time.December, 31), want: 76},
		{name: "earlier month", ref: date(2026, time.January, 1), want: 75},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := AgeAt(birth, tc.ref); got != tc.want {
				t.Fatalf("AgeAt = %d want %d", got, tc.want)
			}
		})
	}
}

func TestAgeAtDeath(t *testing.T) {
	now := date(2026, time.August, 1)
	birth := date(1950, time.January, 1)
	death := date(2026, time.January, 1)

	if _, ok := AgeAtDeath(nil, &death, now); ok {
		t.Fatal("expected no age without a birth date")
	}

	got, ok := AgeAtDeath(&birth, &death, now)
	if !ok || got != 76 {
		t.Fatalf("age at death = %d ok=%v, want 76", got, ok)
	}

	// Still-living subject: age as of the evaluation instant.
	got, ok = AgeAtDeath(&birth, nil, now)
	if !ok || got != 76 {
		t.Fatalf("living age = %d ok=%v, want 76", got, ok)
	}
}

func TestYears(t *testing.T) {
	from := date(1936, time.January, 1)
	to := date(2026, time.January, 1)

	got := Years(from, to)
	if got < 89.9 || got > 90.1 {
		t.Fatalf("Years = %f, want ~90", got)
	}

	// Fractional age deliberately diverges from calendar age near birthdays:
	// 59 years and 10 months is under 60 fractionally and 59 by calendar.
	young := Years(date(1966, time.March, 1), date(2026, time.January, 1))
	if young >= 60 {
		t.Fatalf("fractional age = %f, want < 60", young)
	}
}
