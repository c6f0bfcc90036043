package scoring

import (
	"strings"
	"time"
)

// DateLayout is the canonical calendar-date wire format.
const DateLayout = "2006-01-02"

// daysPerYear matches the fractional-age divisor used by badge thresholds.
const daysPerYear = 365.25

// Timestamp mirrors the document-store timestamp shape ({seconds: n}) that
// raw snapshots may still carry for birth/death dates.
type Timestamp struct {
	Seconds int64
}

// ToDate converts a flexible date representation into a canonical UTC
// calendar date (midnight). Supported inputs: "YYYY-MM-DD" strings,
// Timestamp values, time.Time, and pointers to either. Anything else,
// including empty or unparseable input, reports ok=false: unknown dates are
// not errors and degrade downstream results to zero contributions.
func ToDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return time.Time{}, false
		}
		parsed, err := time.Parse(DateLayout, trimmed)
		if err != nil {
			return time.Time{}, false
		}
		return parsed.UTC(), true
	case Timestamp:
		if v.Seconds == 0 {
			return time.Time{}, false
		}
		return truncateToDate(time.Unix(v.Seconds, 0).UTC()), true
	case *Timestamp:
		if v == nil {
			return time.Time{}, false
		}
		return ToDate(*v)
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return truncateToDate(v.UTC()), true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return ToDate(*v)
	default:
		return time.Time{}, false
	}
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AgeAt computes calendar-year age at the reference date: whole years,
// decremented by one when the reference month/day falls before the birth
// month/day. This is the semantics used for point scoring and display ages.
func AgeAt(birth, ref time.Time) int {
	age := ref.Year() - birth.Year()
	if ref.Month() < birth.Month() ||
		(ref.Month() == birth.Month() && ref.Day() < birth.Day()) {
		age--
	}
	return age
}

// AgeAtDeath resolves the calendar age for a pick: nil birth date yields
// ok=false, a present death date anchors the age, otherwise the age is taken
// as of now (still-living subject).
func AgeAtDeath(birth, death *time.Time, now time.Time) (int, bool) {
	if birth == nil {
		return 0, false
	}
	ref := now
	if death != nil {
		ref = *death
	}
	return AgeAt(*birth, ref), true
}

// Years returns the fractional-year span between two instants (elapsed time
// divided by 365.25 days). Several badge age thresholds compare against this
// instead of calendar age; the two must not be unified.
func Years(from, to time.Time) float64 {
	return to.Sub(from).Hours() / (24 * daysPerYear)
}
