package utils

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	_ "time/tzdata"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TimestampFields is the order in which a spin's effective time is looked up.
var TimestampFields = FieldChain{"createdAt", "outTime", "inTime", "timestamp"}

var ErrInvalidInstant = errors.New("invalid instant")

// Layouts accepted for date-like strings. Strings without an offset are UTC.
var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
}

// ResolveTimestamp returns the first present timestamp candidate of doc
// coerced to an instant. A present value that cannot be coerced does not fall
// through to the next candidate; the record simply has no timestamp.
func ResolveTimestamp(doc map[string]interface{}) (time.Time, bool) {
	v, ok := TimestampFields.Lookup(doc)
	if !ok {
		return time.Time{}, false
	}
	return CoerceTime(v)
}

// CoerceTime converts a stored date or date-like value to a UTC instant.
// Numbers are milliseconds since the Unix epoch.
func CoerceTime(v interface{}) (time.Time, bool) {
	var t time.Time
	switch x := v.(type) {
	case time.Time:
		t = x
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		t = *x
	case primitive.DateTime:
		t = x.Time()
	case primitive.Timestamp:
		t = time.Unix(int64(x.T), 0)
	case string:
		parsed, err := ParseInstant(x)
		if err != nil {
			return time.Time{}, false
		}
		t = parsed
	case int64:
		t = time.UnixMilli(x)
	case int32:
		t = time.UnixMilli(int64(x))
	case int:
		t = time.UnixMilli(int64(x))
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return time.Time{}, false
		}
		t = time.UnixMilli(int64(x))
	default:
		return time.Time{}, false
	}

	if t.IsZero() {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// ParseInstant parses the date-like strings found in spin documents and in
// from/to query parameters.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidInstant
	}

	// JavaScript Date#toString appends a zone name in parentheses.
	if i := strings.Index(s, " ("); i > 0 && strings.HasSuffix(s, ")") {
		s = s[:i]
	}

	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidInstant, s)
}

var defaultLocation = time.UTC

// SetDefaultLocation sets the zone used when a request names none. Call it
// once at startup.
func SetDefaultLocation(loc *time.Location) {
	if loc != nil {
		defaultLocation = loc
	}
}

// LoadLocation resolves an IANA zone name; empty means the default zone.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultLocation, nil
	}
	if strings.EqualFold(name, "UTC") {
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}

// DayKey formats t as YYYY-MM-DD in loc.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// WeekKey formats t as an ISO week, YYYY-Www, in loc.
func WeekKey(t time.Time, loc *time.Location) string {
	year, week := t.In(loc).ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// MonthKey formats t as YYYY-MM in loc.
func MonthKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01")
}

// DayOfWeek numbers days 1 (Sunday) through 7 (Saturday).
func DayOfWeek(t time.Time, loc *time.Location) int {
	return int(t.In(loc).Weekday()) + 1
}

func StartOfMonth(t time.Time) time.Time {
	year, month, _ := t.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
}

func FormatTimeISO(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
