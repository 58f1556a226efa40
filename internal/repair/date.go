package repair

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// labelLayout renders dates as e.g. "January 05, 2024".
const labelLayout = "January 02, 2006"

// dateLayouts lists the ISO-8601 shapes accepted for event dates. A trailing
// Z is rewritten to +00:00 before parsing. Fractional seconds are accepted
// after any seconds field.
var dateLayouts = buildLayouts()

func buildLayouts() []string {
	dates := []string{"2006-01-02", "20060102"}
	clocks := []string{"15", "15:04", "15:04:05", "1504", "150405"}
	zones := []string{"", "Z07:00", "Z0700", "Z07"}

	layouts := append([]string{}, dates...)
	for _, date := range dates {
		for _, sep := range []string{"T", " "} {
			for _, clock := range clocks {
				for _, zone := range zones {
					layouts = append(layouts, date+sep+clock+zone)
				}
			}
		}
	}
	return layouts
}

var (
	// weekDate matches 2024-W03-1, 2024-W03, 2024W031 and 2024W03.
	weekDate = regexp.MustCompile(`^(\d{4})(?:-W(\d{2})(?:-([1-7]))?|W(\d{2})([1-7])?)`)
	// shortHour catches a one-digit hour, which time.Parse would accept.
	shortHour = regexp.MustCompile(`^[0-9-]+[T ]\d(?:\D|$)`)
)

// weekToCalendar rewrites a leading ISO week date as YYYY-MM-DD and keeps
// the rest of value. Values without a week date are returned unchanged.
func weekToCalendar(value string) (string, bool) {
	m := weekDate.FindStringSubmatch(value)
	if m == nil {
		return value, true
	}
	year, _ := strconv.Atoi(m[1])
	weekStr, dayStr := m[2], m[3]
	if weekStr == "" {
		weekStr, dayStr = m[4], m[5]
	}
	week, _ := strconv.Atoi(weekStr)
	day := 1
	if dayStr != "" {
		day, _ = strconv.Atoi(dayStr)
	}
	if week < 1 || week > isoWeeksInYear(year) {
		return value, false
	}

	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	monday := jan4.AddDate(0, 0, -(isoWeekday(jan4) - 1))
	t := monday.AddDate(0, 0, (week-1)*7+day-1)
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day()) + value[len(m[0]):], true
}

// isoWeekday numbers Monday 1 through Sunday 7.
func isoWeekday(t time.Time) int {
	if t.Weekday() == time.Sunday {
		return 7
	}
	return int(t.Weekday())
}

func isoWeeksInYear(year int) int {
	_, week := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}

// DateLabel is the outcome of formatting an event date. When Parsed is
// false, Text holds the input unchanged.
type DateLabel struct {
	Text   string
	Parsed bool
	Time   time.Time
}

// ParseDate parses an ISO-8601 date or timestamp. The returned time keeps
// the offset written in the input.
func ParseDate(raw string) (time.Time, bool) {
	value, ok := weekToCalendar(raw)
	if !ok || shortHour.MatchString(value) {
		return time.Time{}, false
	}
	if strings.HasSuffix(value, "Z") {
		value = strings.TrimSuffix(value, "Z") + "+00:00"
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil && t.Year() >= 1 {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate turns raw into a label like "January 15, 2024". Unparsable
// input falls back to the raw string.
func FormatDate(raw string) DateLabel {
	t, ok := ParseDate(raw)
	if !ok {
		return DateLabel{Text: raw}
	}
	return DateLabel{Text: t.Format(labelLayout), Parsed: true, Time: t}
}
