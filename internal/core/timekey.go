package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// keyLayout truncates to the clock hour, so every instant within the same hour
// of the same day shares one bucket.
const keyLayout = "03:00 PM, Monday, January 02, 2006"

// DisplayTime renders a UTC instant in the host's local time, in the form
// shown to the user ("04:00 PM, Tuesday, March 05, 2024").
func DisplayTime(utc time.Time, offset time.Duration) string {
	return utc.Add(offset).Format(keyLayout)
}

// TimeKey derives the storage key for a UTC instant. Keys are the lowercased
// display form.
func TimeKey(utc time.Time, offset time.Duration) string {
	return strings.ToLower(DisplayTime(utc, offset))
}

// LocalOffset is the host's current UTC offset.
func LocalOffset() time.Duration {
	_, seconds := time.Now().Zone()
	return time.Duration(seconds) * time.Second
}

// ParseTimex parses a normalized time expression from the classifier,
// YYYY-MM-DD optionally followed by THH or THH:MM (minutes discarded), into a
// UTC instant.
func ParseTimex(expr string) (time.Time, error) {
	parts := strings.Split(strings.ReplaceAll(expr, "T", "-"), "-")
	if len(parts) < 3 || len(parts) > 4 {
		return time.Time{}, fmt.Errorf("malformed time expression %q", expr)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed year in %q", expr)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("malformed month in %q", expr)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("malformed day in %q", expr)
	}

	hour := 0
	if len(parts) == 4 {
		hour, err = strconv.Atoi(strings.SplitN(parts[3], ":", 2)[0])
		if err != nil || hour < 0 || hour > 23 {
			return time.Time{}, fmt.Errorf("malformed hour in %q", expr)
		}
	}

	return time.Date(year, time.Month(month), day, hour, 0, 0, 0, time.UTC), nil
}
