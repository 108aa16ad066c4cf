package repository

import (
	"fmt"
	"time"
)

// timeFormats are the layouts stored values may carry: RFC3339 from the
// repositories themselves, the SQLite CURRENT_TIMESTAMP form from column
// defaults, and bare dates.
var timeFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses a stored date string.
func ParseTime(str string) (time.Time, error) {
	var err error
	for _, format := range timeFormats {
		var parsed time.Time
		parsed, err = time.Parse(format, str)
		if err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
}
