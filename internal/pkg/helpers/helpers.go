package helpers

import (
	"strconv"
	"time"

	"github.com/ybamri/recycleapp/internal/pkg/apperrors"
)

// ParseID parses a numeric path parameter.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequestError("Invalid ID format")
	}
	return id, nil
}

// dateLayouts are the accepted formats for deadline fields, most specific
// first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses a date string in one of the accepted layouts.
func ParseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.NewBadRequestError("Invalid date format, expected ISO 8601")
}
