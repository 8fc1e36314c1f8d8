package gelbooru

import (
	"strconv"
	"time"
)

// CreatedAtLayout is the layout of the created_at field, e.g.
// "Sun Jun 30 00:39:42 -0500 2024".
const CreatedAtLayout = "Mon Jan 02 15:04:05 -0700 2006"

type ParseTimeError struct {
	s string
}

func (e *ParseTimeError) Error() string {
	return "gelbooru: invalid time: " + e.s
}

// ParseTime accepts either a created_at style timestamp or unix seconds, the
// two forms the provider uses.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(CreatedAtLayout, s)
	if err == nil {
		return t, nil
	}

	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, &ParseTimeError{s}
	}
	return time.Unix(secs, 0), nil
}

func (i Image) CreatedTime() (time.Time, error) {
	return ParseTime(i.CreatedAt)
}

func (i Image) ChangedTime() (time.Time, error) {
	return ParseTime(i.Change)
}
