package app

import (
	"time"

	"github.com/cockroachdb/errors"
)

// Upstream timestamps are wall-clock strings in the venue's timezone.
const (
	upstreamTimeLayout = "2006-01-02 15:04:05"
	upstreamTimezone   = "Europe/Berlin"
)

var berlin *time.Location

func init() {
	loc, err := time.LoadLocation(upstreamTimezone)
	if err != nil {
		panic("load timezone " + upstreamTimezone + ": " + err.Error())
	}
	berlin = loc
}

// NormalizeTime converts an upstream wall-clock string into a timezone-aware
// instant. Callers treat failure as per-item: skip the slot, keep the run.
func NormalizeTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(upstreamTimeLayout, s, berlin)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse upstream time %q", s)
	}
	return t, nil
}

// CanonicalStart is the serialized form that feeds the identity digest.
// RFC 3339 with the local offset, matching what gets persisted.
func CanonicalStart(t time.Time) string {
	return t.Format(time.RFC3339)
}
