package util

import "time"

const ISO8601Format = "2006-01-02T15:04:05Z"

// TimeToISO8601Str formats t in UTC.
func TimeToISO8601Str(t time.Time) string {
	return t.UTC().Format(ISO8601Format)
}
