package handlers

import "time"

// ISO date string in loc, e.g. "2006-01-02"
func fmtISODate(d time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return d.In(loc).Format("2006-01-02")
}
