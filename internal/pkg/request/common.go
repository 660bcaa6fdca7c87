package request

import (
	"time"
)

// DateLayout is the calendar date format accepted in paths, queries and bodies.
const DateLayout = "2006-01-02"

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// DateQuery is a common struct for day-scoped endpoints.
// An empty date means "today" as reported by the supplied clock.
type DateQuery struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// Day resolves the requested calendar day as midnight UTC.
func (q *DateQuery) Day(now func() time.Time) (time.Time, error) {
	if q.Date == "" {
		t := now()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(DateLayout, q.Date)
}
