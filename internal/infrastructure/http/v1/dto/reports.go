package dto

import (
	"time"

	"bengkel/internal/core/apperror"
)

// DateRangeRequest bounds a report query. Dates are inclusive calendar
// days in the shop's local time.
type DateRangeRequest struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

// Range parses the bounds, returning the half-open interval
// [from 00:00, day after to 00:00).
func (r DateRangeRequest) Range(loc *time.Location) (time.Time, time.Time, error) {
	from, err := time.ParseInLocation("2006-01-02", r.From, loc)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.NewValidation("invalid from date").
			WithDetail("from", r.From)
	}
	to, err := time.ParseInLocation("2006-01-02", r.To, loc)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.NewValidation("invalid to date").
			WithDetail("to", r.To)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, apperror.NewValidation("to date precedes from date")
	}
	return from, to.AddDate(0, 0, 1), nil
}
