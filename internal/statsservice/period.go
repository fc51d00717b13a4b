package statsservice

import (
	"time"

	"github.com/go-petr/bank-admin/internal/domain"
)

// Period returns the first and the last instant of the calendar month in loc.
//
// The last instant is 23:59:59.999 of the day before the first day of the next month.
func Period(year, month int, loc *time.Location) (time.Time, time.Time, error) {
	if month < 1 || month > 12 || year < 1 || year > 9999 {
		return time.Time{}, time.Time{}, domain.ErrInvalidPeriod
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := time.Date(year, time.Month(month)+1, 0, 23, 59, 59, 999_000_000, loc)

	return start, end, nil
}

// DaysIn returns the number of days of the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
