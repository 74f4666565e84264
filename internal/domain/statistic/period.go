package statistic

import (
	"fmt"
	"time"

	"github.com/craftloop/backend/pkg/dateutil"
)

type Period struct {
	name  string
	value string
	start time.Time
	end   time.Time
}

func (p Period) Name() string {
	return p.name
}

// Value identifies the concrete bucket, e.g. "week/35/2026".
func (p Period) Value() string {
	return p.value
}

func (p Period) Start() time.Time {
	return p.start
}

func (p Period) End() time.Time {
	return p.end
}

func ToPeriodWithTime(periodString string, current time.Time) (Period, error) {
	switch periodString {
	case "week":
		year, week := current.ISOWeek()
		start := dateutil.StartOfWeek(current)
		return Period{
			name:  "week",
			value: fmt.Sprintf("week/%d/%d", week, year),
			start: start,
			end:   start.AddDate(0, 0, 7),
		}, nil

	case "month":
		start := dateutil.StartOfMonth(current)
		return Period{
			name:  "month",
			value: fmt.Sprintf("month/%d/%d", current.Month(), current.Year()),
			start: start,
			end:   start.AddDate(0, 1, 0),
		}, nil
	}

	return Period{}, fmt.Errorf("invalid period, expected week or month, but got %s", periodString)
}

func ToPeriod(periodString string) (Period, error) {
	return ToPeriodWithTime(periodString, time.Now())
}
