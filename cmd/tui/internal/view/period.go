package view

import "time"

// Period is the window the dashboard's cash outflow covers.
type Period int

const (
	PeriodAll Period = iota
	PeriodThisYear
	PeriodLastTwelveMonths
	PeriodThisMonth
	periodCount
)

func (p Period) String() string {
	switch p {
	case PeriodAll:
		return "All Time"
	case PeriodThisYear:
		return "This Year"
	case PeriodLastTwelveMonths:
		return "Last 12 Months"
	case PeriodThisMonth:
		return "This Month"
	}

	return "Unknown"
}

func (p Period) Next() Period {
	return (p + 1) % periodCount
}

// Range returns the inclusive UTC bounds of p relative to now; both are nil
// for PeriodAll.
func (p Period) Range(now time.Time) (start, end *time.Time) {
	now = now.UTC()

	var s time.Time

	switch p {
	case PeriodThisYear:
		s = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	case PeriodLastTwelveMonths:
		s = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)
	case PeriodThisMonth:
		s = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return nil, nil
	}

	e := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, 1).Add(-time.Nanosecond)

	return &s, &e
}
