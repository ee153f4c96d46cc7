package ledger

import (
	"time"

	"github.com/Rio-Chico-Devs/RCS-App-sub000/internal/shared"
)

// Period names a reporting window relative to a logical now.
type Period string

const (
	PeriodCurrentMonth  Period = "current-month"
	PeriodPreviousMonth Period = "previous-month"
	PeriodCurrentYear   Period = "current-year"
	PeriodPreviousYear  Period = "previous-year"
	PeriodLast90Days    Period = "last-90-days"
	PeriodLast180Days   Period = "last-180-days"
)

// Window is a half-open time interval [From, To).
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether ts falls inside the window.
func (w Window) Contains(ts time.Time) bool {
	return !ts.Before(w.From) && ts.Before(w.To)
}

// PeriodWindow resolves a named period against now. Calendar periods snap to
// month and year boundaries in now's location; rolling periods count back
// whole days from now itself.
func PeriodWindow(p Period, now time.Time) (Window, error) {
	switch p {
	case PeriodCurrentMonth:
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Window{From: from, To: from.AddDate(0, 1, 0)}, nil
	case PeriodPreviousMonth:
		to := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Window{From: to.AddDate(0, -1, 0), To: to}, nil
	case PeriodCurrentYear:
		from := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return Window{From: from, To: from.AddDate(1, 0, 0)}, nil
	case PeriodPreviousYear:
		to := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return Window{From: to.AddDate(-1, 0, 0), To: to}, nil
	case PeriodLast90Days:
		return Window{From: now.AddDate(0, 0, -90), To: now}, nil
	case PeriodLast180Days:
		return Window{From: now.AddDate(0, 0, -180), To: now}, nil
	}
	return Window{}, shared.Validationf("ledger: unknown period %q", p)
}
