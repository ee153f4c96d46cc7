package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPeriodWindows(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	cases := map[Period]Window{
		PeriodCurrentMonth: {
			From: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		PeriodPreviousMonth: {
			From: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		PeriodCurrentYear: {
			From: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		PeriodPreviousYear: {
			From: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		PeriodLast90Days: {
			From: now.AddDate(0, 0, -90),
			To:   now,
		},
		PeriodLast180Days: {
			From: now.AddDate(0, 0, -180),
			To:   now,
		},
	}
	for period, want := range cases {
		got, err := PeriodWindow(period, now)
		require.NoError(t, err, period)
		require.True(t, got.From.Equal(want.From), "%s from: %s", period, got.From)
		require.True(t, got.To.Equal(want.To), "%s to: %s", period, got.To)
	}
}

func TestPeriodWindowAcrossYearBoundary(t *testing.T) {
	now := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	got, err := PeriodWindow(PeriodPreviousMonth, now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), got.From)
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got.To)
}

func TestPeriodWindowRejectsUnknown(t *testing.T) {
	_, err := PeriodWindow(Period("fortnight"), time.Now())
	require.Error(t, err)
}

func TestWindowContains(t *testing.T) {
	w := Window{
		From: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	require.True(t, w.Contains(w.From))
	require.True(t, w.Contains(time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)))
	require.False(t, w.Contains(w.To))
	require.False(t, w.Contains(w.From.Add(-time.Second)))
}
