package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriod_Range(t *testing.T) {
	now := time.Date(2024, 5, 17, 15, 30, 0, 0, time.UTC)
	endOfDay := time.Date(2024, 5, 17, 23, 59, 59, 999999999, time.UTC)

	tests := []struct {
		name      string
		period    Period
		wantStart time.Time
	}{
		{name: "ThisYear", period: PeriodThisYear, wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "LastTwelveMonths", period: PeriodLastTwelveMonths, wantStart: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)},
		{name: "ThisMonth", period: PeriodThisMonth, wantStart: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.period.Range(now)

			require.NotNil(t, start)
			require.NotNil(t, end)
			assert.Equal(t, tt.wantStart, *start)
			assert.Equal(t, endOfDay, *end)
		})
	}

	t.Run("All", func(t *testing.T) {
		start, end := PeriodAll.Range(now)

		assert.Nil(t, start)
		assert.Nil(t, end)
	})
}

func TestPeriod_Next(t *testing.T) {
	assert.Equal(t, PeriodThisYear, PeriodAll.Next())
	assert.Equal(t, PeriodAll, PeriodThisMonth.Next())
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 1, pageCount(0, 20))
	assert.Equal(t, 1, pageCount(20, 20))
	assert.Equal(t, 3, pageCount(41, 20))
}
