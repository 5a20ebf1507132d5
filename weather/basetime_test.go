package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 8, 29, hour, minute, 0, 0, time.Local)
}

func TestObservationBase(t *testing.T) {
	date, tm := observationBase(at(14, 45))
	assert.Equal(t, "20260829", date)
	assert.Equal(t, "1400", tm)

	// Before minute 40 the current hour's data is not out yet.
	date, tm = observationBase(at(14, 39))
	assert.Equal(t, "20260829", date)
	assert.Equal(t, "1300", tm)

	// Midnight rollover.
	date, tm = observationBase(at(0, 10))
	assert.Equal(t, "20260828", date)
	assert.Equal(t, "2300", tm)
}

func TestNowcastForecastBase(t *testing.T) {
	date, tm := nowcastForecastBase(at(9, 50))
	assert.Equal(t, "20260829", date)
	assert.Equal(t, "0930", tm)

	date, tm = nowcastForecastBase(at(9, 44))
	assert.Equal(t, "20260829", date)
	assert.Equal(t, "0830", tm)

	date, tm = nowcastForecastBase(at(0, 20))
	assert.Equal(t, "20260828", date)
	assert.Equal(t, "2330", tm)
}

func TestShortTermBase(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		wantDate string
		wantTime string
	}{
		{"mid-afternoon uses 1400", at(16, 0), "20260829", "1400"},
		{"just after issue but within delay", at(14, 5), "20260829", "1100"},
		{"ten minutes after issue", at(14, 10), "20260829", "1400"},
		{"late evening uses 2300", at(23, 30), "20260829", "2300"},
		{"early morning falls back to yesterday", at(1, 30), "20260828", "2300"},
		{"exact first issue before delay", at(2, 5), "20260828", "2300"},
		{"first issue after delay", at(2, 15), "20260829", "0200"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			date, tm := shortTermBase(tc.now)
			assert.Equal(t, tc.wantDate, date)
			assert.Equal(t, tc.wantTime, tm)
		})
	}
}
