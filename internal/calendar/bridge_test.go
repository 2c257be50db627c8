package calendar_test

import (
	"testing"

	"leavesync/internal/calendar"

	"github.com/stretchr/testify/assert"
)

func classified(t *testing.T, window calendar.Window, holidays []calendar.HolidayDate) []calendar.Day {
	t.Helper()
	days, err := calendar.Classify(window, weekdays, holidays, nil)
	assert.NoError(t, err)
	return days
}

// Mon Dec 29 2025 through Fri Jan 9 2026 with New Year on Thursday Jan 1.
// Only the Friday Jan 2 single-day segment qualifies: its backward buffer is
// the holiday itself and its forward buffer is the weekend.
func TestDetectBridges_NewYearScenario(t *testing.T) {
	window := calendar.Window{Start: date(2025, 12, 29), End: date(2026, 1, 9)}
	holidays := []calendar.HolidayDate{{Date: date(2026, 1, 1), Name: "New Year"}}

	out := calendar.DetectBridges(classified(t, window, holidays))

	byDate := map[string]calendar.DayType{}
	for _, d := range out {
		byDate[d.Date.Format("2006-01-02")] = d.Type
	}

	assert.Equal(t, calendar.DaySmartLeave, byDate["2026-01-02"])

	// Dec 29-31 touches the left window edge, Jan 5-9 the right one.
	assert.Equal(t, calendar.DayWorkday, byDate["2025-12-29"])
	assert.Equal(t, calendar.DayWorkday, byDate["2025-12-30"])
	assert.Equal(t, calendar.DayWorkday, byDate["2025-12-31"])
	assert.Equal(t, calendar.DayWorkday, byDate["2026-01-05"])
	assert.Equal(t, calendar.DayWorkday, byDate["2026-01-09"])

	assert.Equal(t, calendar.DayHoliday, byDate["2026-01-01"])
	assert.Equal(t, calendar.DayWeekend, byDate["2026-01-03"])
}

func TestDetectBridges_WeekendOnlyNeverQualifies(t *testing.T) {
	// Two plain weeks, no holidays: every Mon-Fri run sits between weekends
	// but no buffer contains a holiday.
	window := calendar.Window{Start: date(2026, 3, 2), End: date(2026, 3, 20)}

	out := calendar.DetectBridges(classified(t, window, nil))

	for _, d := range out {
		assert.NotEqual(t, calendar.DaySmartLeave, d.Type, d.Date.Format("2006-01-02"))
	}
}

func TestDetectBridges_EitherBufferHolidaySuffices(t *testing.T) {
	t.Run("holiday in backward buffer", func(t *testing.T) {
		// Thu Mar 5 2026 is the holiday; Fri Mar 6 sits between it and the
		// Mar 7-8 weekend.
		window := calendar.Window{Start: date(2026, 3, 2), End: date(2026, 3, 13)}
		holidays := []calendar.HolidayDate{{Date: date(2026, 3, 5), Name: "Holiday"}}

		out := calendar.DetectBridges(classified(t, window, holidays))

		byDate := map[string]calendar.DayType{}
		for _, d := range out {
			byDate[d.Date.Format("2006-01-02")] = d.Type
		}
		assert.Equal(t, calendar.DaySmartLeave, byDate["2026-03-06"])
	})

	t.Run("holiday in forward buffer", func(t *testing.T) {
		// Tue Mar 10 2026 holiday: Mon Mar 9's backward buffer is the
		// weekend (no holiday), forward buffer is the holiday.
		window := calendar.Window{Start: date(2026, 3, 2), End: date(2026, 3, 20)}
		holidays := []calendar.HolidayDate{{Date: date(2026, 3, 10), Name: "Holiday"}}

		out := calendar.DetectBridges(classified(t, window, holidays))

		byDate := map[string]calendar.DayType{}
		for _, d := range out {
			byDate[d.Date.Format("2006-01-02")] = d.Type
		}
		assert.Equal(t, calendar.DaySmartLeave, byDate["2026-03-09"])
	})
}

func TestDetectBridges_MultiDaySegmentPromotedWhole(t *testing.T) {
	// Thu Mar 5 2026 holiday, Fri Mar 6 + weekend... a two-day run: holiday
	// Wed Mar 4, then Thu+Fri workdays, then weekend.
	window := calendar.Window{Start: date(2026, 3, 2), End: date(2026, 3, 13)}
	holidays := []calendar.HolidayDate{{Date: date(2026, 3, 4), Name: "Holiday"}}

	out := calendar.DetectBridges(classified(t, window, holidays))

	byDate := map[string]calendar.DayType{}
	for _, d := range out {
		byDate[d.Date.Format("2006-01-02")] = d.Type
	}
	assert.Equal(t, calendar.DaySmartLeave, byDate["2026-03-05"])
	assert.Equal(t, calendar.DaySmartLeave, byDate["2026-03-06"])
	// The Mon-Tue run before the holiday touches the left window edge.
	assert.Equal(t, calendar.DayWorkday, byDate["2026-03-02"])
	assert.Equal(t, calendar.DayWorkday, byDate["2026-03-03"])
}

func TestDetectBridges_InputUnchanged(t *testing.T) {
	window := calendar.Window{Start: date(2025, 12, 29), End: date(2026, 1, 9)}
	holidays := []calendar.HolidayDate{{Date: date(2026, 1, 1), Name: "New Year"}}

	in := classified(t, window, holidays)
	snapshot := make([]calendar.Day, len(in))
	copy(snapshot, in)

	_ = calendar.DetectBridges(in)

	assert.Equal(t, snapshot, in)
}

func TestDetectBridges_LeaveDayBreaksBuffer(t *testing.T) {
	// A leave day is neither workday nor buffer: the scan stops on it, so a
	// segment bordered by one directly has no buffer on that side.
	days := []calendar.Day{
		{Date: date(2026, 3, 6), Type: calendar.DayWorkday},
		{Date: date(2026, 3, 7), Type: calendar.DayHoliday},
		{Date: date(2026, 3, 8), Type: calendar.DayLeave},
		{Date: date(2026, 3, 9), Type: calendar.DayWorkday},
		{Date: date(2026, 3, 10), Type: calendar.DayWeekend},
		{Date: date(2026, 3, 11), Type: calendar.DayWorkday},
	}

	out := calendar.DetectBridges(days)
	assert.Equal(t, calendar.DayWorkday, out[3].Type)
}

func sameTypes(days []calendar.Day) []calendar.DayType {
	types := make([]calendar.DayType, len(days))
	for i, d := range days {
		types[i] = d.Type
	}
	return types
}

func TestDetectBridges_Deterministic(t *testing.T) {
	window := calendar.Window{Start: date(2025, 12, 22), End: date(2026, 1, 11)}
	holidays := []calendar.HolidayDate{
		{Date: date(2025, 12, 25), Name: "Christmas"},
		{Date: date(2026, 1, 1), Name: "New Year"},
	}

	first := calendar.DetectBridges(classified(t, window, holidays))
	second := calendar.DetectBridges(classified(t, window, holidays))
	assert.Equal(t, sameTypes(first), sameTypes(second))
}
