package calendar_test

import (
	"testing"
	"time"

	"leavesync/internal/calendar"
	calendarerrors "leavesync/internal/calendar/errors"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var weekdays = []int{1, 2, 3, 4, 5}

func TestClassify_Validation(t *testing.T) {
	window := calendar.Window{Start: date(2026, 3, 2), End: date(2026, 3, 6)}

	t.Run("negative end before start", func(t *testing.T) {
		_, err := calendar.Classify(
			calendar.Window{Start: date(2026, 3, 6), End: date(2026, 3, 2)},
			weekdays, nil, nil,
		)
		assert.ErrorIs(t, err, calendarerrors.ErrInvalidWindow)
	})

	t.Run("negative empty working days", func(t *testing.T) {
		_, err := calendar.Classify(window, nil, nil, nil)
		assert.ErrorIs(t, err, calendarerrors.ErrEmptyWorkingDays)
	})

	t.Run("negative weekday out of range", func(t *testing.T) {
		_, err := calendar.Classify(window, []int{1, 8}, nil, nil)
		assert.ErrorIs(t, err, calendarerrors.ErrInvalidWeekday)
	})

	t.Run("single day window is valid", func(t *testing.T) {
		days, err := calendar.Classify(
			calendar.Window{Start: date(2026, 3, 2), End: date(2026, 3, 2)},
			weekdays, nil, nil,
		)
		assert.NoError(t, err)
		assert.Len(t, days, 1)
	})
}

func TestClassify_CoverageAndOrder(t *testing.T) {
	days, err := calendar.Classify(
		calendar.Window{Start: date(2026, 3, 1), End: date(2026, 3, 31)},
		weekdays, nil, nil,
	)
	assert.NoError(t, err)
	assert.Len(t, days, 31)

	for i, d := range days {
		assert.Equal(t, date(2026, 3, 1+i), d.Date)
	}
}

func TestClassify_Precedence(t *testing.T) {
	// Mon Mar 2 2026 is simultaneously a booked leave day and a holiday.
	holidays := []calendar.HolidayDate{
		{Date: date(2026, 3, 2), Name: "Founders Day"},
	}
	leaves := []calendar.LeaveInterval{
		{Start: date(2026, 3, 2), End: date(2026, 3, 2), Status: "APPROVED", TypeName: "Annual"},
	}

	days, err := calendar.Classify(
		calendar.Window{Start: date(2026, 3, 2), End: date(2026, 3, 2)},
		weekdays, holidays, leaves,
	)
	assert.NoError(t, err)
	assert.Equal(t, calendar.DayLeave, days[0].Type)
	assert.Contains(t, days[0].Tooltip, "Annual")
}

func TestClassify_WeekendAndWorkday(t *testing.T) {
	// Sat Mar 7 and Sun Mar 8 2026.
	days, err := calendar.Classify(
		calendar.Window{Start: date(2026, 3, 6), End: date(2026, 3, 9)},
		weekdays, nil, nil,
	)
	assert.NoError(t, err)
	assert.Equal(t, calendar.DayWorkday, days[0].Type)
	assert.Equal(t, calendar.DayWeekend, days[1].Type)
	assert.Equal(t, calendar.DayWeekend, days[2].Type)
	assert.Equal(t, calendar.DayWorkday, days[3].Type)
}

func TestClassify_CustomWorkingDays(t *testing.T) {
	// Sunday through Thursday work week: Fri/Sat off.
	days, err := calendar.Classify(
		calendar.Window{Start: date(2026, 3, 5), End: date(2026, 3, 8)},
		[]int{7, 1, 2, 3, 4}, nil, nil,
	)
	assert.NoError(t, err)
	assert.Equal(t, calendar.DayWorkday, days[0].Type) // Thu
	assert.Equal(t, calendar.DayWeekend, days[1].Type) // Fri
	assert.Equal(t, calendar.DayWeekend, days[2].Type) // Sat
	assert.Equal(t, calendar.DayWorkday, days[3].Type) // Sun
}

func TestClassify_RejectedAndCancelledDoNotOccupy(t *testing.T) {
	leaves := []calendar.LeaveInterval{
		{Start: date(2026, 3, 2), End: date(2026, 3, 2), Status: "REJECTED"},
		{Start: date(2026, 3, 3), End: date(2026, 3, 3), Status: "CANCELLED"},
		{Start: date(2026, 3, 4), End: date(2026, 3, 4), Status: "PENDING"},
	}

	days, err := calendar.Classify(
		calendar.Window{Start: date(2026, 3, 2), End: date(2026, 3, 4)},
		weekdays, nil, leaves,
	)
	assert.NoError(t, err)
	assert.Equal(t, calendar.DayWorkday, days[0].Type)
	assert.Equal(t, calendar.DayWorkday, days[1].Type)
	assert.Equal(t, calendar.DayLeave, days[2].Type)
}

func TestClassify_RecurringHolidayResolution(t *testing.T) {
	t.Run("stored 2024 matches 2026 window", func(t *testing.T) {
		holidays := []calendar.HolidayDate{
			{Date: date(2024, 12, 25), Name: "Christmas", Recurring: true},
		}
		days, err := calendar.Classify(
			calendar.Window{Start: date(2026, 12, 25), End: date(2026, 12, 25)},
			weekdays, holidays, nil,
		)
		assert.NoError(t, err)
		assert.Equal(t, calendar.DayHoliday, days[0].Type)
		assert.Equal(t, "Christmas", days[0].Tooltip)
	})

	t.Run("non-recurring does not follow the year", func(t *testing.T) {
		holidays := []calendar.HolidayDate{
			{Date: date(2024, 12, 25), Name: "One-off"},
		}
		days, err := calendar.Classify(
			calendar.Window{Start: date(2026, 12, 25), End: date(2026, 12, 25)},
			weekdays, holidays, nil,
		)
		assert.NoError(t, err)
		assert.Equal(t, calendar.DayWorkday, days[0].Type)
	})

	t.Run("feb 29 clamps to feb 28 in non-leap years", func(t *testing.T) {
		holidays := []calendar.HolidayDate{
			{Date: date(2024, 2, 29), Name: "Leap Festival", Recurring: true},
		}
		days, err := calendar.Classify(
			calendar.Window{Start: date(2026, 2, 27), End: date(2026, 2, 28)},
			weekdays, holidays, nil,
		)
		assert.NoError(t, err)
		assert.Equal(t, calendar.DayWorkday, days[0].Type)
		assert.Equal(t, calendar.DayHoliday, days[1].Type)
	})

	t.Run("feb 29 matches in leap years", func(t *testing.T) {
		holidays := []calendar.HolidayDate{
			{Date: date(2024, 2, 29), Name: "Leap Festival", Recurring: true},
		}
		days, err := calendar.Classify(
			calendar.Window{Start: date(2028, 2, 29), End: date(2028, 2, 29)},
			weekdays, holidays, nil,
		)
		assert.NoError(t, err)
		assert.Equal(t, calendar.DayHoliday, days[0].Type)
	})
}

func TestClassify_OptionalHoliday(t *testing.T) {
	holidays := []calendar.HolidayDate{
		{Date: date(2026, 3, 2), Name: "Regional Day", Optional: true},
	}
	days, err := calendar.Classify(
		calendar.Window{Start: date(2026, 3, 2), End: date(2026, 3, 2)},
		weekdays, holidays, nil,
	)
	assert.NoError(t, err)
	assert.Equal(t, calendar.DayHoliday, days[0].Type)
	assert.Contains(t, days[0].Tooltip, "optional")
}

func TestClassify_Deterministic(t *testing.T) {
	window := calendar.Window{Start: date(2025, 12, 29), End: date(2026, 1, 9)}
	holidays := []calendar.HolidayDate{{Date: date(2026, 1, 1), Name: "New Year"}}
	leaves := []calendar.LeaveInterval{
		{Start: date(2026, 1, 6), End: date(2026, 1, 7), Status: "PENDING"},
	}

	first, err := calendar.Classify(window, weekdays, holidays, leaves)
	assert.NoError(t, err)
	second, err := calendar.Classify(window, weekdays, holidays, leaves)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}
