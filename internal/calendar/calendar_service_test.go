package calendar_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"leavesync/internal/calendar"
	calendarerrors "leavesync/internal/calendar/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeWorkweekSource struct {
	workingDaysFn func(ctx context.Context, companyID string) ([]int, error)
}

func (f *fakeWorkweekSource) WorkingDays(ctx context.Context, companyID string) ([]int, error) {
	if f.workingDaysFn != nil {
		return f.workingDaysFn(ctx, companyID)
	}
	return []int{1, 2, 3, 4, 5}, nil
}

type fakeHolidaySource struct {
	calendarWindowFn func(ctx context.Context, companyID string, start, end time.Time) ([]calendar.HolidayDate, error)
}

func (f *fakeHolidaySource) CalendarWindow(ctx context.Context, companyID string, start, end time.Time) ([]calendar.HolidayDate, error) {
	if f.calendarWindowFn != nil {
		return f.calendarWindowFn(ctx, companyID, start, end)
	}
	return nil, nil
}

type fakeLeaveSource struct {
	intervalsFn func(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]calendar.LeaveInterval, error)
}

func (f *fakeLeaveSource) Intervals(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]calendar.LeaveInterval, error) {
	if f.intervalsFn != nil {
		return f.intervalsFn(ctx, companyID, employeeID, start, end)
	}
	return nil, nil
}

type fakeBalanceSource struct {
	totalAvailableFn func(ctx context.Context, companyID, employeeID string) (decimal.Decimal, error)
}

func (f *fakeBalanceSource) TotalAvailable(ctx context.Context, companyID, employeeID string) (decimal.Decimal, error) {
	if f.totalAvailableFn != nil {
		return f.totalAvailableFn(ctx, companyID, employeeID)
	}
	return decimal.NewFromInt(12), nil
}

type fakeEnhancer struct {
	rankFn func(ctx context.Context, snap calendar.SuggestionContext) ([]calendar.Suggestion, error)
}

func (f *fakeEnhancer) RankSuggestions(ctx context.Context, snap calendar.SuggestionContext) ([]calendar.Suggestion, error) {
	if f.rankFn != nil {
		return f.rankFn(ctx, snap)
	}
	return nil, nil
}

type calendarServiceDeps struct {
	workweeks *fakeWorkweekSource
	holidays  *fakeHolidaySource
	leaves    *fakeLeaveSource
	balances  *fakeBalanceSource
	enhancer  *fakeEnhancer
}

func setupCalendarService(t *testing.T, withEnhancer bool) (calendar.Service, *calendarServiceDeps) {
	t.Helper()

	deps := &calendarServiceDeps{
		workweeks: &fakeWorkweekSource{},
		holidays:  &fakeHolidaySource{},
		leaves:    &fakeLeaveSource{},
		balances:  &fakeBalanceSource{},
		enhancer:  &fakeEnhancer{},
	}

	var enhancer calendar.Enhancer
	if withEnhancer {
		enhancer = deps.enhancer
	}

	svc := calendar.NewService(
		deps.workweeks,
		deps.holidays,
		deps.leaves,
		deps.balances,
		enhancer,
		nil,
		calendar.ServiceConfig{LookaheadDays: 90},
	)
	return svc, deps
}

func TestCalendarService_Month(t *testing.T) {
	ctx := context.Background()

	t.Run("success full month classification", func(t *testing.T) {
		svc, deps := setupCalendarService(t, false)

		deps.holidays.calendarWindowFn = func(ctx context.Context, companyID string, start, end time.Time) ([]calendar.HolidayDate, error) {
			assert.Equal(t, date(2026, 3, 1), start)
			assert.Equal(t, date(2026, 3, 31), end)
			return []calendar.HolidayDate{{Date: date(2026, 3, 5), Name: "Holiday"}}, nil
		}

		days, err := svc.Month(ctx, "company-1", "employee-1", 2026, 3)

		assert.NoError(t, err)
		assert.Len(t, days, 31)
		assert.Equal(t, "2026-03-05", days[4].Date)
		assert.Equal(t, "holiday", days[4].Type)
		// Fri Mar 6 bridges the Thursday holiday and the weekend.
		assert.Equal(t, "smart_leave", days[5].Type)
	})

	t.Run("negative invalid month", func(t *testing.T) {
		svc, _ := setupCalendarService(t, false)

		_, err := svc.Month(ctx, "company-1", "employee-1", 2026, 13)
		assert.ErrorIs(t, err, calendarerrors.ErrInvalidMonth)
	})

	t.Run("negative invalid year", func(t *testing.T) {
		svc, _ := setupCalendarService(t, false)

		_, err := svc.Month(ctx, "company-1", "employee-1", 1800, 3)
		assert.ErrorIs(t, err, calendarerrors.ErrInvalidYear)
	})

	t.Run("negative source error propagates", func(t *testing.T) {
		svc, deps := setupCalendarService(t, false)

		deps.workweeks.workingDaysFn = func(ctx context.Context, companyID string) ([]int, error) {
			return nil, errors.New("db down")
		}

		_, err := svc.Month(ctx, "company-1", "employee-1", 2026, 3)
		assert.Error(t, err)
	})
}

func TestCalendarService_Suggestions(t *testing.T) {
	ctx := context.Background()
	today := date(2026, 2, 28)

	t.Run("deterministic without enhancer", func(t *testing.T) {
		svc, deps := setupCalendarService(t, false)

		deps.holidays.calendarWindowFn = func(ctx context.Context, companyID string, start, end time.Time) ([]calendar.HolidayDate, error) {
			// Window starts tomorrow and spans the lookahead.
			assert.Equal(t, date(2026, 3, 1), start)
			assert.Equal(t, date(2026, 5, 29), end)
			return []calendar.HolidayDate{{Date: date(2026, 3, 5), Name: "Holiday"}}, nil
		}

		out, err := svc.Suggestions(ctx, "company-1", "employee-1", today)

		assert.NoError(t, err)
		if assert.Len(t, out, 4) {
			// Mon-Wed bridge into the Thursday holiday, then the Friday
			// after it.
			assert.Equal(t, "02 Mar 2026", out[0].Label)
			assert.Equal(t, "04 Mar 2026", out[2].Label)
			assert.Equal(t, "06 Mar 2026", out[3].Label)
		}
	})

	t.Run("enhancer failure falls back to deterministic", func(t *testing.T) {
		svc, deps := setupCalendarService(t, true)

		deps.enhancer.rankFn = func(ctx context.Context, snap calendar.SuggestionContext) ([]calendar.Suggestion, error) {
			return nil, errors.New("model unavailable")
		}

		out, err := svc.Suggestions(ctx, "company-1", "employee-1", today)

		assert.NoError(t, err)
		assert.NotEmpty(t, out)
	})

	t.Run("enhancer empty result falls back", func(t *testing.T) {
		svc, deps := setupCalendarService(t, true)

		deps.enhancer.rankFn = func(ctx context.Context, snap calendar.SuggestionContext) ([]calendar.Suggestion, error) {
			return nil, nil
		}

		out, err := svc.Suggestions(ctx, "company-1", "employee-1", today)

		assert.NoError(t, err)
		assert.NotEmpty(t, out)
	})

	t.Run("enhancer ranking wins when present", func(t *testing.T) {
		svc, deps := setupCalendarService(t, true)

		ranked := []calendar.Suggestion{{Label: "March: 2026-03-06", Explanation: "long weekend"}}
		deps.enhancer.rankFn = func(ctx context.Context, snap calendar.SuggestionContext) ([]calendar.Suggestion, error) {
			assert.Equal(t, "company-1", snap.Company)
			assert.Equal(t, "12", snap.BalanceDays)
			return ranked, nil
		}

		out, err := svc.Suggestions(ctx, "company-1", "employee-1", today)

		assert.NoError(t, err)
		assert.Equal(t, ranked, out)
	})

	t.Run("negative balance error degrades to deterministic", func(t *testing.T) {
		svc, deps := setupCalendarService(t, true)

		deps.balances.totalAvailableFn = func(ctx context.Context, companyID, employeeID string) (decimal.Decimal, error) {
			return decimal.Zero, errors.New("ledger unavailable")
		}

		out, err := svc.Suggestions(ctx, "company-1", "employee-1", today)

		assert.NoError(t, err)
		assert.NotEmpty(t, out)
	})
}
