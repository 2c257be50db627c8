package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	calendarerrors "leavesync/internal/calendar/errors"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CacheKeyPrefix namespaces classified-month cache entries in redis. The
// leave lifecycle consumer deletes entries under it when bookings change.
const CacheKeyPrefix = "cal"

// Data sources the classifier snapshot is assembled from. Implemented by the
// workweek, holiday, leave and balance services.
type (
	WorkweekSource interface {
		WorkingDays(ctx context.Context, companyID string) ([]int, error)
	}
	HolidaySource interface {
		CalendarWindow(ctx context.Context, companyID string, start, end time.Time) ([]HolidayDate, error)
	}
	LeaveSource interface {
		Intervals(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]LeaveInterval, error)
	}
	BalanceSource interface {
		TotalAvailable(ctx context.Context, companyID, employeeID string) (decimal.Decimal, error)
	}
)

// Enhancer is the optional AI layer that may re-rank suggestions. It is best
// effort: any error from it is logged and swallowed, the deterministic output
// stands.
type Enhancer interface {
	RankSuggestions(ctx context.Context, snap SuggestionContext) ([]Suggestion, error)
}

type Service interface {
	Month(ctx context.Context, companyID, employeeID string, year, month int) ([]DayResponse, error)
	Suggestions(ctx context.Context, companyID, employeeID string, today time.Time) ([]Suggestion, error)
}

type service struct {
	workweeks WorkweekSource
	holidays  HolidaySource
	leaves    LeaveSource
	balances  BalanceSource
	enhancer  Enhancer
	rdb       *redis.Client

	lookaheadDays int
	cacheTTL      time.Duration

	group  singleflight.Group
	logger *zap.Logger
}

type ServiceConfig struct {
	LookaheadDays int
	CacheTTL      time.Duration
}

// NewService wires the calendar read model. enhancer and rdb may be nil: the
// service then runs purely deterministic and uncached.
func NewService(
	workweeks WorkweekSource,
	holidays HolidaySource,
	leaves LeaveSource,
	balances BalanceSource,
	enhancer Enhancer,
	rdb *redis.Client,
	cfg ServiceConfig,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("calendar.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calendar.service")
	}
	if cfg.LookaheadDays <= 0 {
		cfg.LookaheadDays = 90
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	return &service{
		workweeks:     workweeks,
		holidays:      holidays,
		leaves:        leaves,
		balances:      balances,
		enhancer:      enhancer,
		rdb:           rdb,
		lookaheadDays: cfg.LookaheadDays,
		cacheTTL:      cfg.CacheTTL,
		logger:        l,
	}
}

func (s *service) Month(ctx context.Context, companyID, employeeID string, year, month int) ([]DayResponse, error) {
	if month < 1 || month > 12 {
		return nil, calendarerrors.ErrInvalidMonth
	}
	if year < 1970 || year > 9999 {
		return nil, calendarerrors.ErrInvalidYear
	}

	cacheKey := fmt.Sprintf("%s:%s:%s:%04d-%02d", CacheKeyPrefix, companyID, employeeID, year, month)

	if cached, ok := s.cacheGet(ctx, cacheKey); ok {
		return cached, nil
	}

	// Collapse concurrent identical requests (dashboard fan-out) into one
	// classification run.
	v, err, _ := s.group.Do(cacheKey, func() (any, error) {
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)

		days, err := s.classifyWindow(ctx, companyID, employeeID, start, end)
		if err != nil {
			return nil, err
		}

		resp := mapToDayResponses(days)
		s.cacheSet(ctx, cacheKey, resp)
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]DayResponse), nil
}

func (s *service) Suggestions(ctx context.Context, companyID, employeeID string, today time.Time) ([]Suggestion, error) {
	start := truncateDay(today).AddDate(0, 0, 1)
	end := start.AddDate(0, 0, s.lookaheadDays-1)

	workingDays, err := s.workweeks.WorkingDays(ctx, companyID)
	if err != nil {
		return nil, err
	}
	holidays, err := s.holidays.CalendarWindow(ctx, companyID, start, end)
	if err != nil {
		return nil, err
	}
	leaves, err := s.leaves.Intervals(ctx, companyID, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	days, err := Classify(Window{Start: start, End: end}, workingDays, holidays, leaves)
	if err != nil {
		return nil, err
	}
	days = DetectBridges(days)
	deterministic := BuildSuggestions(days)

	if s.enhancer == nil {
		return deterministic, nil
	}

	ranked, err := s.enhance(ctx, companyID, employeeID, start, end, workingDays, holidays, leaves)
	if err != nil {
		// Soft failure: log and fall back, never surface to the caller.
		s.logger.Warn("suggestion enhancement unavailable, using deterministic output",
			zap.String("company_id", companyID),
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return deterministic, nil
	}
	if len(ranked) == 0 {
		return deterministic, nil
	}
	return ranked, nil
}

func (s *service) enhance(ctx context.Context, companyID, employeeID string, start, end time.Time, workingDays []int, holidays []HolidayDate, leaves []LeaveInterval) ([]Suggestion, error) {
	balance := decimal.Zero
	if s.balances != nil {
		total, err := s.balances.TotalAvailable(ctx, companyID, employeeID)
		if err != nil {
			return nil, err
		}
		balance = total
	}

	snap := newSuggestionContext(companyID, employeeID, start, end, workingDays, holidays, leaves, balance.String())
	return s.enhancer.RankSuggestions(ctx, snap)
}

func (s *service) classifyWindow(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]Day, error) {
	workingDays, err := s.workweeks.WorkingDays(ctx, companyID)
	if err != nil {
		return nil, err
	}
	holidays, err := s.holidays.CalendarWindow(ctx, companyID, start, end)
	if err != nil {
		return nil, err
	}
	leaves, err := s.leaves.Intervals(ctx, companyID, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	days, err := Classify(Window{Start: start, End: end}, workingDays, holidays, leaves)
	if err != nil {
		return nil, err
	}
	return DetectBridges(days), nil
}

func (s *service) cacheGet(ctx context.Context, key string) ([]DayResponse, bool) {
	if s.rdb == nil {
		return nil, false
	}
	raw, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("calendar cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var out []DayResponse
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.logger.Warn("calendar cache decode failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return out, true
}

func (s *service) cacheSet(ctx context.Context, key string, days []DayResponse) {
	if s.rdb == nil {
		return
	}
	payload, err := json.Marshal(days)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("calendar cache write failed", zap.String("key", key), zap.Error(err))
	}
}
