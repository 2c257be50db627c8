package workweek

import (
	"context"
	"errors"
	"sort"

	workweekerrors "leavesync/internal/workweek/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultWorkingDays applies to companies that never configured a work week:
// Monday through Friday.
var DefaultWorkingDays = []int{1, 2, 3, 4, 5}

type Service interface {
	Get(ctx context.Context, companyID string) (WorkWeekResponse, error)
	Put(ctx context.Context, companyID string, req PutWorkWeekRequest) (WorkWeekResponse, error)

	// WorkingDays feeds the calendar classifier.
	WorkingDays(ctx context.Context, companyID string) ([]int, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("workweek.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("workweek.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Get(ctx context.Context, companyID string) (WorkWeekResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return WorkWeekResponse{}, workweekerrors.ErrInvalidCompanyID
	}

	days, err := s.WorkingDays(ctx, companyID)
	if err != nil {
		return WorkWeekResponse{}, err
	}

	return WorkWeekResponse{CompanyID: companyID, WorkingDays: days}, nil
}

func (s *service) Put(ctx context.Context, companyID string, req PutWorkWeekRequest) (WorkWeekResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return WorkWeekResponse{}, workweekerrors.ErrInvalidCompanyID
	}

	days, err := normalizeWorkingDays(req.WorkingDays)
	if err != nil {
		return WorkWeekResponse{}, err
	}

	w := &WorkWeek{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		WorkingDays: days,
	}
	if err := s.repo.Upsert(ctx, w); err != nil {
		s.logger.Error("workweek upsert failed",
			zap.String("company_id", companyID),
			zap.Error(err),
		)
		return WorkWeekResponse{}, err
	}

	s.logger.Info("workweek updated",
		zap.String("company_id", companyID),
		zap.Ints("working_days", days),
	)

	return WorkWeekResponse{CompanyID: companyID, WorkingDays: days}, nil
}

func (s *service) WorkingDays(ctx context.Context, companyID string) ([]int, error) {
	w, err := s.repo.FindByCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return append([]int(nil), DefaultWorkingDays...), nil
		}
		return nil, err
	}
	return append([]int(nil), w.WorkingDays...), nil
}

// normalizeWorkingDays validates the invariant (non-empty subset of 1..7, no
// duplicates) and returns the set sorted.
func normalizeWorkingDays(raw []int) (WeekdaySet, error) {
	if len(raw) == 0 {
		return nil, workweekerrors.ErrEmptyWorkingDays
	}

	seen := make(map[int]bool, len(raw))
	out := make(WeekdaySet, 0, len(raw))
	for _, d := range raw {
		if d < 1 || d > 7 {
			return nil, workweekerrors.ErrInvalidWeekday
		}
		if seen[d] {
			return nil, workweekerrors.ErrDuplicateWeekday
		}
		seen[d] = true
		out = append(out, d)
	}

	sort.Ints(out)
	return out, nil
}
