package workweek_test

import (
	"context"
	"errors"
	"testing"

	"leavesync/internal/workweek"
	workweekerrors "leavesync/internal/workweek/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeWorkWeekRepository struct {
	findByCompanyFn func(ctx context.Context, companyID string) (*workweek.WorkWeek, error)
	upsertFn        func(ctx context.Context, w *workweek.WorkWeek) error
}

func (f *fakeWorkWeekRepository) FindByCompany(ctx context.Context, companyID string) (*workweek.WorkWeek, error) {
	if f.findByCompanyFn != nil {
		return f.findByCompanyFn(ctx, companyID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWorkWeekRepository) Upsert(ctx context.Context, w *workweek.WorkWeek) error {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, w)
	}
	return nil
}

func setupWorkWeekServiceTest(t *testing.T) (workweek.Service, *fakeWorkWeekRepository) {
	t.Helper()
	repo := &fakeWorkWeekRepository{}
	return workweek.NewService(repo), repo
}

func TestWorkWeekService_WorkingDays(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("defaults to monday through friday when unset", func(t *testing.T) {
		svc, _ := setupWorkWeekServiceTest(t)

		days, err := svc.WorkingDays(ctx, companyID)

		assert.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, days)
	})

	t.Run("returns configured days", func(t *testing.T) {
		svc, repo := setupWorkWeekServiceTest(t)

		repo.findByCompanyFn = func(ctx context.Context, cid string) (*workweek.WorkWeek, error) {
			return &workweek.WorkWeek{
				CompanyID:   uuid.MustParse(companyID),
				WorkingDays: workweek.WeekdaySet{7, 1, 2, 3, 4},
			}, nil
		}

		days, err := svc.WorkingDays(ctx, companyID)

		assert.NoError(t, err)
		assert.Equal(t, []int{7, 1, 2, 3, 4}, days)
	})

	t.Run("negative repo error", func(t *testing.T) {
		svc, repo := setupWorkWeekServiceTest(t)

		repo.findByCompanyFn = func(ctx context.Context, cid string) (*workweek.WorkWeek, error) {
			return nil, errors.New("db error")
		}

		_, err := svc.WorkingDays(ctx, companyID)

		assert.Error(t, err)
	})
}

func TestWorkWeekService_Put(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success sorts the days", func(t *testing.T) {
		svc, repo := setupWorkWeekServiceTest(t)

		var saved *workweek.WorkWeek
		repo.upsertFn = func(ctx context.Context, w *workweek.WorkWeek) error {
			saved = w
			return nil
		}

		resp, err := svc.Put(ctx, companyID, workweek.PutWorkWeekRequest{WorkingDays: []int{5, 1, 3}})

		assert.NoError(t, err)
		assert.Equal(t, []int{1, 3, 5}, resp.WorkingDays)
		assert.NotNil(t, saved)
		assert.Equal(t, workweek.WeekdaySet{1, 3, 5}, saved.WorkingDays)
	})

	t.Run("negative empty days", func(t *testing.T) {
		svc, _ := setupWorkWeekServiceTest(t)

		_, err := svc.Put(ctx, companyID, workweek.PutWorkWeekRequest{WorkingDays: nil})

		assert.ErrorIs(t, err, workweekerrors.ErrEmptyWorkingDays)
	})

	t.Run("negative out of range weekday", func(t *testing.T) {
		svc, _ := setupWorkWeekServiceTest(t)

		_, err := svc.Put(ctx, companyID, workweek.PutWorkWeekRequest{WorkingDays: []int{0, 3}})

		assert.ErrorIs(t, err, workweekerrors.ErrInvalidWeekday)
	})

	t.Run("negative duplicate weekday", func(t *testing.T) {
		svc, _ := setupWorkWeekServiceTest(t)

		_, err := svc.Put(ctx, companyID, workweek.PutWorkWeekRequest{WorkingDays: []int{3, 3}})

		assert.ErrorIs(t, err, workweekerrors.ErrDuplicateWeekday)
	})

	t.Run("negative invalid company id", func(t *testing.T) {
		svc, _ := setupWorkWeekServiceTest(t)

		_, err := svc.Put(ctx, "nope", workweek.PutWorkWeekRequest{WorkingDays: []int{1}})

		assert.ErrorIs(t, err, workweekerrors.ErrInvalidCompanyID)
	})
}

func TestWorkWeekService_Get(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc, repo := setupWorkWeekServiceTest(t)

		repo.findByCompanyFn = func(ctx context.Context, cid string) (*workweek.WorkWeek, error) {
			return &workweek.WorkWeek{
				CompanyID:   uuid.MustParse(companyID),
				WorkingDays: workweek.WeekdaySet{1, 2, 3, 4, 5, 6},
			}, nil
		}

		resp, err := svc.Get(ctx, companyID)

		assert.NoError(t, err)
		assert.Equal(t, companyID, resp.CompanyID)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, resp.WorkingDays)
	})

	t.Run("negative invalid company id", func(t *testing.T) {
		svc, _ := setupWorkWeekServiceTest(t)

		_, err := svc.Get(ctx, "nope")

		assert.ErrorIs(t, err, workweekerrors.ErrInvalidCompanyID)
	})
}
