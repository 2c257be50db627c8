package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"leavesync/internal/balance"
	balanceerrors "leavesync/internal/balance/errors"
	"leavesync/internal/leave"
	leaveerrors "leavesync/internal/leave/errors"
	"leavesync/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveRepository struct {
	withTxFn               func(tx *sql.Tx) leave.Repository
	createFn               func(ctx context.Context, l *leave.Leave) error
	findAllByCompanyFn     func(ctx context.Context, companyID string) ([]leave.Leave, error)
	findAllByEmployeeFn    func(ctx context.Context, companyID, employeeID string) ([]leave.Leave, error)
	findByIDAndCompanyFn   func(ctx context.Context, companyID, id string) (*leave.Leave, error)
	updateFn               func(ctx context.Context, l *leave.Leave) error
	hasOverlappingPeriodFn func(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
	findOccupyingFn        func(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]leave.Leave, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.Leave) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindAllByCompany(ctx context.Context, companyID string) ([]leave.Leave, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]leave.Leave, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, companyID, employeeID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*leave.Leave, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.Leave) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	if f.hasOverlappingPeriodFn != nil {
		return f.hasOverlappingPeriodFn(ctx, companyID, employeeID, startDate, endDate, excludeID)
	}
	return false, nil
}

func (f *fakeLeaveRepository) FindOccupying(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]leave.Leave, error) {
	if f.findOccupyingFn != nil {
		return f.findOccupyingFn(ctx, companyID, employeeID, start, end)
	}
	return nil, nil
}

type fakeCounterRepository struct {
	getNextValueFn func(ctx context.Context, companyID, counterType string) (int64, error)
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, companyID, counterType string) (int64, error) {
	if f.getNextValueFn != nil {
		return f.getNextValueFn(ctx, companyID, counterType)
	}
	return 1, nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type fakeBalanceGuard struct {
	ensureForEmployeeFn func(ctx context.Context, companyID, employeeID, leaveTypeID string) (balance.LeaveBalance, error)
	deductFn            func(ctx context.Context, companyID, employeeID, leaveTypeID string, days decimal.Decimal) (balance.LeaveBalance, error)
}

func (f *fakeBalanceGuard) EnsureForEmployee(ctx context.Context, companyID, employeeID, leaveTypeID string) (balance.LeaveBalance, error) {
	if f.ensureForEmployeeFn != nil {
		return f.ensureForEmployeeFn(ctx, companyID, employeeID, leaveTypeID)
	}
	return balance.LeaveBalance{AvailableDays: decimal.NewFromInt(12)}, nil
}

func (f *fakeBalanceGuard) Deduct(ctx context.Context, companyID, employeeID, leaveTypeID string, days decimal.Decimal) (balance.LeaveBalance, error) {
	if f.deductFn != nil {
		return f.deductFn(ctx, companyID, employeeID, leaveTypeID, days)
	}
	return balance.LeaveBalance{}, nil
}

type fakeTypeResolver struct {
	allocationForFn func(ctx context.Context, companyID, leaveTypeID string) (int, string, error)
}

func (f *fakeTypeResolver) AllocationFor(ctx context.Context, companyID, leaveTypeID string) (int, string, error) {
	if f.allocationForFn != nil {
		return f.allocationForFn(ctx, companyID, leaveTypeID)
	}
	return 12, "Annual Leave", nil
}

type leaveServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  leave.Service
	repo     *fakeLeaveRepository
	counter  *fakeCounterRepository
	outbox   *fakeOutboxRepository
	balances *fakeBalanceGuard
	types    *fakeTypeResolver
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	counterRepo := &fakeCounterRepository{}
	outboxRepo := &fakeOutboxRepository{}
	balances := &fakeBalanceGuard{}
	types := &fakeTypeResolver{}
	svc := leave.NewService(db, repo, counterRepo, outboxRepo, balances, types)

	return &leaveServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		service:  svc,
		repo:     repo,
		counter:  counterRepo,
		outbox:   outboxRepo,
		balances: balances,
		types:    types,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	typeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := leave.CreateLeaveRequest{
			LeaveTypeID: typeID,
			StartDate:   "2026-03-02",
			EndDate:     "2026-03-04",
			Reason:      "Family event",
		}

		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, cid, eid string, startDate, endDate time.Time, excludeID *string) (bool, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, actorID, eid)
			assert.Nil(t, excludeID)
			return false, nil
		}
		deps.counter.getNextValueFn = func(ctx context.Context, cid, counterType string) (int64, error) {
			assert.Equal(t, companyID, cid)
			return 7, nil
		}
		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			assert.Equal(t, uuid.MustParse(companyID), l.CompanyID)
			assert.Equal(t, uuid.MustParse(actorID), l.EmployeeID)
			assert.Equal(t, uuid.MustParse(actorID), l.CreatedBy)
			assert.Equal(t, "LV-000007", l.Reference)
			assert.Equal(t, 3, l.TotalDays)
			assert.Equal(t, leave.StatusPending, l.Status)
			return nil
		}

		var queued kafka.OutboxEvent
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			queued = event
			return nil
		}

		resp, err := deps.service.Create(ctx, companyID, actorID, req)

		assert.NoError(t, err)
		assert.Equal(t, "LV-000007", resp.Reference)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, 3, resp.TotalDays)
		assert.Equal(t, "leave_requested", queued.EventType)
		assert.Equal(t, "leave", queued.AggregateType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative overlap period", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		req := leave.CreateLeaveRequest{
			LeaveTypeID: typeID,
			StartDate:   "2026-03-02",
			EndDate:     "2026-03-03",
		}

		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, cid, eid string, startDate, endDate time.Time, excludeID *string) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Create(ctx, companyID, actorID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative insufficient balance", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		req := leave.CreateLeaveRequest{
			LeaveTypeID: typeID,
			StartDate:   "2026-03-02",
			EndDate:     "2026-03-13",
		}

		deps.balances.ensureForEmployeeFn = func(ctx context.Context, cid, eid, ltid string) (balance.LeaveBalance, error) {
			return balance.LeaveBalance{AvailableDays: decimal.NewFromInt(5)}, nil
		}

		_, err := deps.service.Create(ctx, companyID, actorID, req)

		assert.ErrorIs(t, err, balanceerrors.ErrInsufficientBalance)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative end before start", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		req := leave.CreateLeaveRequest{
			LeaveTypeID: typeID,
			StartDate:   "2026-03-05",
			EndDate:     "2026-03-02",
		}

		_, err := deps.service.Create(ctx, companyID, actorID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("negative malformed date", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		req := leave.CreateLeaveRequest{
			LeaveTypeID: typeID,
			StartDate:   "03/02/2026",
			EndDate:     "2026-03-04",
		}

		_, err := deps.service.Create(ctx, companyID, actorID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
	})
}

func pendingLeave(companyID, employeeID string) *leave.Leave {
	return &leave.Leave{
		ID:          uuid.New(),
		CompanyID:   uuid.MustParse(companyID),
		EmployeeID:  uuid.MustParse(employeeID),
		LeaveTypeID: uuid.New(),
		Reference:   "LV-000001",
		StartDate:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		TotalDays:   3,
		Status:      leave.StatusPending,
		CreatedBy:   uuid.MustParse(employeeID),
	}
}

func TestLeaveService_Approve(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	reviewerID := uuid.New().String()
	employeeID := uuid.New().String()
	id := uuid.New().String()

	t.Run("success deducts balance", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, targetID string) (*leave.Leave, error) {
			return pendingLeave(companyID, employeeID), nil
		}
		deps.repo.updateFn = func(ctx context.Context, l *leave.Leave) error {
			assert.Equal(t, leave.StatusApproved, l.Status)
			assert.NotNil(t, l.ReviewedBy)
			assert.Equal(t, reviewerID, l.ReviewedBy.String())
			assert.NotNil(t, l.ReviewedAt)
			return nil
		}

		deducted := decimal.Zero
		deps.balances.deductFn = func(ctx context.Context, cid, eid, ltid string, days decimal.Decimal) (balance.LeaveBalance, error) {
			assert.Equal(t, employeeID, eid)
			deducted = days
			return balance.LeaveBalance{}, nil
		}

		resp, err := deps.service.Approve(ctx, companyID, reviewerID, id)

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.True(t, deducted.Equal(decimal.NewFromInt(3)))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success stands when deduct fails", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, targetID string) (*leave.Leave, error) {
			return pendingLeave(companyID, employeeID), nil
		}
		deps.balances.deductFn = func(ctx context.Context, cid, eid, ltid string, days decimal.Decimal) (balance.LeaveBalance, error) {
			return balance.LeaveBalance{}, errors.New("ledger unavailable")
		}

		resp, err := deps.service.Approve(ctx, companyID, reviewerID, id)

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative self approval", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, targetID string) (*leave.Leave, error) {
			return pendingLeave(companyID, employeeID), nil
		}

		_, err := deps.service.Approve(ctx, companyID, employeeID, id)

		assert.ErrorIs(t, err, leaveerrors.ErrSelfApproval)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already reviewed", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, targetID string) (*leave.Leave, error) {
			l := pendingLeave(companyID, employeeID)
			l.Status = leave.StatusApproved
			return l, nil
		}

		_, err := deps.service.Approve(ctx, companyID, reviewerID, id)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Reject(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	reviewerID := uuid.New().String()
	employeeID := uuid.New().String()
	id := uuid.New().String()

	t.Run("success records reason", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, targetID string) (*leave.Leave, error) {
			return pendingLeave(companyID, employeeID), nil
		}
		deps.repo.updateFn = func(ctx context.Context, l *leave.Leave) error {
			assert.Equal(t, leave.StatusRejected, l.Status)
			assert.NotNil(t, l.RejectionReason)
			assert.Equal(t, "Overlaps a release", *l.RejectionReason)
			return nil
		}

		resp, err := deps.service.Reject(ctx, companyID, reviewerID, id, "Overlaps a release")

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative missing reason", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Reject(ctx, companyID, reviewerID, id, "")

		assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)
	})
}

func TestLeaveService_Cancel(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	id := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, targetID string) (*leave.Leave, error) {
			return pendingLeave(companyID, employeeID), nil
		}
		deps.repo.updateFn = func(ctx context.Context, l *leave.Leave) error {
			assert.Equal(t, leave.StatusCancelled, l.Status)
			return nil
		}

		var queued kafka.OutboxEvent
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			queued = event
			return nil
		}

		resp, err := deps.service.Cancel(ctx, companyID, employeeID, id)

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, resp.Status)
		assert.Equal(t, "leave_cancelled", queued.EventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not the owner", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, targetID string) (*leave.Leave, error) {
			return pendingLeave(companyID, employeeID), nil
		}

		_, err := deps.service.Cancel(ctx, companyID, uuid.New().String(), id)

		assert.ErrorIs(t, err, leaveerrors.ErrNotOwner)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already approved", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, targetID string) (*leave.Leave, error) {
			l := pendingLeave(companyID, employeeID)
			l.Status = leave.StatusApproved
			return l, nil
		}

		_, err := deps.service.Cancel(ctx, companyID, employeeID, id)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Proof(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	reviewerID := uuid.New().String()
	employeeID := uuid.New().String()
	id := uuid.New().String()

	t.Run("request and provide", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		stored := pendingLeave(companyID, employeeID)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, targetID string) (*leave.Leave, error) {
			return stored, nil
		}
		deps.repo.updateFn = func(ctx context.Context, l *leave.Leave) error {
			stored = l
			return nil
		}

		resp, err := deps.service.RequestProof(ctx, companyID, reviewerID, id)
		assert.NoError(t, err)
		assert.True(t, resp.ProofRequested)

		resp, err = deps.service.ProvideProof(ctx, companyID, employeeID, id, "https://example.com/note.pdf")
		assert.NoError(t, err)
		assert.NotNil(t, resp.ProofURL)
		assert.Equal(t, "https://example.com/note.pdf", *resp.ProofURL)
	})

	t.Run("negative proof not requested", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, targetID string) (*leave.Leave, error) {
			return pendingLeave(companyID, employeeID), nil
		}

		_, err := deps.service.ProvideProof(ctx, companyID, employeeID, id, "https://example.com/note.pdf")

		assert.ErrorIs(t, err, leaveerrors.ErrProofNotRequested)
	})

	t.Run("negative own request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, targetID string) (*leave.Leave, error) {
			return pendingLeave(companyID, employeeID), nil
		}

		_, err := deps.service.RequestProof(ctx, companyID, employeeID, id)

		assert.ErrorIs(t, err, leaveerrors.ErrSelfApproval)
	})
}

func TestLeaveService_Intervals(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("success resolves type names once", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		typeID := uuid.New()
		deps.repo.findOccupyingFn = func(ctx context.Context, cid, eid string, s, e time.Time) ([]leave.Leave, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, employeeID, eid)
			first := pendingLeave(companyID, employeeID)
			first.LeaveTypeID = typeID
			second := pendingLeave(companyID, employeeID)
			second.LeaveTypeID = typeID
			second.Status = leave.StatusApproved
			return []leave.Leave{*first, *second}, nil
		}

		lookups := 0
		deps.types.allocationForFn = func(ctx context.Context, cid, ltid string) (int, string, error) {
			lookups++
			return 12, "Annual Leave", nil
		}

		intervals, err := deps.service.Intervals(ctx, companyID, employeeID, start, end)

		assert.NoError(t, err)
		assert.Len(t, intervals, 2)
		assert.Equal(t, "Annual Leave", intervals[0].TypeName)
		assert.Equal(t, leave.StatusApproved, intervals[1].Status)
		assert.Equal(t, 1, lookups)
	})

	t.Run("negative repo error", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findOccupyingFn = func(ctx context.Context, cid, eid string, s, e time.Time) ([]leave.Leave, error) {
			return nil, errors.New("db error")
		}

		intervals, err := deps.service.Intervals(ctx, companyID, employeeID, start, end)

		assert.Error(t, err)
		assert.Nil(t, intervals)
	})
}
