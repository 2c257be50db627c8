package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"leavesync/internal/balance"
	balanceerrors "leavesync/internal/balance/errors"
	"leavesync/internal/calendar"
	"leavesync/internal/events"
	leaveerrors "leavesync/internal/leave/errors"
	"leavesync/internal/messaging/kafka"
	"leavesync/internal/shared/contextutil"
	"leavesync/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

// BalanceGuard is the slice of the balance service the lifecycle needs:
// checking available days at submission and deducting on approval.
type BalanceGuard interface {
	EnsureForEmployee(ctx context.Context, companyID, employeeID, leaveTypeID string) (balance.LeaveBalance, error)
	Deduct(ctx context.Context, companyID, employeeID, leaveTypeID string, days decimal.Decimal) (balance.LeaveBalance, error)
}

// TypeResolver resolves a leave type id to its allocation and display name.
// Implemented by the leavetype service.
type TypeResolver interface {
	AllocationFor(ctx context.Context, companyID, leaveTypeID string) (int, string, error)
}

type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, companyID string) ([]LeaveResponse, error)
	GetMine(ctx context.Context, companyID, employeeID string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error)
	Reject(ctx context.Context, companyID, actorID, id, reason string) (LeaveResponse, error)
	Cancel(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error)
	RequestProof(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error)
	ProvideProof(ctx context.Context, companyID, actorID, id, proofURL string) (LeaveResponse, error)

	// Intervals reports the employee's occupying bookings in the window. Feeds
	// the calendar classifier.
	Intervals(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]calendar.LeaveInterval, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	counter  counter.Repository
	outbox   kafka.OutboxRepository
	balances BalanceGuard
	types    TypeResolver
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	balances BalanceGuard,
	types TypeResolver,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		counter:  counterRepo,
		outbox:   outboxRepo,
		balances: balances,
		types:    types,
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	companyUUID, actorUUID, typeUUID, startDate, endDate, err := validateCreateRequest(companyID, actorID, req)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingPeriod(ctx, companyID, actorID, startDate, endDate, nil)
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("create leave overlap detected",
			zap.String("employee_id", actorID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1

	bal, err := s.balances.EnsureForEmployee(ctx, companyID, actorID, req.LeaveTypeID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if bal.AvailableDays.LessThan(decimal.NewFromInt(int64(totalDays))) {
		s.logger.Warn("create leave insufficient balance",
			zap.String("employee_id", actorID),
			zap.Int("requested_days", totalDays),
			zap.String("available_days", bal.AvailableDays.StringFixed(2)),
		)
		return LeaveResponse{}, balanceerrors.ErrInsufficientBalance
	}

	nextVal, err := s.counter.GetNextValue(ctx, companyID, counter.CounterLeaveRequest)
	if err != nil {
		s.logger.Error("create leave generate reference failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	l := &Leave{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		EmployeeID:  actorUUID,
		LeaveTypeID: typeUUID,
		Reference:   fmt.Sprintf("LV-%06d", nextVal),
		StartDate:   startDate,
		EndDate:     endDate,
		TotalDays:   totalDays,
		Reason:      req.Reason,
		Status:      StatusPending,
		CreatedBy:   actorUUID,
	}
	if req.EmailDraft != "" {
		l.EmailDraft = &req.EmailDraft
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.queueStatusEvent(ctx, tx, rid, l, "leave_requested", ""); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("create leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("reference", l.Reference),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetMine(ctx context.Context, companyID, employeeID string) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error) {
	return s.review(ctx, companyID, actorID, id, StatusApproved, "")
}

func (s *service) Reject(ctx context.Context, companyID, actorID, id, reason string) (LeaveResponse, error) {
	if reason == "" {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
	}
	return s.review(ctx, companyID, actorID, id, StatusRejected, reason)
}

// review runs the shared approve/reject path. The reviewer must belong to
// the same company (FindByIDAndCompany enforces that) and must not be the
// requesting employee.
func (s *service) review(ctx context.Context, companyID, actorID, id, targetStatus, reason string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("review leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", targetStatus),
	)

	if _, err := uuid.Parse(companyID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		s.logger.Warn("review leave invalid transition",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status),
			zap.String("to_status", targetStatus),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}
	if l.EmployeeID == actorUUID {
		return LeaveResponse{}, leaveerrors.ErrSelfApproval
	}

	now := time.Now().UTC()
	l.Status = targetStatus
	l.ReviewedBy = &actorUUID
	l.ReviewedAt = &now
	if targetStatus == StatusRejected {
		l.RejectionReason = &reason
	} else {
		l.RejectionReason = nil
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("review leave persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if err := s.queueStatusEvent(ctx, tx, rid, l, "leave_reviewed", actorID); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("review leave commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if targetStatus == StatusApproved {
		if _, err := s.balances.Deduct(ctx, companyID, l.EmployeeID.String(), l.LeaveTypeID.String(), decimal.NewFromInt(int64(l.TotalDays))); err != nil {
			// The approval stands; the ledger is reconciled by HR if this
			// ever fires.
			s.logger.Error("approve leave balance deduct failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("review leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*l), nil
}

func (s *service) Cancel(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := uuid.Parse(companyID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.EmployeeID != actorUUID {
		return LeaveResponse{}, leaveerrors.ErrNotOwner
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	l.Status = StatusCancelled
	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("cancel leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.queueStatusEvent(ctx, tx, rid, l, "leave_cancelled", ""); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("cancel leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
	)
	return mapToResponse(*l), nil
}

func (s *service) RequestProof(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.EmployeeID == actorUUID {
		return LeaveResponse{}, leaveerrors.ErrSelfApproval
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	l.ProofRequested = true
	if err := s.repo.Update(ctx, l); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("proof requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)
	return mapToResponse(*l), nil
}

func (s *service) ProvideProof(ctx context.Context, companyID, actorID, id, proofURL string) (LeaveResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.EmployeeID != actorUUID {
		return LeaveResponse{}, leaveerrors.ErrNotOwner
	}
	if !l.ProofRequested {
		return LeaveResponse{}, leaveerrors.ErrProofNotRequested
	}

	l.ProofURL = &proofURL
	if err := s.repo.Update(ctx, l); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("proof provided", zap.String("leave_id", id))
	return mapToResponse(*l), nil
}

func (s *service) Intervals(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]calendar.LeaveInterval, error) {
	leaves, err := s.repo.FindOccupying(ctx, companyID, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, 2)
	intervals := make([]calendar.LeaveInterval, len(leaves))
	for i, l := range leaves {
		name, ok := names[l.LeaveTypeID]
		if !ok {
			if _, resolved, err := s.types.AllocationFor(ctx, companyID, l.LeaveTypeID.String()); err == nil {
				name = resolved
			}
			names[l.LeaveTypeID] = name
		}
		intervals[i] = calendar.LeaveInterval{
			Start:    l.StartDate,
			End:      l.EndDate,
			Status:   l.Status,
			TypeName: name,
		}
	}
	return intervals, nil
}

func (s *service) queueStatusEvent(ctx context.Context, tx *sql.Tx, rid string, l *Leave, eventType, reviewedBy string) error {
	if s.outbox == nil {
		return nil
	}

	event := events.LeaveStatusChangedEvent{
		EventType:  eventType,
		RequestID:  rid,
		LeaveID:    l.ID.String(),
		CompanyID:  l.CompanyID.String(),
		EmployeeID: l.EmployeeID.String(),
		Status:     l.Status,
		ReviewedBy: reviewedBy,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal leave event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	outboxRepo := s.outbox.WithTx(tx)
	if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "leave",
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveStatusChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("leave outbox persist failed",
			zap.String("leave_id", l.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func validateCreateRequest(companyID, actorID string, req CreateLeaveRequest) (uuid.UUID, uuid.UUID, uuid.UUID, time.Time, time.Time, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidActorID
	}
	typeUUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidLeaveTypeID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return companyUUID, actorUUID, typeUUID, startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}
