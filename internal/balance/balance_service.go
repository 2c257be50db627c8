package balance

import (
	"context"
	"errors"

	balanceerrors "leavesync/internal/balance/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AllocationSource resolves the yearly day budget for a company and leave
// type. Implemented by the leavetype service.
type AllocationSource interface {
	AllocationFor(ctx context.Context, companyID, leaveTypeID string) (int, string, error)
}

type Service interface {
	// EnsureForEmployee returns the employee's balance for the type, seeding
	// it from the company policy (or the type default) on first touch.
	EnsureForEmployee(ctx context.Context, companyID, employeeID, leaveTypeID string) (LeaveBalance, error)

	// Deduct subtracts days from the balance, clamping at zero.
	Deduct(ctx context.Context, companyID, employeeID, leaveTypeID string, days decimal.Decimal) (LeaveBalance, error)

	Adjust(ctx context.Context, companyID, employeeID, leaveTypeID string, req AdjustBalanceRequest) (BalanceResponse, error)
	ListForEmployee(ctx context.Context, companyID, employeeID string) ([]BalanceResponse, error)
	ListForCompany(ctx context.Context, companyID string) ([]BalanceResponse, error)

	// TotalAvailable sums the employee's balances across all types. Feeds the
	// calendar suggestion snapshot.
	TotalAvailable(ctx context.Context, companyID, employeeID string) (decimal.Decimal, error)
}

type service struct {
	repo        Repository
	allocations AllocationSource
	logger      *zap.Logger
}

func NewService(repo Repository, allocations AllocationSource, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{repo: repo, allocations: allocations, logger: l}
}

func (s *service) EnsureForEmployee(ctx context.Context, companyID, employeeID, leaveTypeID string) (LeaveBalance, error) {
	companyUUID, employeeUUID, typeUUID, err := parseIDs(companyID, employeeID, leaveTypeID)
	if err != nil {
		return LeaveBalance{}, err
	}

	b, err := s.repo.FindByEmployeeAndType(ctx, companyID, employeeID, leaveTypeID)
	if err == nil {
		return *b, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return LeaveBalance{}, err
	}

	days, typeName, err := s.allocations.AllocationFor(ctx, companyID, leaveTypeID)
	if err != nil {
		return LeaveBalance{}, err
	}

	seeded := &LeaveBalance{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		EmployeeID:    employeeUUID,
		LeaveTypeID:   typeUUID,
		AvailableDays: decimal.NewFromInt(int64(days)),
	}
	if err := s.repo.Create(ctx, seeded); err != nil {
		// A concurrent request may have seeded the same row first.
		if isUniqueViolation(err) {
			existing, findErr := s.repo.FindByEmployeeAndType(ctx, companyID, employeeID, leaveTypeID)
			if findErr != nil {
				return LeaveBalance{}, findErr
			}
			return *existing, nil
		}
		s.logger.Error("balance seed failed",
			zap.String("employee_id", employeeID),
			zap.String("leave_type_id", leaveTypeID),
			zap.Error(err),
		)
		return LeaveBalance{}, err
	}

	s.logger.Info("balance seeded",
		zap.String("employee_id", employeeID),
		zap.String("leave_type", typeName),
		zap.Int("days", days),
	)
	return *seeded, nil
}

func (s *service) Deduct(ctx context.Context, companyID, employeeID, leaveTypeID string, days decimal.Decimal) (LeaveBalance, error) {
	if days.IsNegative() {
		return LeaveBalance{}, balanceerrors.ErrInvalidDays
	}

	b, err := s.EnsureForEmployee(ctx, companyID, employeeID, leaveTypeID)
	if err != nil {
		return LeaveBalance{}, err
	}

	remaining := b.AvailableDays.Sub(days)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	b.AvailableDays = remaining

	if err := s.repo.Update(ctx, &b); err != nil {
		s.logger.Error("balance deduct persist failed",
			zap.String("employee_id", employeeID),
			zap.String("leave_type_id", leaveTypeID),
			zap.Error(err),
		)
		return LeaveBalance{}, err
	}

	s.logger.Info("balance deducted",
		zap.String("employee_id", employeeID),
		zap.String("leave_type_id", leaveTypeID),
		zap.String("days", days.StringFixed(2)),
		zap.String("remaining", remaining.StringFixed(2)),
	)
	return b, nil
}

func (s *service) Adjust(ctx context.Context, companyID, employeeID, leaveTypeID string, req AdjustBalanceRequest) (BalanceResponse, error) {
	days, err := decimal.NewFromString(req.AvailableDays)
	if err != nil || days.IsNegative() {
		return BalanceResponse{}, balanceerrors.ErrInvalidDays
	}

	b, err := s.EnsureForEmployee(ctx, companyID, employeeID, leaveTypeID)
	if err != nil {
		return BalanceResponse{}, err
	}

	b.AvailableDays = days
	if err := s.repo.Update(ctx, &b); err != nil {
		return BalanceResponse{}, err
	}

	s.logger.Info("balance adjusted",
		zap.String("employee_id", employeeID),
		zap.String("leave_type_id", leaveTypeID),
		zap.String("available_days", days.StringFixed(2)),
	)
	return mapToResponse(b, ""), nil
}

func (s *service) ListForEmployee(ctx context.Context, companyID, employeeID string) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, balanceerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, balanceerrors.ErrInvalidEmployeeID
	}

	balances, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToList(balances), nil
}

func (s *service) ListForCompany(ctx context.Context, companyID string) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, balanceerrors.ErrInvalidCompanyID
	}

	balances, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return mapToList(balances), nil
}

func (s *service) TotalAvailable(ctx context.Context, companyID, employeeID string) (decimal.Decimal, error) {
	return s.repo.SumByEmployee(ctx, companyID, employeeID)
}

func parseIDs(companyID, employeeID, leaveTypeID string) (uuid.UUID, uuid.UUID, uuid.UUID, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, balanceerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, balanceerrors.ErrInvalidEmployeeID
	}
	typeUUID, err := uuid.Parse(leaveTypeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, balanceerrors.ErrInvalidLeaveTypeID
	}
	return companyUUID, employeeUUID, typeUUID, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapToList(balances []LeaveBalance) []BalanceResponse {
	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapToResponse(b, "")
	}
	return resp
}
