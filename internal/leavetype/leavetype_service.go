package leavetype

import (
	"context"
	"errors"

	leavetypeerrors "leavesync/internal/leavetype/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	ListForCompany(ctx context.Context, companyID string) ([]LeaveTypeResponse, error)
	SetPolicy(ctx context.Context, companyID, leaveTypeID string, req SetPolicyRequest) (LeaveTypeResponse, error)

	// AllocationFor resolves the yearly day budget for a company and type:
	// the company policy when present, otherwise the type default.
	AllocationFor(ctx context.Context, companyID, leaveTypeID string) (int, string, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	exists, err := s.repo.NameExists(ctx, req.Name)
	if err != nil {
		return LeaveTypeResponse{}, err
	}
	if exists {
		return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeExists
	}

	t := &LeaveType{
		ID:                uuid.New(),
		Name:              req.Name,
		DefaultAllocation: req.DefaultAllocation,
	}
	if err := s.repo.CreateType(ctx, t); err != nil {
		s.logger.Error("leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}

	s.logger.Info("leave type created", zap.String("name", t.Name))

	return LeaveTypeResponse{
		ID:                t.ID.String(),
		Name:              t.Name,
		DefaultAllocation: t.DefaultAllocation,
		DaysPerYear:       t.DefaultAllocation,
	}, nil
}

func (s *service) ListForCompany(ctx context.Context, companyID string) ([]LeaveTypeResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, leavetypeerrors.ErrInvalidCompanyID
	}

	types, err := s.repo.ListTypes(ctx)
	if err != nil {
		return nil, err
	}
	policies, err := s.repo.ListPolicies(ctx, companyID)
	if err != nil {
		return nil, err
	}

	byType := make(map[uuid.UUID]int, len(policies))
	for _, p := range policies {
		byType[p.LeaveTypeID] = p.DaysPerYear
	}

	out := make([]LeaveTypeResponse, len(types))
	for i, t := range types {
		days := t.DefaultAllocation
		if v, ok := byType[t.ID]; ok {
			days = v
		}
		out[i] = LeaveTypeResponse{
			ID:                t.ID.String(),
			Name:              t.Name,
			DefaultAllocation: t.DefaultAllocation,
			DaysPerYear:       days,
		}
	}
	return out, nil
}

func (s *service) SetPolicy(ctx context.Context, companyID, leaveTypeID string, req SetPolicyRequest) (LeaveTypeResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidCompanyID
	}
	typeUUID, err := uuid.Parse(leaveTypeID)
	if err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}

	t, err := s.repo.FindTypeByID(ctx, leaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}

	p := &CompanyLeavePolicy{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		LeaveTypeID: typeUUID,
		DaysPerYear: req.DaysPerYear,
	}
	if err := s.repo.UpsertPolicy(ctx, p); err != nil {
		s.logger.Error("leave policy upsert failed",
			zap.String("company_id", companyID),
			zap.String("leave_type_id", leaveTypeID),
			zap.Error(err),
		)
		return LeaveTypeResponse{}, err
	}

	s.logger.Info("leave policy updated",
		zap.String("company_id", companyID),
		zap.String("leave_type", t.Name),
		zap.Int("days_per_year", req.DaysPerYear),
	)

	return LeaveTypeResponse{
		ID:                t.ID.String(),
		Name:              t.Name,
		DefaultAllocation: t.DefaultAllocation,
		DaysPerYear:       req.DaysPerYear,
	}, nil
}

func (s *service) AllocationFor(ctx context.Context, companyID, leaveTypeID string) (int, string, error) {
	t, err := s.repo.FindTypeByID(ctx, leaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, "", leavetypeerrors.ErrLeaveTypeNotFound
		}
		return 0, "", err
	}

	p, err := s.repo.FindPolicy(ctx, companyID, leaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return t.DefaultAllocation, t.Name, nil
		}
		return 0, "", err
	}
	return p.DaysPerYear, t.Name, nil
}
