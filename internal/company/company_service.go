package company

import (
	"context"
	"errors"
	"strings"

	companyerrors "leavesync/internal/company/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Register(ctx context.Context, actorID, actorEmail string, req RegisterCompanyRequest) (CompanyResponse, error)
	GetByID(ctx context.Context, id string) (CompanyResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Register(ctx context.Context, actorID, actorEmail string, req RegisterCompanyRequest) (CompanyResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidActorID
	}

	domain := strings.ToLower(strings.TrimSpace(req.Domain))

	// Only someone whose own email lives on the domain may register it.
	emailDomain := ""
	if at := strings.LastIndex(actorEmail, "@"); at >= 0 {
		emailDomain = strings.ToLower(actorEmail[at+1:])
	}
	if emailDomain == "" || emailDomain != domain {
		s.logger.Warn("company registration domain mismatch",
			zap.String("actor_id", actorID),
			zap.String("email_domain", emailDomain),
			zap.String("company_domain", domain),
		)
		return CompanyResponse{}, companyerrors.ErrDomainMismatch
	}

	taken, err := s.repo.DomainExists(ctx, domain)
	if err != nil {
		s.logger.Error("company domain lookup failed", zap.Error(err))
		return CompanyResponse{}, err
	}
	if taken {
		return CompanyResponse{}, companyerrors.ErrDomainTaken
	}

	c := &Company{
		ID:           uuid.New(),
		Name:         req.Name,
		Domain:       domain,
		Location:     req.Location,
		Verified:     false,
		RegisteredBy: actorUUID,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("company registration persist failed", zap.Error(err))
		return CompanyResponse{}, err
	}

	s.logger.Info("company registered",
		zap.String("company_id", c.ID.String()),
		zap.String("domain", domain),
	)

	return mapToResponse(*c), nil
}

func (s *service) GetByID(ctx context.Context, id string) (CompanyResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyID
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompanyResponse{}, companyerrors.ErrCompanyNotFound
		}
		return CompanyResponse{}, err
	}
	return mapToResponse(*c), nil
}

func mapToResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Domain:       c.Domain,
		Location:     c.Location,
		Verified:     c.Verified,
		RegisteredBy: c.RegisteredBy.String(),
	}
}
