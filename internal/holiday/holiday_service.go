package holiday

import (
	"context"
	"errors"
	"time"

	"leavesync/internal/calendar"
	holidayerrors "leavesync/internal/holiday/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, companyID string, req CreateHolidayRequest) (HolidayResponse, error)
	Import(ctx context.Context, companyID string, req ImportHolidaysRequest) (ImportHolidaysResponse, error)
	GetAll(ctx context.Context, companyID string) ([]HolidayResponse, error)
	Delete(ctx context.Context, companyID, id string) error

	// CalendarWindow feeds the calendar classifier.
	CalendarWindow(ctx context.Context, companyID string, start, end time.Time) ([]calendar.HolidayDate, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateHolidayRequest) (HolidayResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidCompanyID
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return HolidayResponse{}, err
	}

	exists, err := s.repo.ExistsOnDate(ctx, companyID, date)
	if err != nil {
		s.logger.Error("holiday date lookup failed", zap.Error(err))
		return HolidayResponse{}, err
	}
	if exists {
		return HolidayResponse{}, holidayerrors.ErrHolidayExists
	}

	h := &Holiday{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		Date:      date,
		Name:      req.Name,
		Optional:  req.Optional,
		Recurring: req.Recurring,
	}
	if err := s.repo.Create(ctx, h); err != nil {
		s.logger.Error("holiday persist failed", zap.Error(err))
		return HolidayResponse{}, err
	}

	s.logger.Info("holiday created",
		zap.String("company_id", companyID),
		zap.String("date", req.Date),
		zap.String("name", req.Name),
	)

	return mapToResponse(*h), nil
}

// Import upserts pre-parsed holiday rows keyed by (company, date). Rows with
// unparseable dates abort the whole batch.
func (s *service) Import(ctx context.Context, companyID string, req ImportHolidaysRequest) (ImportHolidaysResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ImportHolidaysResponse{}, holidayerrors.ErrInvalidCompanyID
	}
	if len(req.Rows) == 0 {
		return ImportHolidaysResponse{}, holidayerrors.ErrEmptyImport
	}

	var out ImportHolidaysResponse
	for _, row := range req.Rows {
		date, err := parseDate(row.Date)
		if err != nil {
			return ImportHolidaysResponse{}, err
		}

		h := &Holiday{
			ID:        uuid.New(),
			CompanyID: companyUUID,
			Date:      date,
			Name:      row.Name,
		}
		created, err := s.repo.UpsertByDate(ctx, h)
		if err != nil {
			s.logger.Error("holiday import upsert failed",
				zap.String("date", row.Date),
				zap.Error(err),
			)
			return ImportHolidaysResponse{}, err
		}
		if created {
			out.Created++
		} else {
			out.Updated++
		}
	}

	s.logger.Info("holidays imported",
		zap.String("company_id", companyID),
		zap.Int("created", out.Created),
		zap.Int("updated", out.Updated),
	)

	return out, nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]HolidayResponse, error) {
	holidays, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	out := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		out[i] = mapToResponse(h)
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	if _, err := s.repo.FindByIDAndCompany(ctx, companyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return holidayerrors.ErrHolidayNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, companyID, id)
}

func (s *service) CalendarWindow(ctx context.Context, companyID string, start, end time.Time) ([]calendar.HolidayDate, error) {
	holidays, err := s.repo.FindForWindow(ctx, companyID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]calendar.HolidayDate, len(holidays))
	for i, h := range holidays {
		out[i] = calendar.HolidayDate{
			Date:      h.Date,
			Name:      h.Name,
			Recurring: h.Recurring,
			Optional:  h.Optional,
		}
	}
	return out, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, holidayerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:        h.ID.String(),
		CompanyID: h.CompanyID.String(),
		Date:      h.Date.Format("2006-01-02"),
		Name:      h.Name,
		Optional:  h.Optional,
		Recurring: h.Recurring,
	}
}
