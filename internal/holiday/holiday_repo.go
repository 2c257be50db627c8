package holiday

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(ctx context.Context, h *Holiday) error
	UpsertByDate(ctx context.Context, h *Holiday) (created bool, err error)
	FindAllByCompany(ctx context.Context, companyID string) ([]Holiday, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Holiday, error)
	Delete(ctx context.Context, companyID, id string) error
	ExistsOnDate(ctx context.Context, companyID string, date time.Time) (bool, error)

	// FindForWindow returns non-recurring holidays dated inside [start, end]
	// plus every recurring holiday of the company; the classifier resolves
	// recurring entries into the window years.
	FindForWindow(ctx context.Context, companyID string, start, end time.Time) ([]Holiday, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) UpsertByDate(ctx context.Context, h *Holiday) (bool, error) {
	var existing Holiday
	err := r.db.WithContext(ctx).
		Where("company_id = ?", h.CompanyID).
		Where("date = ?", h.Date).
		First(&existing).Error

	if err == gorm.ErrRecordNotFound {
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "company_id"}, {Name: "date"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
			}).
			Create(h).Error; err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	existing.Name = h.Name
	return false, r.db.WithContext(ctx).Save(&existing).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Holiday, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Holiday, error) {
	var h Holiday
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&h, "id = ?", id).Error
	return &h, err
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Delete(&Holiday{}, "id = ?", id).Error
}

func (r *repository) ExistsOnDate(ctx context.Context, companyID string, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Holiday{}).
		Where("company_id = ?", companyID).
		Where("date = ?", date).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindForWindow(ctx context.Context, companyID string, start, end time.Time) ([]Holiday, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("recurring = TRUE OR (date >= ? AND date <= ?)", start, end).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}
