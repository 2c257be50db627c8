package workweek

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	FindByCompany(ctx context.Context, companyID string) (*WorkWeek, error)
	Upsert(ctx context.Context, w *WorkWeek) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByCompany(ctx context.Context, companyID string) (*WorkWeek, error) {
	var w WorkWeek
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&w).Error
	return &w, err
}

func (r *repository) Upsert(ctx context.Context, w *WorkWeek) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "company_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"working_days", "updated_at"}),
		}).
		Create(w).Error
}
