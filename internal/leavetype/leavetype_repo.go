package leavetype

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	CreateType(ctx context.Context, t *LeaveType) error
	ListTypes(ctx context.Context) ([]LeaveType, error)
	FindTypeByID(ctx context.Context, id string) (*LeaveType, error)
	NameExists(ctx context.Context, name string) (bool, error)

	UpsertPolicy(ctx context.Context, p *CompanyLeavePolicy) error
	ListPolicies(ctx context.Context, companyID string) ([]CompanyLeavePolicy, error)
	FindPolicy(ctx context.Context, companyID, leaveTypeID string) (*CompanyLeavePolicy, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateType(ctx context.Context, t *LeaveType) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) ListTypes(ctx context.Context) ([]LeaveType, error) {
	var types []LeaveType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error
	return types, err
}

func (r *repository) FindTypeByID(ctx context.Context, id string) (*LeaveType, error) {
	var t LeaveType
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) NameExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveType{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) UpsertPolicy(ctx context.Context, p *CompanyLeavePolicy) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "company_id"}, {Name: "leave_type_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"days_per_year", "updated_at"}),
		}).
		Create(p).Error
}

func (r *repository) ListPolicies(ctx context.Context, companyID string) ([]CompanyLeavePolicy, error) {
	var policies []CompanyLeavePolicy
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Find(&policies).Error
	return policies, err
}

func (r *repository) FindPolicy(ctx context.Context, companyID, leaveTypeID string) (*CompanyLeavePolicy, error) {
	var p CompanyLeavePolicy
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("leave_type_id = ?", leaveTypeID).
		First(&p).Error
	return &p, err
}
