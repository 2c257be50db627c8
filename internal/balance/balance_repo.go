package balance

import (
	"context"
	"database/sql"

	"leavesync/internal/tenant"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *LeaveBalance) error
	FindByEmployeeAndType(ctx context.Context, companyID, employeeID, leaveTypeID string) (*LeaveBalance, error)
	FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]LeaveBalance, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]LeaveBalance, error)
	Update(ctx context.Context, b *LeaveBalance) error
	SumByEmployee(ctx context.Context, companyID, employeeID string) (decimal.Decimal, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindByEmployeeAndType(ctx context.Context, companyID, employeeID, leaveTypeID string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		First(&b, "leave_type_id = ?", leaveTypeID).Error
	return &b, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("created_at ASC").
		Find(&balances).Error
	return balances, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("employee_id ASC, created_at ASC").
		Find(&balances).Error
	return balances, err
}

func (r *repository) Update(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *repository) SumByEmployee(ctx context.Context, companyID, employeeID string) (decimal.Decimal, error) {
	var total sql.NullString
	err := r.db.WithContext(ctx).
		Model(&LeaveBalance{}).
		Select("SUM(available_days)").
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(total.String)
}
