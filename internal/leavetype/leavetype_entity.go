package leavetype

import (
	"time"

	"github.com/google/uuid"
)

type LeaveType struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(50);not null;uniqueIndex"`

	// DefaultAllocation is the yearly day budget used when a company has no
	// policy of its own for this type.
	DefaultAllocation int `gorm:"not null;default:12"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CompanyLeavePolicy overrides the yearly allocation of one leave type for
// one company.
type CompanyLeavePolicy struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_leave_policies_company_type"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_leave_policies_company_type"`
	DaysPerYear int       `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CompanyLeavePolicy) TableName() string {
	return "company_leave_policies"
}
