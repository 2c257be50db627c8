package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"type:varchar(100);not null"`
	Domain   string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Location string    `gorm:"type:varchar(100)"`

	// Verified is set by platform admins after checking registration papers.
	Verified     bool      `gorm:"not null;default:false"`
	RegisteredBy uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
