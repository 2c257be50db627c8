package holiday

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Holiday struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_holidays_company_date"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_holidays_company_date"`
	Name      string    `gorm:"type:varchar(100);not null"`

	// Optional holidays are observed but not mandatorily non-working; the
	// calendar shows them but flags them in the tooltip.
	Optional bool `gorm:"not null;default:false"`
	// Recurring entries repeat their month/day every year.
	Recurring bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
