package workweek

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// WeekdaySet stores ISO weekday numbers (1=Monday..7=Sunday) as a JSON array
// column.
type WeekdaySet []int

func (w WeekdaySet) Value() (driver.Value, error) {
	return json.Marshal(w)
}

func (w *WeekdaySet) Scan(value any) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, w)
	case string:
		return json.Unmarshal([]byte(v), w)
	default:
		return fmt.Errorf("unsupported weekday set column type %T", value)
	}
}

type WorkWeek struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	WorkingDays WeekdaySet `gorm:"type:jsonb;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (WorkWeek) TableName() string {
	return "work_weeks"
}
