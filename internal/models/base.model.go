package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseUUIDModel generates its id application-side so callers know the
// identifier before persistence completes. Rows are hard deleted; dependent
// records are removed by ON DELETE CASCADE constraints.
type BaseUUIDModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime"        json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"        json:"updated_at"`
}

func (m *BaseUUIDModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
