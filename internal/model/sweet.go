package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sweet is a sellable catalog item. Quantity is only ever mutated through
// the conditional increment/decrement statements in the repository, so it
// can never be observed negative.
type Sweet struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"index;not null"`
	Category  string          `gorm:"index;not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity  int             `gorm:"not null;default:0"`
	ImageURL  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Sweet) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
