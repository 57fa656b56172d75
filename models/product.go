package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a stock item measured in a Unit.
type Product struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"size:150;not null" json:"name"`
	UnitID    *uuid.UUID `gorm:"type:uuid;index" json:"unitId,omitempty"`
	Unit      *Unit      `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Price     float64    `json:"price"`
	Notes     string     `gorm:"type:text" json:"notes"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
