package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Site is a location refilled on a fixed weekday. Sites are always
// day-recurring; there is no date-specific variant.
type Site struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SiteName   string    `gorm:"size:150;not null" json:"siteName"`
	Day        Day       `gorm:"size:3;not null" json:"day"`
	Supervisor string    `gorm:"size:100" json:"supervisor"`
	Refills    []Refill  `gorm:"foreignKey:SiteID;constraint:OnDelete:CASCADE" json:"refills"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (s *Site) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// Refill is a product quantity delivered to a site on its refill day.
type Refill struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SiteID    uuid.UUID `gorm:"type:uuid;not null;index" json:"siteId"`
	Site      *Site     `gorm:"foreignKey:SiteID" json:"site,omitempty"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"productId"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  float64   `gorm:"not null" json:"quantity"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Refill) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
