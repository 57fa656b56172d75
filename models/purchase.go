package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Purchase is a supplier pickup. It is either date-specific (Date set)
// or day-recurring (Day set). The form enforces mutual exclusivity on
// write; the schema does not forbid both, and Day wins when both are set.
type Purchase struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PickupID   *uuid.UUID     `gorm:"type:uuid;index" json:"pickupId,omitempty"`
	Pickup     *Pickup        `gorm:"foreignKey:PickupID" json:"pickup,omitempty"`
	SupplierID *uuid.UUID     `gorm:"type:uuid;index" json:"supplierId,omitempty"`
	Supplier   *Supplier      `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Date       *JSONTime      `json:"date,omitempty"`
	Day        *Day           `gorm:"size:3" json:"day,omitempty"`
	Notes      string         `gorm:"type:text" json:"notes"`
	Items      []PurchaseItem `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

func (p *Purchase) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// ScheduleDate returns the purchase date as *time.Time for the
// recurrence resolver.
func (p *Purchase) ScheduleDate() *time.Time {
	if p.Date == nil {
		return nil
	}
	t := p.Date.Time()
	return &t
}

// PurchaseItem is one product line on a purchase.
type PurchaseItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PurchaseID uuid.UUID `gorm:"type:uuid;not null;index" json:"purchaseId"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null" json:"productId"`
	Product    *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity   float64   `gorm:"not null" json:"quantity"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (pi *PurchaseItem) BeforeCreate(tx *gorm.DB) (err error) {
	if pi.ID == uuid.Nil {
		pi.ID = uuid.New()
	}
	return
}
