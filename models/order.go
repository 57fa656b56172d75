package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is a client order for one fixed date.
type Order struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"clientId"`
	Client    *Client     `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Date      JSONTime    `gorm:"not null" json:"date"`
	Status    string      `gorm:"size:30;default:'open'" json:"status"` // open, delivered, cancelled
	Notes     string      `gorm:"type:text" json:"notes"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}

// OrderItem is one product line on an order.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"orderId"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"productId"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  float64   `gorm:"not null" json:"quantity"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return
}
