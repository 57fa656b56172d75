package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task is a to-do that can be date-specific or day-recurring, with
// optional links to the record it is about.
type Task struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string     `gorm:"size:255;not null" json:"title"`
	Quantity   float64    `json:"quantity"`
	Date       *JSONTime  `gorm:"index" json:"date,omitempty"`
	Day        *Day       `gorm:"size:3" json:"day,omitempty"`
	ProductID  *uuid.UUID `gorm:"type:uuid" json:"productId,omitempty"`
	Product    *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	OrderID    *uuid.UUID `gorm:"type:uuid" json:"orderId,omitempty"`
	Order      *Order     `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	EntityID   *uuid.UUID `gorm:"type:uuid" json:"entityId,omitempty"`
	Entity     *Entity    `gorm:"foreignKey:EntityID" json:"entity,omitempty"`
	DocumentID *uuid.UUID `gorm:"type:uuid" json:"documentId,omitempty"`
	Document   *Document  `gorm:"foreignKey:DocumentID" json:"document,omitempty"`
	Done       bool       `gorm:"default:false" json:"done"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

// ScheduleDate returns the task date as *time.Time for the
// recurrence resolver.
func (t *Task) ScheduleDate() *time.Time {
	if t.Date == nil {
		return nil
	}
	tt := t.Date.Time()
	return &tt
}
