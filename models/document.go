package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Document is an uploaded file plus its metadata. The bytes live in
// the storage provider (GCS or local disk); URL points at them.
type Document struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	FileName    string         `gorm:"size:255;not null" json:"fileName"`
	URL         string         `gorm:"size:500;not null" json:"url"`
	ContentType string         `gorm:"size:100" json:"contentType"`
	Size        int64          `json:"size"`
	FileHash    string         `gorm:"size:64;index" json:"fileHash"`
	Tags        datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"tags"`
	UploadedBy  string         `gorm:"size:255" json:"uploadedBy"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}
