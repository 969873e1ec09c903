package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Metadata keys used on Link records.
const (
	MetaQRCode  = "qrCode"  // data URL of the rendered QR image
	MetaCaption = "caption" // bulk-import caption the alias was derived from
	MetaSource  = "source"  // creation provenance, e.g. "bulk"
)

// Link maps a short code to its destination URL. The unique index on
// short_code is the authoritative uniqueness guard; the allocator's
// existence probe is only an optimization.
type Link struct {
	ID          string            `gorm:"primaryKey;type:text" json:"id"`
	ShortCode   string            `gorm:"size:50;uniqueIndex;not null" json:"short_code"`
	OriginalURL string            `gorm:"type:text;not null" json:"original_url"`
	UserID      *string           `gorm:"index" json:"user_id,omitempty"`
	ClickCount  int64             `gorm:"not null;default:0" json:"click_count"`
	CreatedAt   time.Time         `json:"created_at"`
	Metadata    datatypes.JSONMap `json:"metadata"`

	Clicks []Click `gorm:"foreignKey:LinkID;constraint:OnDelete:CASCADE" json:"-"`
}

func (l *Link) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// QRCode returns the stored QR data URL, or "" if it has not been
// generated yet.
func (l *Link) QRCode() string {
	if l.Metadata == nil {
		return ""
	}
	if v, ok := l.Metadata[MetaQRCode].(string); ok {
		return v
	}
	return ""
}
