package models

import "time"

// Click is a single recorded visit on a short link.
type Click struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LinkID    string    `gorm:"index;not null" json:"link_id"`
	Referer   string    `json:"referer"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
}

// ClickEvent travels over the tracking channel from the redirect path to
// the click workers. The redirect response never waits on it.
type ClickEvent struct {
	LinkID    string
	Referer   string
	UserAgent string
	IP        string
	Timestamp time.Time
}
