package model

import "time"

// Script is a channel-specific message template. Variables is derived from
// Content on every write and never edited independently.
type Script struct {
	ID        int        `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Type      string     `db:"type" json:"type"` // channel: SMS, EMAIL, KAKAO, PUSH
	Status    string     `db:"status" json:"status"`
	Subject   string     `db:"subject" json:"subject"`
	Content   string     `db:"content" json:"content"`
	Variables []string   `db:"variables" json:"variables"`
	CreatedBy string     `db:"created_by" json:"created_by"`
	UpdatedBy string     `db:"updated_by" json:"updated_by"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
