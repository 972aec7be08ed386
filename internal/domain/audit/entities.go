package audit

import "time"

type Action string

const (
	ActionCreated  Action = "CREATED"
	ActionApproved Action = "APPROVED"
	ActionRejected Action = "REJECTED"
)

// Log is one immutable audit-trail entry. Rows are only ever inserted,
// alongside the workflow transition they record and in the same transaction.
type Log struct {
	ID            uint64 `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID uint64 `gorm:"index:idx_logs_application" json:"-"`
	Action        Action `gorm:"type:enum('CREATED','APPROVED','REJECTED')" json:"action"`
	PerformedBy   uint64 `json:"performed_by"`
	Notes         string `gorm:"type:text" json:"notes,omitempty"`
	// Metadata holds the action-specific JSON snapshot (approved terms,
	// rejection reason, and so on).
	Metadata  string    `gorm:"type:json" json:"metadata,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Log) TableName() string { return "loan_application_logs" }
