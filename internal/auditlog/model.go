package auditlog

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog records a security-relevant mutation: who did what, from where,
// and whether it succeeded.
type AuditLog struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uint          `gorm:"index" json:"user_id"`  // nullable (e.g. failed login)
	EventID   *uint          `gorm:"index" json:"event_id"` // nullable, the event acted on
	Action    string         `gorm:"size:100;not null;index" json:"action"`
	Details   datatypes.JSON `gorm:"type:jsonb" json:"details"`
	IPAddress string         `gorm:"size:45" json:"ip_address"`
	Status    string         `gorm:"size:20;not null;index" json:"status"` // success/failure
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Filter narrows an audit log query; zero values mean "any".
type Filter struct {
	UserID  *uint
	EventID *uint
	Action  string
	Status  string
	Page    int
	Limit   int
}

// Page is one page of audit log rows.
type Page struct {
	Data       []AuditLog `json:"data"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
}
