package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditRun status constants, in lifecycle order.
const (
	RunStatusPreparingFX  = "PREPARING_FX"
	RunStatusPostingStays = "POSTING_STAYS"
	RunStatusCompleted    = "COMPLETED"
	RunStatusFailed       = "FAILED"
)

// AuditRun records the outcome of one night-audit execution. The live
// counters exist only in memory during the run; this row is the history
// entry written as the run progresses and finalized at the end.
type AuditRun struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	HotelID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"hotel_id"`
	AuditDate   time.Time  `gorm:"type:date;not null;index" json:"audit_date"`
	Status      string     `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalStays  int        `gorm:"not null;default:0" json:"total_stays"`
	PostedStays int        `gorm:"not null;default:0" json:"posted_stays"`
	FailedStays int        `gorm:"not null;default:0" json:"failed_stays"`
	Failures    string     `gorm:"type:jsonb" json:"failures"` // JSON array of per-stay error messages
	Committed   bool       `gorm:"not null;default:false" json:"committed"`
	StartedBy   string     `gorm:"type:varchar(100)" json:"started_by"`
	StartedAt   time.Time  `gorm:"index" json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at"`
}
