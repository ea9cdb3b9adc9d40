package model

import (
	"time"

	"github.com/google/uuid"
)

// Hotel holds the property-wide settings the night audit runs against.
// AuditDate is the business-date cursor: it only moves forward, by one day,
// when an audit run finishes with zero posting failures.
type Hotel struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name               string    `gorm:"type:varchar(255);not null" json:"name"`
	BaseCurrency       string    `gorm:"type:varchar(3);not null" json:"base_currency"`
	AuditDate          time.Time `gorm:"type:date;not null" json:"audit_date"`
	GuestLedgerAccount string    `gorm:"type:varchar(50);not null" json:"guest_ledger_account"` // remote ledger account code
	RoomRevenueAccount string    `gorm:"type:varchar(50);not null" json:"room_revenue_account"`
	AuditDateUpdatedBy string    `gorm:"type:varchar(100)" json:"audit_date_updated_by"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
