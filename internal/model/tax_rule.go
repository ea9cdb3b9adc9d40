package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxBasis enum constants
const (
	TaxBasisBase   = "BASE"   // percentage of the original, unmodified base
	TaxBasisLadder = "LADDER" // percentage of the running total accumulated so far
)

// TaxRule is one step of a hotel's tax ladder. Rules apply in SortOrder;
// with a LADDER basis the order changes the result.
type TaxRule struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	HotelID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"hotel_id"`
	Name        string          `gorm:"type:varchar(100);not null" json:"name"`
	Percentage  decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"percentage"` // e.g. 10 = 10%
	Basis       string          `gorm:"type:varchar(20);not null" json:"basis"`        // BASE, LADDER
	AccountCode string          `gorm:"type:varchar(50)" json:"account_code"`          // remote ledger tax account
	Currency    string          `gorm:"type:varchar(3);not null;index" json:"currency"`
	SortOrder   int             `gorm:"not null;default:0" json:"sort_order"`
	Description string          `gorm:"type:text" json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
