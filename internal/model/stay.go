package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StayRecord is one reservation-detail/day subject to the night audit:
// a room night with its tax-inclusive rate, occupancy and meal plan.
type StayRecord struct {
	ID                uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReservationID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"reservation_id"`
	HotelID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"hotel_id"`
	StayDate          time.Time       `gorm:"type:date;not null;index" json:"stay_date"`
	RoomNo            string          `gorm:"type:varchar(20)" json:"room_no"`
	GuestName         string          `gorm:"type:varchar(255)" json:"guest_name"`
	RoomRateInclusive decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"room_rate_inclusive"` // tax-inclusive
	Currency          string          `gorm:"type:varchar(3);not null" json:"currency"`
	Adults            int             `gorm:"not null;default:1" json:"adults"`
	Children          int             `gorm:"not null;default:0" json:"children"`
	MealPlanCode      string          `gorm:"type:varchar(10)" json:"meal_plan_code"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
