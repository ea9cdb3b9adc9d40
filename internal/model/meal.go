package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Meal type constants
const (
	MealBreakfast = "BREAKFAST"
	MealLunch     = "LUNCH"
	MealDinner    = "DINNER"
)

// Well-known meal plan short codes (fallback table when a code is missing
// from the master list)
const (
	PlanRoomOnly     = "RO"
	PlanBedBreakfast = "BB"
	PlanHalfBoard    = "HB"
	PlanFullBoard    = "FB"
	PlanAllInclusive = "AI"
)

// MealPlanDefinition maps a rate-plan short code to the meals it includes.
type MealPlanDefinition struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code             string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"code"`
	DisplayName      string    `gorm:"type:varchar(100);not null" json:"display_name"`
	IncludeBreakfast bool      `gorm:"not null;default:false" json:"include_breakfast"`
	IncludeLunch     bool      `gorm:"not null;default:false" json:"include_lunch"`
	IncludeDinner    bool      `gorm:"not null;default:false" json:"include_dinner"`
	IsAllInclusive   bool      `gorm:"not null;default:false" json:"is_all_inclusive"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// MealAllocationPrice holds a hotel's per-person meal allocation costs and
// the revenue accounts each meal component posts to.
type MealAllocationPrice struct {
	ID                  uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	HotelID             uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"hotel_id"`
	Currency            string          `gorm:"type:varchar(3);not null" json:"currency"`
	BreakfastPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"breakfast_price"`
	LunchPrice          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"lunch_price"`
	DinnerPrice         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"dinner_price"`
	BreakfastAccount    string          `gorm:"type:varchar(50)" json:"breakfast_account"`
	LunchAccount        string          `gorm:"type:varchar(50)" json:"lunch_account"`
	DinnerAccount       string          `gorm:"type:varchar(50)" json:"dinner_account"`
	AllInclusiveAccount string          `gorm:"type:varchar(50)" json:"all_inclusive_account"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}
