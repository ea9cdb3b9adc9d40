package repository

import (
	"context"
	"errors"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MealRepository interface {
	GetPrices(ctx context.Context, hotelID uuid.UUID) (*model.MealAllocationPrice, error)
	UpsertPrices(ctx context.Context, prices *model.MealAllocationPrice) error
	ListPlanDefinitions(ctx context.Context) ([]model.MealPlanDefinition, error)
	CreatePlanDefinition(ctx context.Context, plan *model.MealPlanDefinition) error
}

type mealRepository struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepository{db: db}
}

func (r *mealRepository) GetPrices(ctx context.Context, hotelID uuid.UUID) (*model.MealAllocationPrice, error) {
	var prices model.MealAllocationPrice
	if err := GetDB(ctx, r.db).First(&prices, "hotel_id = ?", hotelID).Error; err != nil {
		return nil, err
	}
	return &prices, nil
}

func (r *mealRepository) UpsertPrices(ctx context.Context, prices *model.MealAllocationPrice) error {
	db := GetDB(ctx, r.db)

	var existing model.MealAllocationPrice
	err := db.First(&existing, "hotel_id = ?", prices.HotelID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(prices).Error
	}
	if err != nil {
		return err
	}

	prices.ID = existing.ID
	prices.CreatedAt = existing.CreatedAt
	return db.Save(prices).Error
}

func (r *mealRepository) ListPlanDefinitions(ctx context.Context) ([]model.MealPlanDefinition, error) {
	var plans []model.MealPlanDefinition
	if err := GetDB(ctx, r.db).Order("code ASC").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *mealRepository) CreatePlanDefinition(ctx context.Context, plan *model.MealPlanDefinition) error {
	return GetDB(ctx, r.db).Create(plan).Error
}
