package repository

import (
	"context"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HotelRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Hotel, error)
	Create(ctx context.Context, hotel *model.Hotel) error
	AdvanceAuditDate(ctx context.Context, hotelID uuid.UUID, newDate time.Time, updatedBy string) error
}

type hotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) HotelRepository {
	return &hotelRepository{db: db}
}

func (r *hotelRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Hotel, error) {
	var hotel model.Hotel
	if err := GetDB(ctx, r.db).First(&hotel, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (r *hotelRepository) Create(ctx context.Context, hotel *model.Hotel) error {
	return GetDB(ctx, r.db).Create(hotel).Error
}

// AdvanceAuditDate moves the hotel's business-date cursor. Callers only
// invoke this after an audit run with zero posting failures.
func (r *hotelRepository) AdvanceAuditDate(ctx context.Context, hotelID uuid.UUID, newDate time.Time, updatedBy string) error {
	return GetDB(ctx, r.db).Model(&model.Hotel{}).
		Where("id = ?", hotelID).
		Updates(map[string]interface{}{
			"audit_date":            newDate,
			"audit_date_updated_by": updatedBy,
		}).Error
}
