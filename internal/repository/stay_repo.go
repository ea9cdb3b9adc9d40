package repository

import (
	"context"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StayRepository interface {
	Create(ctx context.Context, stay *model.StayRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.StayRecord, error)
	ListForDate(ctx context.Context, hotelID uuid.UUID, date time.Time) ([]model.StayRecord, error)
	List(ctx context.Context, hotelID uuid.UUID, page, limit int) ([]model.StayRecord, int64, error)
}

type stayRepository struct {
	db *gorm.DB
}

func NewStayRepository(db *gorm.DB) StayRepository {
	return &stayRepository{db: db}
}

func (r *stayRepository) Create(ctx context.Context, stay *model.StayRecord) error {
	return GetDB(ctx, r.db).Create(stay).Error
}

func (r *stayRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.StayRecord, error) {
	var stay model.StayRecord
	if err := GetDB(ctx, r.db).First(&stay, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &stay, nil
}

// ListForDate returns the stay records the night audit will post for the
// given business date. Ordering is stable so progress indexes line up
// between runs over the same data.
func (r *stayRepository) ListForDate(ctx context.Context, hotelID uuid.UUID, date time.Time) ([]model.StayRecord, error) {
	var stays []model.StayRecord
	day := date.Format("2006-01-02")
	if err := GetDB(ctx, r.db).
		Where("hotel_id = ? AND stay_date = ?::date", hotelID, day).
		Order("created_at ASC, id ASC").
		Find(&stays).Error; err != nil {
		return nil, err
	}
	return stays, nil
}

func (r *stayRepository) List(ctx context.Context, hotelID uuid.UUID, page, limit int) ([]model.StayRecord, int64, error) {
	var stays []model.StayRecord
	var total int64

	db := GetDB(ctx, r.db).Model(&model.StayRecord{}).Where("hotel_id = ?", hotelID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("stay_date DESC, created_at DESC").Offset(offset).Limit(limit).Find(&stays).Error; err != nil {
		return nil, 0, err
	}

	return stays, total, nil
}
