package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditRunRepository interface {
	Create(ctx context.Context, run *model.AuditRun) error
	Update(ctx context.Context, run *model.AuditRun) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AuditRun, error)
	List(ctx context.Context, hotelID uuid.UUID, page, limit int) ([]model.AuditRun, int64, error)
}

type auditRunRepository struct {
	db *gorm.DB
}

func NewAuditRunRepository(db *gorm.DB) AuditRunRepository {
	return &auditRunRepository{db: db}
}

func (r *auditRunRepository) Create(ctx context.Context, run *model.AuditRun) error {
	return GetDB(ctx, r.db).Create(run).Error
}

func (r *auditRunRepository) Update(ctx context.Context, run *model.AuditRun) error {
	return GetDB(ctx, r.db).Save(run).Error
}

func (r *auditRunRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AuditRun, error) {
	var run model.AuditRun
	if err := GetDB(ctx, r.db).First(&run, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *auditRunRepository) List(ctx context.Context, hotelID uuid.UUID, page, limit int) ([]model.AuditRun, int64, error) {
	var runs []model.AuditRun
	var total int64

	db := GetDB(ctx, r.db).Model(&model.AuditRun{}).Where("hotel_id = ?", hotelID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("started_at DESC").Offset(offset).Limit(limit).Find(&runs).Error; err != nil {
		return nil, 0, err
	}

	return runs, total, nil
}
