package repository

import (
	"context"

	"tradepulse/internal/entity"

	"gorm.io/gorm"
)

type alertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates a new AlertRepository.
func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(ctx context.Context, alert *entity.PriceAlert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *alertRepository) FindAll(ctx context.Context) ([]entity.PriceAlert, error) {
	var alerts []entity.PriceAlert
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepository) FindActive(ctx context.Context) ([]entity.PriceAlert, error) {
	var alerts []entity.PriceAlert
	if err := r.db.WithContext(ctx).Where("active = ?", true).Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepository) Update(ctx context.Context, alert *entity.PriceAlert) error {
	return r.db.WithContext(ctx).Save(alert).Error
}

func (r *alertRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.PriceAlert{}, id).Error
}
