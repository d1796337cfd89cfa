package repository

import (
	"context"

	"tradepulse/internal/entity"

	"gorm.io/gorm"
)

type tradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a new TradeRepository.
func NewTradeRepository(db *gorm.DB) TradeRepository {
	return &tradeRepository{db: db}
}

func (r *tradeRepository) Create(ctx context.Context, trade *entity.Trade) error {
	return r.db.WithContext(ctx).Create(trade).Error
}

func (r *tradeRepository) FindByID(ctx context.Context, id string) (*entity.Trade, error) {
	var trade entity.Trade
	if err := r.db.WithContext(ctx).First(&trade, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &trade, nil
}

func (r *tradeRepository) FindAll(ctx context.Context) ([]entity.Trade, error) {
	var trades []entity.Trade
	if err := r.db.WithContext(ctx).Order("entry_date DESC").Find(&trades).Error; err != nil {
		return nil, err
	}
	return trades, nil
}

func (r *tradeRepository) Update(ctx context.Context, trade *entity.Trade) error {
	return r.db.WithContext(ctx).Save(trade).Error
}

func (r *tradeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.Trade{}, "id = ?", id).Error
}
