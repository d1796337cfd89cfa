package repository

import (
	"context"

	"tradepulse/internal/entity"

	"gorm.io/gorm"
)

type watchlistRepository struct {
	db *gorm.DB
}

// NewWatchlistRepository creates a new WatchlistRepository.
func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

func (r *watchlistRepository) Add(ctx context.Context, item *entity.WatchlistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *watchlistRepository) FindAll(ctx context.Context) ([]entity.WatchlistItem, error) {
	var items []entity.WatchlistItem
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *watchlistRepository) DeleteBySymbol(ctx context.Context, symbol string) error {
	return r.db.WithContext(ctx).Delete(&entity.WatchlistItem{}, "symbol = ?", symbol).Error
}
