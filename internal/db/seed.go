package db

import (
	"context"

	"countyapi/internal/models"
)

// CountItems возвращает число строк в items.
func (g *Gateway) CountItems(ctx context.Context) (int64, error) {
	tx, cancel := g.conn(ctx)
	defer cancel()
	var count int64
	if err := tx.Model(&models.Item{}).Count(&count).Error; err != nil {
		return 0, g.fail("count items", err)
	}
	return count, nil
}

// SeedItems заполняет items, только если таблица пуста.
// Возвращает число вставленных строк.
func SeedItems(ctx context.Context, g *Gateway, items []models.Item) (int, error) {
	count, err := g.CountItems(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	return g.InsertItemsBatch(ctx, items)
}
