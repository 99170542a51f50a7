package service

import (
	"context"
	"encoding/json"
	"time"

	"warehouse/internal/cache"
	"warehouse/internal/logging"
	"warehouse/internal/models"
	"warehouse/internal/repository"
)

const ListTTL = 5 * time.Minute

// ProductList serves paginated listings through the cache. Mutations do not
// invalidate entries, so a page can be stale for up to ListTTL.
type ProductList struct {
	Repo  *repository.ProductRepo
	Cache cache.Cache
}

func (s *ProductList) GetPage(ctx context.Context, pageNumber, pageSize int, sortField string, ascending bool) ([]models.Product, error) {
	key := cache.PageKey{
		PageNumber: pageNumber,
		PageSize:   pageSize,
		SortField:  sortField,
		Ascending:  ascending,
	}.String()

	if b, ok := s.Cache.Get(ctx, key); ok {
		var items []models.Product
		if err := json.Unmarshal(b, &items); err == nil {
			return items, nil
		}
		logging.FromContext(ctx).Warn("dropping undecodable cache entry", "key", key)
	}

	items, err := s.Repo.ListPage(ctx, pageNumber, pageSize, sortField, ascending)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(items); err == nil {
		s.Cache.Set(ctx, key, b, ListTTL)
	}

	return items, nil
}
