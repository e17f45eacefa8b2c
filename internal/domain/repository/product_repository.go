package repository

import (
	"context"

	"shopgram/internal/domain/entity"
)

// ProductRepository persists full product records. Update is a full-state
// replace; callers supply the complete desired record.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, int64, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}
