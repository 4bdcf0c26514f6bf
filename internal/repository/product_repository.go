package repository

import (
	"context"

	"github.com/LCtech96/EmilyBoutique/internal/domain/model"

	"github.com/cockroachdb/errors"
)

var ErrNotFound = errors.New("not found")

// Categoryは大文字小文字を区別しない部分一致
type ProductListQuery struct {
	Page     int
	Limit    int
	Q        string
	Category string
	Sort     string
}

type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id string) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id string) error
}
