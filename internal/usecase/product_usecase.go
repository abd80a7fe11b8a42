package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// CreateProductInput defines the data required to create a catalog record.
type CreateProductInput struct {
	Name        string
	Description string
	PriceCents  int64
	Stock       int
}

// UpdateProductInput carries a partial update. Nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string
	Description *string
	PriceCents  *int64
	Stock       *int
}

// ProductUsecase defines plain CRUD over the product catalog.
type ProductUsecase interface {
	// Create persists a new record with fields copied verbatim from input.
	Create(ctx context.Context, input *CreateProductInput) (*entity.Product, error)

	// FindAll returns all records; order is store-defined.
	FindAll(ctx context.Context) ([]*entity.Product, error)

	// FindOne fails with ErrProductNotFound when the id does not resolve.
	FindOne(ctx context.Context, id int64) (*entity.Product, error)

	// Update merges only the provided fields onto the existing record.
	Update(ctx context.Context, id int64, input *UpdateProductInput) (*entity.Product, error)

	// Remove deletes the record; it fails with ErrProductNotFound first when
	// the id does not resolve, without performing any mutation.
	Remove(ctx context.Context, id int64) error
}
