package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// productsService implements the ProductUsecase interface.
type productsService struct {
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// ProductsServiceParams holds dependencies for ProductsService, injected by Fx.
type ProductsServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewProductsService is the constructor for productsService.
func NewProductsService(params ProductsServiceParams) usecase.ProductUsecase {
	return &productsService{
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

func (srv *productsService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create persists a new catalog record.
func (srv *productsService) Create(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	product := &entity.Product{
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Stock:       input.Stock,
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created", slog.Int64("product_id", product.ID))

	return product, nil
}

// FindAll returns every catalog record.
func (srv *productsService) FindAll(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// FindOne returns the record with the given id.
func (srv *productsService) FindOne(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// Update merges the provided fields onto the existing record.
func (srv *productsService) Update(ctx context.Context, id int64, input *usecase.UpdateProductInput) (*entity.Product, error) {
	product, err := srv.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.PriceCents != nil {
		product.PriceCents = *input.PriceCents
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}

	if err := srv.productRepo.Save(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	srv.log(ctx).Info("Product updated", slog.Int64("product_id", product.ID))

	return product, nil
}

// Remove deletes the record after checking it exists, so a missing id fails
// with ErrProductNotFound before any mutation.
func (srv *productsService) Remove(ctx context.Context, id int64) error {
	if _, err := srv.FindOne(ctx, id); err != nil {
		return err
	}

	if err := srv.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to delete product")
	}

	srv.log(ctx).Info("Product removed", slog.Int64("product_id", id))

	return nil
}
