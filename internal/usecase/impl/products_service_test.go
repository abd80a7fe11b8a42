package impl

import (
	"context"
	"testing"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProductsService(t *testing.T) usecase.ProductUsecase {
	t.Helper()

	return NewProductsService(ProductsServiceParams{
		ProductRepo: newMemoryProductRepo(),
		Logger:      testLogger(),
	})
}

func TestProductsService_CreateAndFindOne(t *testing.T) {
	service := createTestProductsService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, &usecase.CreateProductInput{
		Name:        "Keyboard",
		Description: "Tenkeyless",
		PriceCents:  7900,
		Stock:       12,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	found, err := service.FindOne(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keyboard", found.Name)
	assert.Equal(t, int64(7900), found.PriceCents)
	assert.Equal(t, 12, found.Stock)
}

func TestProductsService_FindAll(t *testing.T) {
	service := createTestProductsService(t)
	ctx := context.Background()

	names := []string{"Keyboard", "Mouse", "Monitor"}
	for _, name := range names {
		_, err := service.Create(ctx, &usecase.CreateProductInput{Name: name, PriceCents: 100})
		require.NoError(t, err)
	}

	products, err := service.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
}

func TestProductsService_FindOne_NotFound(t *testing.T) {
	service := createTestProductsService(t)

	_, err := service.FindOne(context.Background(), 404)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductsService_Update_MergesOnlyProvidedFields(t *testing.T) {
	service := createTestProductsService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, &usecase.CreateProductInput{
		Name:        "Keyboard",
		Description: "Tenkeyless",
		PriceCents:  7900,
		Stock:       12,
	})
	require.NoError(t, err)

	newPrice := int64(6900)
	updated, err := service.Update(ctx, created.ID, &usecase.UpdateProductInput{
		PriceCents: &newPrice,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(6900), updated.PriceCents)
	assert.Equal(t, "Keyboard", updated.Name)
	assert.Equal(t, "Tenkeyless", updated.Description)
	assert.Equal(t, 12, updated.Stock)
}

func TestProductsService_Update_NotFound(t *testing.T) {
	service := createTestProductsService(t)

	name := "Ghost"
	_, err := service.Update(context.Background(), 404, &usecase.UpdateProductInput{Name: &name})
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductsService_Remove(t *testing.T) {
	service := createTestProductsService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, &usecase.CreateProductInput{Name: "Keyboard", PriceCents: 7900})
	require.NoError(t, err)

	require.NoError(t, service.Remove(ctx, created.ID))

	_, err = service.FindOne(ctx, created.ID)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)

	// Deleting again reports not found.
	err = service.Remove(ctx, created.ID)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}
