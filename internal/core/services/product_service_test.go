package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jedzonko/recipes-api/internal/core/domain"
	"github.com/jedzonko/recipes-api/internal/core/ports"
)

func TestCreateProductRequiresName(t *testing.T) {
	env := newTestEnv(t, UserServiceConfig{})
	env.mustRegister(t, "alice@example.com")

	_, err := env.Products.Create(context.Background(), "alice@example.com", ports.CreateProductInput{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateProductOwnership(t *testing.T) {
	env := newTestEnv(t, UserServiceConfig{})
	env.mustRegister(t, "alice@example.com")
	env.mustRegister(t, "bob@example.com")
	product := env.mustProduct(t, "alice@example.com", "Flour")

	ctx := context.Background()

	_, err := env.Products.Update(ctx, "bob@example.com", product.ID, ports.UpdateProductInput{
		Name: strPtr("Stolen Flour"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := env.Products.Update(ctx, "alice@example.com", product.ID, ports.UpdateProductInput{
		Name: strPtr("Wheat Flour"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Wheat Flour", updated.Name)
	assert.Equal(t, "5901234123457", updated.Barcode)
}

func TestDeleteProductOwnership(t *testing.T) {
	env := newTestEnv(t, UserServiceConfig{})
	env.mustRegister(t, "alice@example.com")
	env.mustRegister(t, "bob@example.com")
	product := env.mustProduct(t, "alice@example.com", "Flour")

	ctx := context.Background()

	err := env.Products.Delete(ctx, "bob@example.com", product.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, env.Products.Delete(ctx, "alice@example.com", product.ID))

	_, err = env.Products.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindProductByUnknownID(t *testing.T) {
	env := newTestEnv(t, UserServiceConfig{})

	_, err := env.Products.FindByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
