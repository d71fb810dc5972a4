package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
)

func newProductFixture(t *testing.T) (ProductService, *fakeProducts, *fakeStorage, *dto.ProductResponse) {
	t.Helper()
	products := newFakeProducts()
	storage := &fakeStorage{}
	svc := NewProductService(products, storage, zerolog.Nop())

	created, err := svc.CreateProduct(context.Background(), 1, &dto.CreateProductRequest{
		Category: "electronics",
		Title:    "Laptop",
		Feature1: "8GB RAM",
		Price:    450.5,
	}, ProductImages{upload("front.jpg"), nil, upload("side.jpg"), nil})
	require.NoError(t, err)
	return svc, products, storage, created
}

func TestCreateProduct(t *testing.T) {
	_, _, storage, created := newProductFixture(t)

	assert.Equal(t, int64(1), created.UserID)
	assert.Equal(t, "Laptop", created.Title)
	assert.Equal(t, 450.5, created.Price)
	assert.False(t, created.IsSold)
	require.NotNil(t, created.Image1)
	assert.Equal(t, "/media/products/front.jpg", *created.Image1)
	assert.Nil(t, created.Image2)
	assert.Equal(t, []string{"products/front.jpg", "products/side.jpg"}, storage.saved)
}

func TestCreateProductInvalidCategory(t *testing.T) {
	svc, _, storage, _ := newProductFixture(t)

	_, err := svc.CreateProduct(context.Background(), 1, &dto.CreateProductRequest{Category: "cars", Title: "x"}, ProductImages{upload("a.jpg")})
	assert.Equal(t, ErrInvalidCategory, err)
	assert.Len(t, storage.saved, 2)
}

func TestProductOwnership(t *testing.T) {
	svc, products, _, created := newProductFixture(t)
	ctx := context.Background()

	_, err := svc.UpdateProduct(ctx, created.ID, 2, &dto.UpdateProductRequest{Title: strPtr("Mine now")}, ProductImages{})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	_, err = svc.MarkAsSold(ctx, created.ID, 2)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.DeleteProduct(ctx, created.ID, 2), apperrors.ErrPermissionDenied)
	assert.Equal(t, "Laptop", products.products[created.ID].Title)

	sold, err := svc.MarkAsSold(ctx, created.ID, 1)
	require.NoError(t, err)
	assert.True(t, sold.IsSold)

	_, err = svc.MarkAsSold(ctx, 999, 1)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestUpdateProductReplacesOnlyUploadedSlots(t *testing.T) {
	svc, _, storage, created := newProductFixture(t)

	price := 400.0
	updated, err := svc.UpdateProduct(context.Background(), created.ID, 1, &dto.UpdateProductRequest{
		Title: strPtr("Laptop (used)"),
		Price: &price,
	}, ProductImages{nil, nil, upload("back.jpg"), nil})
	require.NoError(t, err)

	assert.Equal(t, "Laptop (used)", updated.Title)
	assert.Equal(t, 400.0, updated.Price)
	assert.Equal(t, "8GB RAM", updated.Feature1)
	assert.Equal(t, "/media/products/front.jpg", *updated.Image1)
	assert.Equal(t, "/media/products/back.jpg", *updated.Image3)
	assert.Equal(t, []string{"products/side.jpg"}, storage.deleted)

	_, err = svc.UpdateProduct(context.Background(), created.ID, 1, &dto.UpdateProductRequest{Category: strPtr("cars")}, ProductImages{})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDeleteProductRemovesImages(t *testing.T) {
	svc, products, storage, created := newProductFixture(t)

	require.NoError(t, svc.DeleteProduct(context.Background(), created.ID, 1))
	assert.Empty(t, products.products)
	assert.ElementsMatch(t, []string{"products/front.jpg", "products/side.jpg"}, storage.deleted)
}

func TestListProducts(t *testing.T) {
	svc, _, _, _ := newProductFixture(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, 2, &dto.CreateProductRequest{Category: "books", Title: "Calculus"}, ProductImages{})
	require.NoError(t, err)

	all, err := svc.ListProducts(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Calculus", all[0].Title)

	books, err := svc.ListProductsByCategory(ctx, "books")
	require.NoError(t, err)
	require.Len(t, books, 1)

	_, err = svc.ListProductsByCategory(ctx, "cars")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	_, err = svc.ListProducts(ctx, "cars")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
