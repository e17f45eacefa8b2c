package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopgram/internal/domain/service"
	"shopgram/pkg/errors"
)

func newProductUseCase(repo *fakeProductRepo, assets *fakeAssetStore) *ProductUseCase {
	return NewProductUseCase(repo, assets, service.NewAuthorizer())
}

func chairFields() map[string]interface{} {
	return map[string]interface{}{
		"name":         "Chair",
		"description":  "A wooden chair",
		"price":        10.0,
		"manufacturer": "Acme",
		"category":     "furniture",
		"condition":    "new",
		"quantity":     3.0,
	}
}

func imageUpload(filename string) *service.ImageUpload {
	return &service.ImageUpload{
		Filename: filename,
		Content:  strings.NewReader("image-bytes"),
	}
}

func TestCreateProductWithoutImage(t *testing.T) {
	repo := newFakeProductRepo()
	uc := newProductUseCase(repo, newFakeAssetStore())

	product, warning, err := uc.CreateProduct(context.Background(), "user-1", chairFields(), nil)
	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.NotEmpty(t, product.ID)
	assert.Empty(t, product.ImageURL)

	// Round-trip: all client fields survive, id is server-assigned.
	stored, err := uc.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chair", stored.Name)
	assert.Equal(t, "A wooden chair", stored.Description)
	assert.Equal(t, 10.0, stored.Price)
	assert.Equal(t, "Acme", stored.Manufacturer)
	assert.Equal(t, "furniture", stored.Category)
	assert.Equal(t, "new", stored.Condition)
	assert.Equal(t, 3, stored.Quantity)
	assert.Empty(t, stored.ImageURL)
}

func TestCreateProductEmptyPayload(t *testing.T) {
	uc := newProductUseCase(newFakeProductRepo(), newFakeAssetStore())

	_, _, err := uc.CreateProduct(context.Background(), "user-1", map[string]interface{}{}, nil)
	assert.True(t, errors.Is(err, errors.CodeEmptyPayload))
}

func TestCreateProductRequiresActor(t *testing.T) {
	uc := newProductUseCase(newFakeProductRepo(), newFakeAssetStore())

	_, _, err := uc.CreateProduct(context.Background(), "", chairFields(), nil)
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))
}

func TestCreateProductWithImage(t *testing.T) {
	repo := newFakeProductRepo()
	assets := newFakeAssetStore()
	uc := newProductUseCase(repo, assets)

	product, warning, err := uc.CreateProduct(context.Background(), "user-1", chairFields(), imageUpload("chair.png"))
	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.Contains(t, product.ImageURL, product.ID)
	assert.Len(t, assets.objectsUnder(product.ID), 1)

	stored, err := uc.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ImageURL, stored.ImageURL)
}

func TestCreateProductImageFailureDoesNotFailCreate(t *testing.T) {
	repo := newFakeProductRepo()
	assets := newFakeAssetStore()
	assets.uploadErr = errors.StoreUnavailable("bucket down", nil)
	uc := newProductUseCase(repo, assets)

	product, warning, err := uc.CreateProduct(context.Background(), "user-1", chairFields(), imageUpload("chair.png"))
	require.NoError(t, err)
	assert.NotEmpty(t, warning)
	assert.Empty(t, product.ImageURL)

	stored, err := uc.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ImageURL)
}

func TestCreateProductIgnoresUnknownFields(t *testing.T) {
	uc := newProductUseCase(newFakeProductRepo(), newFakeAssetStore())

	fields := chairFields()
	fields["ownerSecret"] = "hunter2"

	product, _, err := uc.CreateProduct(context.Background(), "user-1", fields, nil)
	require.NoError(t, err)
	assert.Equal(t, "Chair", product.Name)
}

func TestUpdateProductDisallowedFieldLeavesRecordUnchanged(t *testing.T) {
	repo := newFakeProductRepo()
	uc := newProductUseCase(repo, newFakeAssetStore())

	product, _, err := uc.CreateProduct(context.Background(), "user-1", chairFields(), nil)
	require.NoError(t, err)

	_, err = uc.UpdateProduct(context.Background(), "user-1", product.ID, map[string]interface{}{
		"name":        "Hacked",
		"ownerSecret": "hunter2",
	}, nil)
	assert.True(t, errors.Is(err, errors.CodeInvalidUpdate))

	stored, err := uc.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chair", stored.Name)
}

func TestUpdateProductNotFound(t *testing.T) {
	uc := newProductUseCase(newFakeProductRepo(), newFakeAssetStore())

	_, err := uc.UpdateProduct(context.Background(), "user-1", "missing", map[string]interface{}{"name": "X"}, nil)
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestUpdateProductAppliesPatch(t *testing.T) {
	uc := newProductUseCase(newFakeProductRepo(), newFakeAssetStore())

	product, _, err := uc.CreateProduct(context.Background(), "user-1", chairFields(), nil)
	require.NoError(t, err)

	// Form values arrive as strings, JSON values as numbers; both coerce.
	updated, err := uc.UpdateProduct(context.Background(), "user-1", product.ID, map[string]interface{}{
		"price":    "12.50",
		"quantity": 7.0,
		"name":     "Armchair",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 12.5, updated.Price)
	assert.Equal(t, 7, updated.Quantity)
	assert.Equal(t, "Armchair", updated.Name)
}

func TestUpdateProductReplacesImage(t *testing.T) {
	repo := newFakeProductRepo()
	assets := newFakeAssetStore()
	uc := newProductUseCase(repo, assets)

	product, _, err := uc.CreateProduct(context.Background(), "user-1", chairFields(), imageUpload("chair.png"))
	require.NoError(t, err)
	oldURL := product.ImageURL

	updated, err := uc.UpdateProduct(context.Background(), "user-1", product.ID, map[string]interface{}{}, imageUpload("chair2.jpg"))
	require.NoError(t, err)

	// Exactly the new object remains reachable under the namespace.
	objects := assets.objectsUnder(product.ID)
	require.Len(t, objects, 1)
	assert.Contains(t, objects[0], "chair2.jpg")
	assert.NotEqual(t, oldURL, updated.ImageURL)
	assert.Contains(t, updated.ImageURL, "chair2.jpg")
}

func TestUpdateProductSameFilenameLeavesOneObject(t *testing.T) {
	repo := newFakeProductRepo()
	assets := newFakeAssetStore()
	uc := newProductUseCase(repo, assets)

	product, _, err := uc.CreateProduct(context.Background(), "user-1", chairFields(), imageUpload("chair.png"))
	require.NoError(t, err)

	_, err = uc.UpdateProduct(context.Background(), "user-1", product.ID, map[string]interface{}{}, imageUpload("chair.png"))
	require.NoError(t, err)
	assert.Len(t, assets.objectsUnder(product.ID), 1)
}

func TestUpdateProductWithoutImagePreservesExisting(t *testing.T) {
	repo := newFakeProductRepo()
	assets := newFakeAssetStore()
	uc := newProductUseCase(repo, assets)

	product, _, err := uc.CreateProduct(context.Background(), "user-1", chairFields(), imageUpload("chair.png"))
	require.NoError(t, err)

	updated, err := uc.UpdateProduct(context.Background(), "user-1", product.ID, map[string]interface{}{"name": "Armchair"}, nil)
	require.NoError(t, err)
	assert.Equal(t, product.ImageURL, updated.ImageURL)
	assert.Len(t, assets.objectsUnder(product.ID), 1)
}

func TestDeleteProduct(t *testing.T) {
	repo := newFakeProductRepo()
	assets := newFakeAssetStore()
	uc := newProductUseCase(repo, assets)

	product, _, err := uc.CreateProduct(context.Background(), "user-1", chairFields(), imageUpload("chair.png"))
	require.NoError(t, err)

	deleted, err := uc.DeleteProduct(context.Background(), "user-1", product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, deleted.ID)
	assert.Equal(t, "Chair", deleted.Name)

	_, err = uc.GetProduct(context.Background(), product.ID)
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	// Namespace cleanup is detached from the mutation.
	assert.Eventually(t, func() bool {
		return len(assets.objectsUnder(product.ID)) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestDeleteProductCleanupFailureDoesNotAlterResponse(t *testing.T) {
	repo := newFakeProductRepo()
	assets := newFakeAssetStore()
	uc := newProductUseCase(repo, assets)

	product, _, err := uc.CreateProduct(context.Background(), "user-1", chairFields(), imageUpload("chair.png"))
	require.NoError(t, err)

	assets.deleteErr = errors.PartialDelete([]string{"products/" + product.ID + "/chair.png"})

	deleted, err := uc.DeleteProduct(context.Background(), "user-1", product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, deleted.ID)

	// The record is gone even though the background cleanup failed; the
	// orphaned object stays behind and is only logged.
	_, err = uc.GetProduct(context.Background(), product.ID)
	assert.True(t, errors.Is(err, errors.CodeNotFound))
	assert.Len(t, assets.objectsUnder(product.ID), 1)
}

func TestUpdateProductImageReplaceSurvivesCleanupFailure(t *testing.T) {
	repo := newFakeProductRepo()
	assets := newFakeAssetStore()
	uc := newProductUseCase(repo, assets)

	product, _, err := uc.CreateProduct(context.Background(), "user-1", chairFields(), imageUpload("chair.png"))
	require.NoError(t, err)

	// Namespace clearing is best-effort; a failure must not stop the upload.
	assets.deleteErr = errors.PartialDelete([]string{"products/" + product.ID + "/chair.png"})

	updated, err := uc.UpdateProduct(context.Background(), "user-1", product.ID, map[string]interface{}{}, imageUpload("chair2.jpg"))
	require.NoError(t, err)
	assert.Contains(t, updated.ImageURL, "chair2.jpg")

	stored, err := uc.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.ImageURL, stored.ImageURL)
}

func TestCreateProductRepositoryFailureSurfaces(t *testing.T) {
	repo := newFakeProductRepo()
	repo.createErr = errors.Internal("Failed to create product", nil)
	uc := newProductUseCase(repo, newFakeAssetStore())

	_, _, err := uc.CreateProduct(context.Background(), "user-1", chairFields(), nil)
	assert.True(t, errors.Is(err, errors.CodeInternal))
}

func TestUpdateProductRepositoryFailureSurfaces(t *testing.T) {
	repo := newFakeProductRepo()
	uc := newProductUseCase(repo, newFakeAssetStore())

	product, _, err := uc.CreateProduct(context.Background(), "user-1", chairFields(), nil)
	require.NoError(t, err)

	repo.updateErr = errors.Internal("Failed to update product", nil)

	_, err = uc.UpdateProduct(context.Background(), "user-1", product.ID, map[string]interface{}{"name": "X"}, nil)
	assert.True(t, errors.Is(err, errors.CodeInternal))
}

func TestDeleteProductNotFound(t *testing.T) {
	uc := newProductUseCase(newFakeProductRepo(), newFakeAssetStore())

	_, err := uc.DeleteProduct(context.Background(), "user-1", "missing")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestInvalidIDDistinctFromNotFound(t *testing.T) {
	uc := newProductUseCase(newFakeProductRepo(), newFakeAssetStore())

	_, err := uc.GetProduct(context.Background(), "bad/id")
	assert.True(t, errors.Is(err, errors.CodeInvalidID))

	_, err = uc.GetProduct(context.Background(), "missing")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}
