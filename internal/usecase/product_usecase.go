package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"shopgram/internal/domain/entity"
	"shopgram/internal/domain/repository"
	"shopgram/internal/domain/service"
	"shopgram/pkg/errors"
	"shopgram/pkg/logger"
)

// ProductUseCase orchestrates the product record store and the image asset
// store so that the two stay consistent across create, update and delete.
// There is no transaction spanning the two stores: consistency is
// order-dependent and best-effort, with asset-store failures recovered
// locally and record-store failures surfaced to the caller.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	assets      service.AssetStore
	authorizer  *service.Authorizer
}

func NewProductUseCase(
	productRepo repository.ProductRepository,
	assets service.AssetStore,
	authorizer *service.Authorizer,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		assets:      assets,
		authorizer:  authorizer,
	}
}

// Mutable product fields a client may supply. imageUrl is special-cased:
// a direct value is accepted, but any attached binary overwrites it.
var allowedUpdateFields = map[string]bool{
	"name":         true,
	"imageUrl":     true,
	"price":        true,
	"description":  true,
	"manufacturer": true,
	"category":     true,
	"condition":    true,
	"quantity":     true,
}

// CreateProduct persists the record first and only then attaches the image.
// An asset-store failure never fails the create: the product stays without
// an image and the returned warning tells the caller so.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, actorID string, fields map[string]interface{}, image *service.ImageUpload) (*entity.Product, string, error) {
	if err := uc.authorizer.Authorize(actorID, service.ActionCreateProduct, ""); err != nil {
		return nil, "", err
	}

	if len(fields) == 0 {
		return nil, "", errors.EmptyPayload()
	}

	product := &entity.Product{}
	for key, value := range fields {
		// Unknown keys are dropped on create; imageUrl is owned by the
		// attach step below.
		if !allowedUpdateFields[key] || key == "imageUrl" {
			continue
		}
		if err := applyField(product, key, value); err != nil {
			return nil, "", err
		}
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, "", err
	}

	if image == nil {
		return product, "", nil
	}

	url, err := uc.storeImage(ctx, product.ID, image)
	if err != nil {
		logger.Warn("Image attach failed for product %s: %v", product.ID, err)
		return product, "Product created, but the image could not be stored", nil
	}

	product.ImageURL = url
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, "", err
	}

	return product, "", nil
}

// UpdateProduct applies the patch to the record, then replaces the image
// asset when a new binary is attached. The namespace is cleared before the
// new upload so no stale object stays reachable; if the upload then fails
// the product is briefly image-less, which is the accepted failure mode.
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, actorID, id string, fields map[string]interface{}, image *service.ImageUpload) (*entity.Product, error) {
	if err := uc.authorizer.Authorize(actorID, service.ActionUpdateProduct, ""); err != nil {
		return nil, err
	}

	if len(fields) == 0 && image == nil {
		return nil, errors.EmptyPayload()
	}

	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Reject the whole patch before mutating anything.
	for key := range fields {
		if !allowedUpdateFields[key] {
			return nil, errors.InvalidUpdate(key)
		}
	}

	for key, value := range fields {
		if err := applyField(product, key, value); err != nil {
			return nil, err
		}
	}

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	if image != nil {
		if err := uc.assets.DeleteProductImages(ctx, product.ID); err != nil {
			logger.Warn("Best-effort image cleanup for product %s: %v", product.ID, err)
		}

		url, err := uc.storeImage(ctx, product.ID, image)
		if err != nil {
			return nil, err
		}

		product.ImageURL = url
		if err := uc.productRepo.Update(ctx, product); err != nil {
			return nil, err
		}
	}

	return product, nil
}

// DeleteProduct removes the record and detaches the asset-namespace cleanup
// into a background task. Cleanup failures are logged and never reach the
// caller; the record delete is what decides the outcome.
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, actorID, id string) (*entity.Product, error) {
	if err := uc.authorizer.Authorize(actorID, service.ActionDeleteProduct, ""); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := uc.assets.DeleteProductImages(ctx, product.ID); err != nil {
			logger.Warn("Image cleanup for deleted product %s: %v", product.ID, err)
		}
	}()

	if err := uc.productRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	return product, nil
}

func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

func (uc *ProductUseCase) ListProducts(ctx context.Context, limit, offset int) ([]*entity.Product, int64, error) {
	return uc.productRepo.List(ctx, limit, offset)
}

// storeImage uploads the binary under the product's namespace and resolves
// its public URL.
func (uc *ProductUseCase) storeImage(ctx context.Context, productID string, image *service.ImageUpload) (string, error) {
	result, err := uc.assets.UploadProductImage(ctx, productID, image.Filename, image.Content)
	if err != nil {
		return "", err
	}

	return uc.assets.ResolveURL(ctx, result.ObjectName)
}

func applyField(p *entity.Product, key string, value interface{}) error {
	switch key {
	case "name":
		p.Name = asString(value)
	case "description":
		p.Description = asString(value)
	case "manufacturer":
		p.Manufacturer = asString(value)
	case "category":
		p.Category = asString(value)
	case "condition":
		p.Condition = asString(value)
	case "imageUrl":
		p.ImageURL = asString(value)
	case "price":
		f, err := asFloat(value)
		if err != nil {
			return errors.BadRequest(fmt.Sprintf("Invalid value for %q", key), err)
		}
		p.Price = f
	case "quantity":
		n, err := asInt(value)
		if err != nil {
			return errors.BadRequest(fmt.Sprintf("Invalid value for %q", key), err)
		}
		p.Quantity = n
	}
	return nil
}

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Multipart form fields arrive as strings, JSON bodies as float64; both are
// accepted for the numeric fields.
func asFloat(v interface{}) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case string:
		return strconv.ParseFloat(t, 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

func asInt(v interface{}) (int, error) {
	switch t := v.(type) {
	case float64:
		return int(t), nil
	case int:
		return t, nil
	case string:
		return strconv.Atoi(t)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
