package service

import (
	"context"
	"io"
)

// ImageUpload is a validated binary attachment handed to the lifecycle
// manager by the transport layer.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

type UploadResult struct {
	ObjectName string
	Size       int64
}

// AssetStore abstracts the binary object store. Objects for product P live
// under the namespace (object prefix) "products/<P.id>/".
type AssetStore interface {
	// UploadProductImage stores the bytes under the product's namespace and
	// returns the object name.
	UploadProductImage(ctx context.Context, productID, filename string, r io.Reader) (*UploadResult, error)

	// ResolveURL returns a fetchable URL for a stored object, failing with
	// OBJECT_NOT_FOUND when the object no longer exists.
	ResolveURL(ctx context.Context, objectName string) (string, error)

	// DeleteProductImages removes every object under the product's
	// namespace. An empty namespace is a successful no-op. A failure on one
	// object does not stop the batch; the returned error carries a
	// PartialDeleteError listing what remains.
	DeleteProductImages(ctx context.Context, productID string) error

	Close() error
}
