package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"shopgram/internal/domain/service"
	"shopgram/pkg/errors"
)

// CloudStorageClient stores product images in a GCS bucket. All objects for
// a product live under the prefix "products/<id>/".
type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
	projectID  string
}

func NewCloudStorageClient(ctx context.Context, bucketName, projectID string, credentialsPath string) (*CloudStorageClient, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	return &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
		projectID:  projectID,
	}, nil
}

func productPrefix(productID string) string {
	return fmt.Sprintf("products/%s/", productID)
}

func contentTypeForFilename(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

func (c *CloudStorageClient) UploadProductImage(ctx context.Context, productID, filename string, r io.Reader) (*service.UploadResult, error) {
	objectName := productPrefix(productID) + filepath.Base(filename)

	obj := c.client.Bucket(c.bucketName).Object(objectName)
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentTypeForFilename(filename)
	wc.CacheControl = "public, max-age=86400"

	size, err := io.Copy(wc, r)
	if err != nil {
		wc.Close()
		return nil, errors.StoreUnavailable("Failed to upload image", err)
	}

	if err := wc.Close(); err != nil {
		return nil, errors.StoreUnavailable("Failed to upload image", err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return nil, errors.StoreUnavailable("Failed to publish image", err)
	}

	return &service.UploadResult{
		ObjectName: objectName,
		Size:       size,
	}, nil
}

func (c *CloudStorageClient) ResolveURL(ctx context.Context, objectName string) (string, error) {
	obj := c.client.Bucket(c.bucketName).Object(objectName)
	if _, err := obj.Attrs(ctx); err != nil {
		if err == storage.ErrObjectNotExist {
			return "", errors.ObjectNotFound(objectName, err)
		}
		return "", errors.StoreUnavailable("Failed to resolve image URL", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, objectName), nil
}

// DeleteProductImages removes every object under the product's namespace.
// A delete failure on one object does not abort the rest; the accumulated
// failures come back as a PARTIAL_DELETE error for the caller to log.
func (c *CloudStorageClient) DeleteProductImages(ctx context.Context, productID string) error {
	bucket := c.client.Bucket(c.bucketName)
	it := bucket.Objects(ctx, &storage.Query{Prefix: productPrefix(productID)})

	var failed []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.StoreUnavailable("Failed to list product images", err)
		}

		if err := bucket.Object(attrs.Name).Delete(ctx); err != nil && err != storage.ErrObjectNotExist {
			failed = append(failed, attrs.Name)
		}
	}

	if len(failed) > 0 {
		return errors.PartialDelete(failed)
	}

	return nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}
