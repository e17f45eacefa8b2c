package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"shopgram/internal/domain/entity"
	"shopgram/internal/domain/service"
	"shopgram/pkg/errors"
)

type fakeProductRepo struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	seq       int
	createErr error
	updateErr error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products: make(map[string]*entity.Product),
	}
}

func cloneProduct(p *entity.Product) *entity.Product {
	cp := *p
	cp.Likes = append([]entity.Like(nil), p.Likes...)
	cp.Comments = append([]entity.Comment(nil), p.Comments...)
	return &cp
}

func validFakeID(id string) bool {
	return id != "" && !strings.Contains(id, "/")
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}

	r.seq++
	product.ID = fmt.Sprintf("prod-%d", r.seq)
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.Likes == nil {
		product.Likes = []entity.Like{}
	}
	if product.Comments == nil {
		product.Comments = []entity.Comment{}
	}

	r.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !validFakeID(id) {
		return nil, errors.InvalidID(id)
	}

	product, ok := r.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}

	return cloneProduct(product), nil
}

func (r *fakeProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := []*entity.Product{}
	for _, product := range r.products {
		all = append(all, cloneProduct(product))
	}
	return all, int64(len(all)), nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.updateErr != nil {
		return r.updateErr
	}

	if !validFakeID(product.ID) {
		return errors.InvalidID(product.ID)
	}

	product.UpdatedAt = time.Now()
	r.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !validFakeID(id) {
		return errors.InvalidID(id)
	}

	delete(r.products, id)
	return nil
}

type fakeAssetStore struct {
	mu        sync.Mutex
	objects   map[string]bool
	uploadErr error
	deleteErr error
}

func newFakeAssetStore() *fakeAssetStore {
	return &fakeAssetStore{
		objects: make(map[string]bool),
	}
}

func (s *fakeAssetStore) UploadProductImage(ctx context.Context, productID, filename string, r io.Reader) (*service.UploadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.uploadErr != nil {
		return nil, s.uploadErr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.StoreUnavailable("Failed to upload image", err)
	}

	objectName := fmt.Sprintf("products/%s/%s", productID, filename)
	s.objects[objectName] = true

	return &service.UploadResult{
		ObjectName: objectName,
		Size:       int64(len(data)),
	}, nil
}

func (s *fakeAssetStore) ResolveURL(ctx context.Context, objectName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.objects[objectName] {
		return "", errors.ObjectNotFound(objectName, nil)
	}

	return "https://assets.test/" + objectName, nil
}

func (s *fakeAssetStore) DeleteProductImages(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deleteErr != nil {
		return s.deleteErr
	}

	prefix := fmt.Sprintf("products/%s/", productID)
	for name := range s.objects {
		if strings.HasPrefix(name, prefix) {
			delete(s.objects, name)
		}
	}
	return nil
}

func (s *fakeAssetStore) Close() error {
	return nil
}

func (s *fakeAssetStore) objectsUnder(productID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := fmt.Sprintf("products/%s/", productID)
	names := []string{}
	for name := range s.objects {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	return names
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}
