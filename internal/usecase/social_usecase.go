package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"shopgram/internal/domain/entity"
	"shopgram/internal/domain/repository"
	"shopgram/internal/domain/service"
	"shopgram/pkg/errors"
)

// SocialUseCase mutates the likes and comments sub-collections embedded in
// a product record. Mutations against the same product are not serialized;
// two concurrent likes by the same actor can both pass the membership check
// and both persist, matching the source system's behavior.
type SocialUseCase struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	authorizer  *service.Authorizer
}

func NewSocialUseCase(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	authorizer *service.Authorizer,
) *SocialUseCase {
	return &SocialUseCase{
		productRepo: productRepo,
		userRepo:    userRepo,
		authorizer:  authorizer,
	}
}

func (uc *SocialUseCase) AddLike(ctx context.Context, productID, actorID string) (*entity.Product, error) {
	if err := uc.authorizer.Authorize(actorID, service.ActionLike, ""); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.LikedBy(actorID) {
		return nil, errors.AlreadyLiked()
	}

	// Most recent like first, matching the original feed order.
	product.Likes = append([]entity.Like{{UserID: actorID}}, product.Likes...)

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (uc *SocialUseCase) RemoveLike(ctx context.Context, productID, actorID string) (*entity.Product, error) {
	if err := uc.authorizer.Authorize(actorID, service.ActionUnlike, ""); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !product.LikedBy(actorID) {
		return nil, errors.NotLiked()
	}

	for i, like := range product.Likes {
		if like.UserID == actorID {
			product.Likes = append(product.Likes[:i], product.Likes[i+1:]...)
			break
		}
	}

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (uc *SocialUseCase) AddComment(ctx context.Context, productID, actorID, text string) (*entity.Product, error) {
	if err := uc.authorizer.Authorize(actorID, service.ActionComment, ""); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.EmptyText()
	}

	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, errors.BadRequest("Invalid user", err)
	}

	comment := entity.Comment{
		ID:        uuid.New().String(),
		Text:      text,
		UserID:    actorID,
		Name:      user.Username,
		CreatedAt: time.Now(),
	}
	product.Comments = append(product.Comments, comment)

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// RemoveComment removes exactly the addressed comment id, never "the
// actor's first comment"; an author can hold several comments on one
// product.
func (uc *SocialUseCase) RemoveComment(ctx context.Context, productID, commentID, actorID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	idx := product.CommentByID(commentID)
	if idx < 0 {
		return nil, errors.CommentNotFound()
	}

	if err := uc.authorizer.Authorize(actorID, service.ActionUncomment, product.Comments[idx].UserID); err != nil {
		return nil, err
	}

	product.Comments = append(product.Comments[:idx], product.Comments[idx+1:]...)

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}
