package service

import (
	"shopgram/pkg/errors"
)

type Action string

const (
	ActionCreateProduct Action = "product.create"
	ActionUpdateProduct Action = "product.update"
	ActionDeleteProduct Action = "product.delete"
	ActionLike          Action = "product.like"
	ActionUnlike        Action = "product.unlike"
	ActionComment       Action = "product.comment"
	ActionUncomment     Action = "product.uncomment"
)

// Authorizer decides whether an actor may perform a mutating action.
// ownerID is the author/owner of the targeted resource where the action has
// one (currently only comment removal); pass "" otherwise.
type Authorizer struct{}

func NewAuthorizer() *Authorizer {
	return &Authorizer{}
}

func (a *Authorizer) Authorize(actorID string, action Action, ownerID string) error {
	if actorID == "" {
		return errors.Unauthorized("Authentication required", nil)
	}

	switch action {
	case ActionUncomment:
		// Only the comment's author may remove it. Products themselves
		// record no owner, so every other action is open to any
		// authenticated actor.
		if actorID != ownerID {
			return errors.Unauthorized("User not authorized", nil)
		}
	}

	return nil
}
