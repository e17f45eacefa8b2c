package entity

import (
	"time"
)

// Like marks that one user likes a product. A product holds at most one
// entry per user id.
type Like struct {
	UserID string `json:"user" firestore:"user"`
}

// Comment is embedded in the product record; ID is unique within the
// product, Name is the author's display name captured at write time.
type Comment struct {
	ID        string    `json:"id" firestore:"id"`
	Text      string    `json:"text" firestore:"text"`
	UserID    string    `json:"user" firestore:"user"`
	Name      string    `json:"name" firestore:"name"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

type Product struct {
	ID           string  `json:"id" firestore:"id"`
	Name         string  `json:"name" firestore:"name"`
	Description  string  `json:"description" firestore:"description"`
	Price        float64 `json:"price" firestore:"price"`
	Manufacturer string  `json:"manufacturer" firestore:"manufacturer"`
	Category     string  `json:"category" firestore:"category"`
	Condition    string  `json:"condition" firestore:"condition"`
	Quantity     int     `json:"quantity" firestore:"quantity"`

	// ImageURL is owned by the lifecycle manager: it always reflects the
	// current object under the product's storage namespace, or is empty.
	ImageURL string `json:"imageUrl,omitempty" firestore:"imageUrl,omitempty"`

	Likes    []Like    `json:"likes" firestore:"likes"`
	Comments []Comment `json:"comments" firestore:"comments"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// LikedBy reports whether userID already appears in the likes list.
func (p *Product) LikedBy(userID string) bool {
	for _, like := range p.Likes {
		if like.UserID == userID {
			return true
		}
	}
	return false
}

// CommentByID returns the index of the comment with the given id, or -1.
func (p *Product) CommentByID(commentID string) int {
	for i, comment := range p.Comments {
		if comment.ID == commentID {
			return i
		}
	}
	return -1
}
