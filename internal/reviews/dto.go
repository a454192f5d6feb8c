package reviews

import (
	"time"

	"github.com/google/uuid"
)

// CreateReviewInput carries a review submission.
type CreateReviewInput struct {
	Grade   int    `json:"grade" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// ReviewCreatedDTO acknowledges a pending review.
type ReviewCreatedDTO struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	Grade      int       `json:"grade"`
	Comment    string    `json:"comment"`
	Viewable   bool      `json:"viewable"`
	ReviewedAt time.Time `json:"reviewed_at"`
}
