package response

import (
	"time"

	domreview "bookcars/internal/domain/review"
	"bookcars/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromReviewView(v *queries.ReviewView) *ReviewResponse {
	var resp ReviewResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromReviewEntity(r *domreview.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        r.ID(),
		UserID:    r.UserID(),
		Rating:    r.Rating().Value(),
		Comment:   r.Comment().String(),
		CreatedAt: r.CreatedAt(),
	}
}
