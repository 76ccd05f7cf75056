package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/codemarket/internal/domain"
)

type ReviewRepository interface {
	InsertReview(ctx context.Context, review domain.Review) (domain.Review, error)
	ListReviews(ctx context.Context, projectID uuid.UUID) ([]domain.Review, error)
}
