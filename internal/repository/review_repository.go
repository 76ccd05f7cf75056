package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/codemarket/internal/db"
	"github.com/nikolayk812/codemarket/internal/domain"
	"github.com/nikolayk812/codemarket/internal/port"
	"github.com/samber/lo"
)

const foreignKeyViolation = "23503"

type reviewRepository struct {
	q *db.Queries
}

func NewReview(pool *pgxpool.Pool) port.ReviewRepository {
	return &reviewRepository{
		q: db.New(pool),
	}
}

func NewReviewWithTx(tx pgx.Tx) port.ReviewRepository {
	return &reviewRepository{
		q: db.New(tx),
	}
}

func (r *reviewRepository) InsertReview(ctx context.Context, review domain.Review) (domain.Review, error) {
	if review.ProjectID == uuid.Nil {
		return review, errors.New("projectID is empty")
	}

	if review.AuthorID == "" {
		return review, errors.New("authorID is empty")
	}

	row, err := r.q.InsertReview(ctx, db.InsertReviewParams{
		ProjectID:  review.ProjectID,
		AuthorID:   review.AuthorID,
		AuthorName: review.AuthorName,
		Rating:     int16(review.Rating),
		Comment:    review.Comment,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return review, fmt.Errorf("q.InsertReview: %w", domain.ErrProjectNotFound)
		}
		return review, fmt.Errorf("q.InsertReview: %w", err)
	}

	review.ID = row.ID
	review.CreatedAt = row.CreatedAt

	return review, nil
}

func (r *reviewRepository) ListReviews(ctx context.Context, projectID uuid.UUID) ([]domain.Review, error) {
	dbReviews, err := r.q.ListReviewsByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("q.ListReviewsByProject: %w", err)
	}

	return lo.Map(dbReviews, func(row db.Review, _ int) domain.Review {
		return mapDBReviewToDomain(row)
	}), nil
}
