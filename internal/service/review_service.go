package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/nikolayk812/codemarket/internal/domain"
	"github.com/nikolayk812/codemarket/internal/port"
)

type ReviewService struct {
	projects port.ProjectRepository
	reviews  port.ReviewRepository
	log      *slog.Logger
}

func NewReview(projects port.ProjectRepository, reviews port.ReviewRepository, log *slog.Logger) (*ReviewService, error) {
	if projects == nil {
		return nil, errors.New("projects is nil")
	}
	if reviews == nil {
		return nil, errors.New("reviews is nil")
	}
	if log == nil {
		return nil, errors.New("log is nil")
	}

	return &ReviewService{
		projects: projects,
		reviews:  reviews,
		log:      log,
	}, nil
}

// CreateReview rejects reviews by the project owner.
func (s *ReviewService) CreateReview(ctx context.Context, author domain.User, projectID uuid.UUID, in domain.ReviewInput) (domain.Review, error) {
	var r domain.Review

	if !author.IsAuthenticated() {
		return r, domain.ErrAuthenticationRequired
	}

	if err := in.Validate(); err != nil {
		return r, err
	}

	project, err := s.projects.GetProject(ctx, projectID)
	if err != nil {
		return r, fmt.Errorf("projects.GetProject: %w", err)
	}

	if project.IsOwnedBy(author.ID) {
		return r, fmt.Errorf("%w: sellers cannot review their own project", domain.ErrForbidden)
	}

	authorName := author.Name
	if authorName == "" {
		authorName = author.Email
	}

	r, err = s.reviews.InsertReview(ctx, domain.Review{
		ProjectID:  projectID,
		AuthorID:   author.ID,
		AuthorName: authorName,
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
	})
	if err != nil {
		return r, fmt.Errorf("reviews.InsertReview: %w", err)
	}

	s.log.Info("review created",
		"method", "ReviewService.CreateReview",
		"reviewID", r.ID,
		"projectID", projectID,
		"rating", r.Rating)

	return r, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, projectID uuid.UUID) ([]domain.Review, error) {
	reviews, err := s.reviews.ListReviews(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("reviews.ListReviews: %w", err)
	}
	return reviews, nil
}
