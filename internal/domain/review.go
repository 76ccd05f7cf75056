package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID         uuid.UUID
	ProjectID  uuid.UUID
	AuthorID   string
	AuthorName string
	Rating     int
	Comment    string

	CreatedAt time.Time
}

type ReviewInput struct {
	Rating  int
	Comment string
}

func (in ReviewInput) Validate() error {
	if in.Rating < MinRating || in.Rating > MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, MinRating, MaxRating)
	}

	if len(strings.TrimSpace(in.Comment)) > 2000 {
		return fmt.Errorf("%w: comment is too long", ErrInvalidInput)
	}

	return nil
}
