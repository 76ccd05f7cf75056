package web

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/nikolayk812/codemarket/internal/auth"
	"github.com/nikolayk812/codemarket/internal/domain"
)

const maxReviewBody = 16 << 10

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *handler) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if !user.IsAuthenticated() {
		h.writeError(w, r, "handler.handleCreateReview", domain.ErrAuthenticationRequired)
		return
	}

	projectID, err := projectIDParam(r)
	if err != nil {
		h.writeError(w, r, "handler.handleCreateReview", err)
		return
	}

	in, err := parseReviewInput(w, r)
	if err != nil {
		h.writeError(w, r, "handler.handleCreateReview", err)
		return
	}

	review, err := h.reviews.CreateReview(r.Context(), user, projectID, in)
	if err != nil {
		h.writeError(w, r, "handler.handleCreateReview", err)
		return
	}

	writeJSON(w, http.StatusCreated, toReviewResponse(review))
}

func (h *handler) handleListReviews(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectIDParam(r)
	if err != nil {
		h.writeError(w, r, "handler.handleListReviews", err)
		return
	}

	reviews, err := h.reviews.ListReviews(r.Context(), projectID)
	if err != nil {
		h.writeError(w, r, "handler.handleListReviews", err)
		return
	}

	writeJSON(w, http.StatusOK, toReviewResponses(reviews))
}

// parseReviewInput accepts a JSON body or a url-encoded form.
func parseReviewInput(w http.ResponseWriter, r *http.Request) (domain.ReviewInput, error) {
	var in domain.ReviewInput

	r.Body = http.MaxBytesReader(w, r.Body, maxReviewBody)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req reviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return in, fmt.Errorf("%w: malformed JSON body", domain.ErrInvalidInput)
		}
		return domain.ReviewInput{Rating: req.Rating, Comment: req.Comment}, nil
	}

	rating, err := strconv.Atoi(r.PostFormValue("rating"))
	if err != nil {
		return in, fmt.Errorf("%w: rating is not a number", domain.ErrInvalidInput)
	}

	return domain.ReviewInput{Rating: rating, Comment: r.PostFormValue("comment")}, nil
}
