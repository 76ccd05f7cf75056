package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/codemarket/internal/domain"
	"github.com/samber/lo"
)

type moneyResponse struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type projectResponse struct {
	ID          uuid.UUID     `json:"id"`
	SellerID    string        `json:"sellerId"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       moneyResponse `json:"price"`
	ImageURL    string        `json:"imageUrl"`
	FileURL     string        `json:"fileUrl"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type projectDetailsResponse struct {
	projectResponse
	AverageRating string           `json:"averageRating"`
	Reviews       []reviewResponse `json:"reviews"`
}

type reviewResponse struct {
	ID         uuid.UUID `json:"id"`
	ProjectID  uuid.UUID `json:"projectId"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}

type purchaseResponse struct {
	ID               uuid.UUID     `json:"id"`
	ProjectID        uuid.UUID     `json:"projectId"`
	GatewaySessionID string        `json:"sessionId"`
	Status           string        `json:"status"`
	PricePaid        moneyResponse `json:"pricePaid"`
	CreatedAt        time.Time     `json:"createdAt"`
}

func toMoneyResponse(m domain.Money) moneyResponse {
	return moneyResponse{
		Amount:   m.Amount.StringFixed(2),
		Currency: m.Currency.String(),
	}
}

func toProjectResponse(p domain.Project) projectResponse {
	return projectResponse{
		ID:          p.ID,
		SellerID:    p.SellerID,
		Name:        p.Name,
		Description: p.Description,
		Price:       toMoneyResponse(p.Price),
		ImageURL:    p.ImageURL,
		FileURL:     p.FileURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProjectDetailsResponse(d domain.ProjectDetails) projectDetailsResponse {
	return projectDetailsResponse{
		projectResponse: toProjectResponse(d.Project),
		AverageRating:   d.AverageRating().StringFixed(1),
		Reviews:         toReviewResponses(d.Reviews),
	}
}

func toReviewResponse(r domain.Review) reviewResponse {
	return reviewResponse{
		ID:         r.ID,
		ProjectID:  r.ProjectID,
		AuthorID:   r.AuthorID,
		AuthorName: r.AuthorName,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}

func toReviewResponses(reviews []domain.Review) []reviewResponse {
	return lo.Map(reviews, func(r domain.Review, _ int) reviewResponse {
		return toReviewResponse(r)
	})
}

func toPurchaseResponses(purchases []domain.Purchase) []purchaseResponse {
	return lo.Map(purchases, func(p domain.Purchase, _ int) purchaseResponse {
		return purchaseResponse{
			ID:               p.ID,
			ProjectID:        p.ProjectID,
			GatewaySessionID: p.GatewaySessionID,
			Status:           string(p.Status),
			PricePaid:        toMoneyResponse(p.PricePaid),
			CreatedAt:        p.CreatedAt,
		}
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
