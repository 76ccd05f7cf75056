// Package porttest provides in-memory port implementations for service and handler tests.
package porttest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/codemarket/internal/domain"
	"github.com/samber/lo"
)

type Projects struct {
	mu       sync.Mutex
	projects map[uuid.UUID]domain.Project
	reviews  *Reviews

	// Err, when set, is returned by InsertProject and UpdateProject.
	Err error
}

// NewProjects links reviews so that GetProjectDetails and deletes see them; reviews may be nil.
func NewProjects(reviews *Reviews) *Projects {
	p := &Projects{
		projects: make(map[uuid.UUID]domain.Project),
		reviews:  reviews,
	}
	if reviews != nil {
		reviews.projects = p
	}
	return p
}

func (r *Projects) GetProject(_ context.Context, projectID uuid.UUID) (domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[projectID]
	if !ok {
		return p, fmt.Errorf("q.GetProject: %w", domain.ErrProjectNotFound)
	}
	return p, nil
}

func (r *Projects) GetProjectDetails(ctx context.Context, projectID uuid.UUID) (domain.ProjectDetails, error) {
	var d domain.ProjectDetails

	p, err := r.GetProject(ctx, projectID)
	if err != nil {
		return d, err
	}

	var reviews []domain.Review
	if r.reviews != nil {
		if reviews, err = r.reviews.ListReviews(ctx, projectID); err != nil {
			return d, err
		}
	}

	return domain.ProjectDetails{Project: p, Reviews: reviews}, nil
}

func (r *Projects) SearchProjects(_ context.Context, filter domain.ProjectFilter) ([]domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := strings.ToLower(filter.Query)

	result := lo.Filter(lo.Values(r.projects), func(p domain.Project, _ int) bool {
		if filter.SellerID != "" && p.SellerID != filter.SellerID {
			return false
		}
		if query == "" {
			return true
		}
		return strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query)
	})

	slices.SortFunc(result, func(a, b domain.Project) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	result = lo.Drop(result, filter.Offset)
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}

	return result, nil
}

func (r *Projects) InsertProject(_ context.Context, project domain.Project) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return uuid.Nil, r.Err
	}

	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}

	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	r.projects[project.ID] = project
	return project.ID, nil
}

func (r *Projects) UpdateProject(_ context.Context, projectID uuid.UUID, fn func(domain.Project) (domain.Project, error)) (domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[projectID]
	if !ok {
		return p, fmt.Errorf("q.GetProjectForUpdate: %w", domain.ErrProjectNotFound)
	}

	if r.Err != nil {
		return p, r.Err
	}

	updated, err := fn(p)
	if err != nil {
		return p, err
	}

	updated.ID = p.ID
	updated.SellerID = p.SellerID
	updated.CreatedAt = p.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.projects[projectID] = updated
	return updated, nil
}

func (r *Projects) DeleteProject(_ context.Context, projectID uuid.UUID, sellerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[projectID]
	if !ok || p.SellerID != sellerID {
		return fmt.Errorf("q.DeleteProject: %w", domain.ErrProjectNotFound)
	}

	delete(r.projects, projectID)
	if r.reviews != nil {
		r.reviews.deleteByProject(projectID)
	}
	return nil
}

func (r *Projects) exists(projectID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.projects[projectID]
	return ok
}

type Purchases struct {
	mu        sync.Mutex
	purchases []domain.Purchase

	// Err, when set, is returned by InsertPurchase.
	Err error
}

func NewPurchases() *Purchases {
	return &Purchases{}
}

func (r *Purchases) InsertPurchase(_ context.Context, purchase domain.Purchase) (uuid.UUID, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return uuid.Nil, false, r.Err
	}

	if existing, ok := lo.Find(r.purchases, func(p domain.Purchase) bool {
		return p.GatewaySessionID == purchase.GatewaySessionID
	}); ok {
		return existing.ID, false, nil
	}

	purchase.ID = uuid.New()
	purchase.CreatedAt = time.Now().UTC()
	r.purchases = append(r.purchases, purchase)

	return purchase.ID, true, nil
}

func (r *Purchases) GetPurchaseBySessionID(_ context.Context, sessionID string) (domain.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := lo.Find(r.purchases, func(p domain.Purchase) bool {
		return p.GatewaySessionID == sessionID
	})
	if !ok {
		return p, fmt.Errorf("q.GetPurchaseBySessionID: %w", domain.ErrPurchaseNotFound)
	}
	return p, nil
}

func (r *Purchases) ListPurchasesByBuyer(_ context.Context, buyerID string) ([]domain.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := lo.Filter(r.purchases, func(p domain.Purchase, _ int) bool {
		return p.BuyerID == buyerID
	})
	slices.Reverse(result)
	return result, nil
}

// All returns a snapshot of the ledger in insertion order.
func (r *Purchases) All() []domain.Purchase {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.purchases)
}

type Reviews struct {
	mu       sync.Mutex
	reviews  []domain.Review
	projects *Projects
}

func NewReviews() *Reviews {
	return &Reviews{}
}

func (r *Reviews) InsertReview(_ context.Context, review domain.Review) (domain.Review, error) {
	if r.projects != nil && !r.projects.exists(review.ProjectID) {
		return review, fmt.Errorf("q.InsertReview: %w", domain.ErrProjectNotFound)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	review.ID = uuid.New()
	review.CreatedAt = time.Now().UTC()
	r.reviews = append(r.reviews, review)

	return review, nil
}

func (r *Reviews) ListReviews(_ context.Context, projectID uuid.UUID) ([]domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := lo.Filter(r.reviews, func(rv domain.Review, _ int) bool {
		return rv.ProjectID == projectID
	})
	slices.Reverse(result)
	return result, nil
}

func (r *Reviews) deleteByProject(projectID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reviews = lo.Reject(r.reviews, func(rv domain.Review, _ int) bool {
		return rv.ProjectID == projectID
	})
}

type Blobs struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewBlobs() *Blobs {
	return &Blobs{objects: make(map[string][]byte)}
}

func (b *Blobs) Put(_ context.Context, key string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", fmt.Errorf("io.Copy: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.objects[key] = buf.Bytes()
	return "https://blob.test/files/" + key, nil
}

func (b *Blobs) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.objects, key)
	return nil
}

func (b *Blobs) Keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	keys := lo.Keys(b.objects)
	slices.Sort(keys)
	return keys
}

// Gateway records checkout requests and delegates event parsing to ParseEventFunc.
type Gateway struct {
	mu       sync.Mutex
	requests []domain.CheckoutRequest

	CreateFunc     func(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutSession, error)
	ParseEventFunc func(payload []byte, signature string) (domain.PaymentEvent, error)
}

func (g *Gateway) CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutSession, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	g.mu.Unlock()

	if g.CreateFunc != nil {
		return g.CreateFunc(ctx, req)
	}

	id := "cs_test_" + uuid.NewString()
	return domain.CheckoutSession{
		ID:  id,
		URL: "https://checkout.test/pay/" + id,
	}, nil
}

func (g *Gateway) ParseEvent(payload []byte, signature string) (domain.PaymentEvent, error) {
	if g.ParseEventFunc != nil {
		return g.ParseEventFunc(payload, signature)
	}
	return domain.PaymentEvent{}, fmt.Errorf("%w: no parser configured", domain.ErrWebhookIntegrity)
}

func (g *Gateway) Requests() []domain.CheckoutRequest {
	g.mu.Lock()
	defer g.mu.Unlock()

	return slices.Clone(g.requests)
}
