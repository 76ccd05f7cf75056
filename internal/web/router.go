package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nikolayk812/codemarket/internal/auth"
	"github.com/nikolayk812/codemarket/internal/blob"
	"github.com/nikolayk812/codemarket/internal/domain"
	"github.com/nikolayk812/codemarket/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

type Deps struct {
	Checkout    *service.CheckoutService
	Fulfillment *service.FulfillmentService
	Catalog     *service.CatalogService
	Reviews     *service.ReviewService
	Purchases   *service.PurchaseService
	Verifier    *auth.Verifier

	// FilesDir is served under blob.PathPrefix when set.
	FilesDir string

	LoginPath     string
	MaxUploadSize int64

	// WebhookLimiter throttles gateway deliveries; nil disables throttling.
	WebhookLimiter *rate.Limiter

	Log *slog.Logger
}

type handler struct {
	checkout    *service.CheckoutService
	fulfillment *service.FulfillmentService
	catalog     *service.CatalogService
	reviews     *service.ReviewService
	purchases   *service.PurchaseService

	loginPath     string
	maxUploadSize int64
	log           *slog.Logger
}

func NewRouter(deps Deps) (http.Handler, error) {
	switch {
	case deps.Checkout == nil:
		return nil, errors.New("checkout is nil")
	case deps.Fulfillment == nil:
		return nil, errors.New("fulfillment is nil")
	case deps.Catalog == nil:
		return nil, errors.New("catalog is nil")
	case deps.Reviews == nil:
		return nil, errors.New("reviews is nil")
	case deps.Purchases == nil:
		return nil, errors.New("purchases is nil")
	case deps.Verifier == nil:
		return nil, errors.New("verifier is nil")
	case deps.Log == nil:
		return nil, errors.New("log is nil")
	}

	h := &handler{
		checkout:      deps.Checkout,
		fulfillment:   deps.Fulfillment,
		catalog:       deps.Catalog,
		reviews:       deps.Reviews,
		purchases:     deps.Purchases,
		loginPath:     deps.LoginPath,
		maxUploadSize: deps.MaxUploadSize,
		log:           deps.Log,
	}
	if h.loginPath == "" {
		h.loginPath = "/login"
	}
	if h.maxUploadSize <= 0 {
		h.maxUploadSize = domain.MaxUploadSize
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(deps.Log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// The gateway signs the raw body, so this route must not pass through
	// anything that reads or rewrites it.
	r.With(rateLimit(deps.WebhookLimiter)).Post("/api/webhooks", h.handleWebhook)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(deps.Verifier, deps.Log))

		r.Post("/checkout", h.handleCheckout)

		r.Route("/api", func(r chi.Router) {
			r.Get("/projects", h.handleSearchProjects)
			r.Post("/projects", h.handleCreateProject)
			r.Get("/projects/{id}", h.handleGetProject)
			r.Put("/projects/{id}", h.handleUpdateProject)
			r.Delete("/projects/{id}", h.handleDeleteProject)
			r.Get("/projects/{id}/reviews", h.handleListReviews)
			r.Post("/projects/{id}/reviews", h.handleCreateReview)
			r.Get("/me/purchases", h.handleListPurchases)
		})
	})

	if deps.FilesDir != "" {
		r.Handle(blob.PathPrefix+"*", http.StripPrefix(blob.PathPrefix, http.FileServer(http.Dir(deps.FilesDir))))
	}

	return r, nil
}
