package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/codemarket/internal/auth"
	"github.com/nikolayk812/codemarket/internal/blob"
	"github.com/nikolayk812/codemarket/internal/config"
	"github.com/nikolayk812/codemarket/internal/db"
	"github.com/nikolayk812/codemarket/internal/domain"
	"github.com/nikolayk812/codemarket/internal/metrics"
	"github.com/nikolayk812/codemarket/internal/payment"
	"github.com/nikolayk812/codemarket/internal/repository"
	"github.com/nikolayk812/codemarket/internal/service"
	"github.com/nikolayk812/codemarket/internal/web"
	"golang.org/x/text/currency"
	"golang.org/x/time/rate"
)

type App struct {
	log    *slog.Logger
	pool   *pgxpool.Pool
	server *http.Server
}

func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	metrics.Register()

	cur, err := domain.ParseCurrency(cfg.Stripe.Currency)
	if err != nil {
		return nil, fmt.Errorf("domain.ParseCurrency: %w", err)
	}

	if cfg.Stripe.SecretKey == "" {
		log.Warn("STRIPE_SECRET_KEY is not set, checkout is disabled")
	}
	if cfg.Stripe.WebhookSecret == "" {
		log.Warn("STRIPE_WEBHOOK_SECRET is not set, webhook deliveries will be rejected")
	}

	pool, err := NewPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("NewPool: %w", err)
	}

	handler, err := buildRouter(cfg, pool, cur, log)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("buildRouter: %w", err)
	}

	return &App{
		log:  log,
		pool: pool,
		server: &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           handler,
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
			ReadTimeout:       cfg.HTTP.ReadTimeout,
			WriteTimeout:      cfg.HTTP.WriteTimeout,
			IdleTimeout:       cfg.HTTP.IdleTimeout,
			ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelError),
		},
	}, nil
}

func buildRouter(cfg config.Config, pool *pgxpool.Pool, cur currency.Unit, log *slog.Logger) (http.Handler, error) {
	projects := repository.NewProject(pool)
	purchases := repository.NewPurchase(pool)
	reviews := repository.NewReview(pool)

	blobs, err := blob.NewDisk(cfg.Blob.Dir, cfg.Blob.PublicBaseURL)
	if err != nil {
		return nil, fmt.Errorf("blob.NewDisk: %w", err)
	}

	gateway := payment.NewStripe(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret,
		payment.WithBackend(payment.NewBackend(cfg.Stripe.MaxNetworkRetries, log)))

	checkout, err := service.NewCheckout(projects, gateway, cfg.App.BaseURL, log)
	if err != nil {
		return nil, fmt.Errorf("service.NewCheckout: %w", err)
	}

	fulfillment, err := service.NewFulfillment(purchases, gateway, cur, log)
	if err != nil {
		return nil, fmt.Errorf("service.NewFulfillment: %w", err)
	}

	catalog, err := service.NewCatalog(projects, blobs, cur, cfg.Blob.MaxUploadSize, log)
	if err != nil {
		return nil, fmt.Errorf("service.NewCatalog: %w", err)
	}

	reviewSvc, err := service.NewReview(projects, reviews, log)
	if err != nil {
		return nil, fmt.Errorf("service.NewReview: %w", err)
	}

	purchaseSvc, err := service.NewPurchase(purchases)
	if err != nil {
		return nil, fmt.Errorf("service.NewPurchase: %w", err)
	}

	verifier, err := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	if err != nil {
		return nil, fmt.Errorf("auth.NewVerifier: %w", err)
	}

	return web.NewRouter(web.Deps{
		Checkout:       checkout,
		Fulfillment:    fulfillment,
		Catalog:        catalog,
		Reviews:        reviewSvc,
		Purchases:      purchaseSvc,
		Verifier:       verifier,
		FilesDir:       cfg.Blob.Dir,
		LoginPath:      cfg.App.LoginPath,
		MaxUploadSize:  cfg.Blob.MaxUploadSize,
		WebhookLimiter: rate.NewLimiter(rate.Limit(cfg.RateLimit.WebhookRPS), cfg.RateLimit.WebhookBurst),
		Log:            log,
	})
}

// NewPool connects to Postgres, retrying while the database is starting up.
func NewPool(ctx context.Context, cfg config.Postgres, log *slog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	var pool *pgxpool.Pool

	err = retry.Do(
		func() error {
			p, err := pgxpool.NewWithConfig(ctx, poolCfg)
			if err != nil {
				return fmt.Errorf("pgxpool.NewWithConfig: %w", err)
			}

			if err := p.Ping(ctx); err != nil {
				p.Close()
				return fmt.Errorf("pool.Ping: %w", err)
			}

			pool = p
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(cfg.RetryConnAttempts),
		retry.Delay(cfg.RetryConnDelay),
		retry.MaxDelay(cfg.RetryConnMaxDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn("database is not reachable, retrying",
				"method", "app.NewPool",
				"attempt", n+1,
				"error", err)
		}),
	)
	if err != nil {
		return nil, err
	}

	return pool, nil
}

// Migrate applies the schema using a short-lived pool.
func Migrate(ctx context.Context, cfg config.Postgres, log *slog.Logger) error {
	pool, err := NewPool(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("NewPool: %w", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("db.Migrate: %w", err)
	}

	log.Info("schema is up to date")
	return nil
}

// Run blocks until the server stops. A server closed by Shutdown returns nil.
func (a *App) Run() error {
	a.log.Info("http server started", "addr", a.server.Addr)

	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe: %w", err)
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	start := time.Now()

	err := a.server.Shutdown(ctx)
	if err != nil {
		err = fmt.Errorf("server.Shutdown: %w", err)
	}

	a.pool.Close()

	a.log.Info("http server stopped", "took", time.Since(start))
	return err
}
