package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/nikolayk812/codemarket/internal/blob"
	"github.com/nikolayk812/codemarket/internal/domain"
	"github.com/nikolayk812/codemarket/internal/port"
	"golang.org/x/text/currency"
)

const (
	coversPrefix   = "covers"
	projectsPrefix = "projects"
)

type CatalogService struct {
	projects      port.ProjectRepository
	blobs         port.BlobStore
	currency      currency.Unit
	maxUploadSize int64
	log           *slog.Logger
}

// NewCatalog prices every project in cur.
func NewCatalog(projects port.ProjectRepository, blobs port.BlobStore, cur currency.Unit, maxUploadSize int64, log *slog.Logger) (*CatalogService, error) {
	if projects == nil {
		return nil, errors.New("projects is nil")
	}
	if blobs == nil {
		return nil, errors.New("blobs is nil")
	}
	if log == nil {
		return nil, errors.New("log is nil")
	}
	if maxUploadSize <= 0 {
		maxUploadSize = domain.MaxUploadSize
	}

	return &CatalogService{
		projects:      projects,
		blobs:         blobs,
		currency:      cur,
		maxUploadSize: maxUploadSize,
		log:           log,
	}, nil
}

func (s *CatalogService) CreateProject(ctx context.Context, seller domain.User, in domain.ProjectInput) (domain.Project, error) {
	var p domain.Project

	if !seller.IsAuthenticated() {
		return p, domain.ErrAuthenticationRequired
	}

	if err := in.ValidateCreate(s.maxUploadSize); err != nil {
		return p, err
	}

	price, err := domain.ParsePrice(in.Price, s.currency)
	if err != nil {
		return p, err
	}

	var uploaded []string

	imageURL, key, err := s.upload(ctx, coversPrefix, in.Image)
	if err != nil {
		return p, err
	}
	uploaded = append(uploaded, key)

	fileURL, key, err := s.upload(ctx, projectsPrefix, in.File)
	if err != nil {
		s.discard(ctx, uploaded)
		return p, err
	}
	uploaded = append(uploaded, key)

	p = domain.Project{
		SellerID:    seller.ID,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       price,
		ImageURL:    imageURL,
		FileURL:     fileURL,
	}

	id, err := s.projects.InsertProject(ctx, p)
	if err != nil {
		s.discard(ctx, uploaded)
		return p, fmt.Errorf("projects.InsertProject: %w", err)
	}

	s.log.Info("project created",
		"method", "CatalogService.CreateProject",
		"projectID", id,
		"sellerID", seller.ID)

	p, err = s.projects.GetProject(ctx, id)
	if err != nil {
		return p, fmt.Errorf("projects.GetProject: %w", err)
	}

	return p, nil
}

// UpdateProject replaces name, description and price. Stored files are kept
// unless a new non-empty upload is given.
func (s *CatalogService) UpdateProject(ctx context.Context, seller domain.User, projectID uuid.UUID, in domain.ProjectInput) (domain.Project, error) {
	var p domain.Project

	if !seller.IsAuthenticated() {
		return p, domain.ErrAuthenticationRequired
	}

	if err := in.ValidateUpdate(s.maxUploadSize); err != nil {
		return p, err
	}

	price, err := domain.ParsePrice(in.Price, s.currency)
	if err != nil {
		return p, err
	}

	current, err := s.projects.GetProject(ctx, projectID)
	if err != nil {
		return p, fmt.Errorf("projects.GetProject: %w", err)
	}
	if !current.IsOwnedBy(seller.ID) {
		return p, fmt.Errorf("%w: project is owned by another seller", domain.ErrForbidden)
	}

	var (
		imageURL, fileURL, key string
		uploaded               []string
	)
	if !in.Image.IsEmpty() {
		if imageURL, key, err = s.upload(ctx, coversPrefix, in.Image); err != nil {
			return p, err
		}
		uploaded = append(uploaded, key)
	}
	if !in.File.IsEmpty() {
		if fileURL, key, err = s.upload(ctx, projectsPrefix, in.File); err != nil {
			s.discard(ctx, uploaded)
			return p, err
		}
		uploaded = append(uploaded, key)
	}

	p, err = s.projects.UpdateProject(ctx, projectID, func(stored domain.Project) (domain.Project, error) {
		if !stored.IsOwnedBy(seller.ID) {
			return stored, fmt.Errorf("%w: project is owned by another seller", domain.ErrForbidden)
		}

		stored.Name = strings.TrimSpace(in.Name)
		stored.Description = strings.TrimSpace(in.Description)
		stored.Price = price
		if imageURL != "" {
			stored.ImageURL = imageURL
		}
		if fileURL != "" {
			stored.FileURL = fileURL
		}

		return stored, nil
	})
	if err != nil {
		s.discard(ctx, uploaded)
		return p, fmt.Errorf("projects.UpdateProject: %w", err)
	}

	s.log.Info("project updated",
		"method", "CatalogService.UpdateProject",
		"projectID", projectID,
		"sellerID", seller.ID)

	return p, nil
}

func (s *CatalogService) DeleteProject(ctx context.Context, seller domain.User, projectID uuid.UUID) error {
	if !seller.IsAuthenticated() {
		return domain.ErrAuthenticationRequired
	}

	current, err := s.projects.GetProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("projects.GetProject: %w", err)
	}
	if !current.IsOwnedBy(seller.ID) {
		return fmt.Errorf("%w: project is owned by another seller", domain.ErrForbidden)
	}

	if err := s.projects.DeleteProject(ctx, projectID, seller.ID); err != nil {
		return fmt.Errorf("projects.DeleteProject: %w", err)
	}

	s.log.Info("project deleted",
		"method", "CatalogService.DeleteProject",
		"projectID", projectID,
		"sellerID", seller.ID)

	return nil
}

func (s *CatalogService) GetProject(ctx context.Context, projectID uuid.UUID) (domain.ProjectDetails, error) {
	details, err := s.projects.GetProjectDetails(ctx, projectID)
	if err != nil {
		return details, fmt.Errorf("projects.GetProjectDetails: %w", err)
	}
	return details, nil
}

func (s *CatalogService) SearchProjects(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error) {
	filter = filter.Normalize()
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	projects, err := s.projects.SearchProjects(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("projects.SearchProjects: %w", err)
	}
	return projects, nil
}

func (s *CatalogService) upload(ctx context.Context, prefix string, u *domain.Upload) (string, string, error) {
	key := blob.Key(prefix, u.Filename)

	url, err := s.blobs.Put(ctx, key, u.Body)
	if err != nil {
		return "", "", fmt.Errorf("blobs.Put[%s]: %w", key, err)
	}
	return url, key, nil
}

// discard removes uploads whose project was not stored. It runs even when the
// request context is already cancelled.
func (s *CatalogService) discard(ctx context.Context, keys []string) {
	ctx = context.WithoutCancel(ctx)

	for _, key := range keys {
		if err := s.blobs.Delete(ctx, key); err != nil {
			s.log.Warn("orphan upload left behind",
				"method", "CatalogService.discard",
				"key", key,
				"error", err)
		}
	}
}
