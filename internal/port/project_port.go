package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/codemarket/internal/domain"
)

type ProjectRepository interface {
	GetProject(ctx context.Context, projectID uuid.UUID) (domain.Project, error)
	GetProjectDetails(ctx context.Context, projectID uuid.UUID) (domain.ProjectDetails, error)

	SearchProjects(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error)

	InsertProject(ctx context.Context, project domain.Project) (uuid.UUID, error)

	// UpdateProject locks the stored project, passes it to fn and persists the result.
	UpdateProject(ctx context.Context, projectID uuid.UUID, fn func(domain.Project) (domain.Project, error)) (domain.Project, error)

	DeleteProject(ctx context.Context, projectID uuid.UUID, sellerID string) error
}
