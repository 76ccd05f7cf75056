package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/codemarket/internal/db"
	"github.com/nikolayk812/codemarket/internal/domain"
	"github.com/nikolayk812/codemarket/internal/port"
	"github.com/samber/lo"
)

type projectRepository struct {
	q    *db.Queries
	dbtx db.DBTX
}

func NewProject(pool *pgxpool.Pool) port.ProjectRepository {
	return &projectRepository{
		q:    db.New(pool),
		dbtx: pool,
	}
}

func NewProjectWithTx(tx pgx.Tx) port.ProjectRepository {
	return &projectRepository{
		q:    db.New(tx),
		dbtx: tx,
	}
}

func (r *projectRepository) GetProject(ctx context.Context, projectID uuid.UUID) (domain.Project, error) {
	var p domain.Project

	dbProject, err := r.q.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, fmt.Errorf("q.GetProject: %w", domain.ErrProjectNotFound)
		}
		return p, fmt.Errorf("q.GetProject: %w", err)
	}

	p, err = mapDBProjectToDomain(dbProject)
	if err != nil {
		return p, fmt.Errorf("mapDBProjectToDomain: %w", err)
	}

	return p, nil
}

func (r *projectRepository) GetProjectDetails(ctx context.Context, projectID uuid.UUID) (domain.ProjectDetails, error) {
	details, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.ProjectDetails, error) {
		var d domain.ProjectDetails

		dbProject, err := q.GetProject(ctx, projectID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return d, fmt.Errorf("q.GetProject: %w", domain.ErrProjectNotFound)
			}
			return d, fmt.Errorf("q.GetProject: %w", err)
		}

		dbReviews, err := q.ListReviewsByProject(ctx, projectID)
		if err != nil {
			return d, fmt.Errorf("q.ListReviewsByProject: %w", err)
		}

		project, err := mapDBProjectToDomain(dbProject)
		if err != nil {
			return d, fmt.Errorf("mapDBProjectToDomain: %w", err)
		}

		return domain.ProjectDetails{
			Project: project,
			Reviews: lo.Map(dbReviews, func(row db.Review, _ int) domain.Review {
				return mapDBReviewToDomain(row)
			}),
		}, nil
	})
	if err != nil {
		return domain.ProjectDetails{}, fmt.Errorf("withTx: %w", err)
	}

	return details, nil
}

func (r *projectRepository) SearchProjects(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error) {
	filter = filter.Normalize()

	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter.Validate: %w", err)
	}

	dbProjects, err := r.q.SearchProjects(ctx, mapDomainProjectFilterToDB(filter))
	if err != nil {
		return nil, fmt.Errorf("q.SearchProjects: %w", err)
	}

	projects := make([]domain.Project, 0, len(dbProjects))
	for _, row := range dbProjects {
		p, err := mapDBProjectToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapDBProjectToDomain: %w", err)
		}
		projects = append(projects, p)
	}

	return projects, nil
}

func (r *projectRepository) InsertProject(ctx context.Context, project domain.Project) (uuid.UUID, error) {
	if project.SellerID == "" {
		return uuid.Nil, errors.New("sellerID is empty")
	}

	if project.Price.Amount.IsNegative() {
		return uuid.Nil, errors.New("price is negative")
	}

	projectID, err := r.q.InsertProject(ctx, db.InsertProjectParams{
		SellerID:      project.SellerID,
		Name:          project.Name,
		Description:   project.Description,
		PriceAmount:   project.Price.Amount,
		PriceCurrency: project.Price.Currency.String(),
		ImageUrl:      project.ImageURL,
		FileUrl:       project.FileURL,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("q.InsertProject: %w", err)
	}

	return projectID, nil
}

func (r *projectRepository) UpdateProject(ctx context.Context, projectID uuid.UUID, fn func(domain.Project) (domain.Project, error)) (domain.Project, error) {
	if projectID == uuid.Nil {
		return domain.Project{}, fmt.Errorf("projectID is empty")
	}

	updated, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.Project, error) {
		var p domain.Project

		dbProject, err := q.GetProjectForUpdate(ctx, projectID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return p, fmt.Errorf("q.GetProjectForUpdate: %w", domain.ErrProjectNotFound)
			}
			return p, fmt.Errorf("q.GetProjectForUpdate: %w", err)
		}

		current, err := mapDBProjectToDomain(dbProject)
		if err != nil {
			return p, fmt.Errorf("mapDBProjectToDomain: %w", err)
		}

		p, err = fn(current)
		if err != nil {
			return p, err
		}

		if p.Price.Amount.IsNegative() {
			return p, errors.New("price is negative")
		}

		if _, err := q.UpdateProject(ctx, db.UpdateProjectParams{
			ID:            projectID,
			Name:          p.Name,
			Description:   p.Description,
			PriceAmount:   p.Price.Amount,
			PriceCurrency: p.Price.Currency.String(),
			ImageUrl:      p.ImageURL,
			FileUrl:       p.FileURL,
		}); err != nil {
			return p, fmt.Errorf("q.UpdateProject: %w", err)
		}

		dbProject, err = q.GetProject(ctx, projectID)
		if err != nil {
			return p, fmt.Errorf("q.GetProject: %w", err)
		}

		return mapDBProjectToDomain(dbProject)
	})
	if err != nil {
		return domain.Project{}, fmt.Errorf("withTx: %w", err)
	}

	return updated, nil
}

func (r *projectRepository) DeleteProject(ctx context.Context, projectID uuid.UUID, sellerID string) error {
	if projectID == uuid.Nil {
		return fmt.Errorf("projectID is empty")
	}

	cmdTag, err := r.q.DeleteProject(ctx, db.DeleteProjectParams{
		ID:       projectID,
		SellerID: sellerID,
	})
	if err != nil {
		return fmt.Errorf("q.DeleteProject: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.DeleteProject: %w", domain.ErrProjectNotFound)
	}

	return nil
}

func mapDomainProjectFilterToDB(filter domain.ProjectFilter) db.SearchProjectsParams {
	var pattern, sellerID *string

	if filter.Query != "" {
		pattern = lo.ToPtr("%" + escapeLike(filter.Query) + "%")
	}

	if filter.SellerID != "" {
		sellerID = lo.ToPtr(filter.SellerID)
	}

	return db.SearchProjectsParams{
		Pattern:  pattern,
		SellerID: sellerID,
		Limit:    int32(filter.Limit),
		Offset:   int32(filter.Offset),
	}
}

func mapDBProjectToDomain(row db.Project) (domain.Project, error) {
	parsedCurrency, err := domain.ParseCurrency(row.PriceCurrency)
	if err != nil {
		return domain.Project{}, fmt.Errorf("domain.ParseCurrency: %w", err)
	}

	return domain.Project{
		ID:          row.ID,
		SellerID:    row.SellerID,
		Name:        row.Name,
		Description: row.Description,
		Price:       domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		ImageURL:    row.ImageUrl,
		FileURL:     row.FileUrl,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

func mapDBReviewToDomain(row db.Review) domain.Review {
	return domain.Review{
		ID:         row.ID,
		ProjectID:  row.ProjectID,
		AuthorID:   row.AuthorID,
		AuthorName: row.AuthorName,
		Rating:     int(row.Rating),
		Comment:    row.Comment,
		CreatedAt:  row.CreatedAt,
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
