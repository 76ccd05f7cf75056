package repository_test

import (
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/codemarket/internal/domain"
	"github.com/nikolayk812/codemarket/internal/port"
	"github.com/nikolayk812/codemarket/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"go.uber.org/goleak"
)

type projectRepositorySuite struct {
	suite.Suite

	pool       *pgxpool.Pool
	repo       port.ProjectRepository
	reviewRepo port.ReviewRepository
	container  testcontainers.Container
}

// entry point to run the tests in the suite
func TestProjectRepositorySuite(t *testing.T) {
	// Verifies no leaks after all tests in the suite run.
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	suite.Run(t, new(projectRepositorySuite))
}

// before all tests in the suite
func (suite *projectRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = newMigratedPool(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo = repository.NewProject(suite.pool)
	suite.reviewRepo = repository.NewReview(suite.pool)
}

// after all tests in the suite
func (suite *projectRepositorySuite) TearDownSuite() {
	ctx := suite.T().Context()

	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(ctx))
	}
}

func (suite *projectRepositorySuite) TestInsertProject() {
	defer suite.deleteAll()

	tests := []struct {
		name        string
		projectFunc func() domain.Project
		wantError   string
	}{
		{
			name:        "valid project with all fields: ok",
			projectFunc: randomProject,
		},
		{
			name: "free project, empty description: ok",
			projectFunc: func() domain.Project {
				p := randomProject()
				p.Description = ""
				p.Price.Amount = decimal.Zero
				return p
			},
		},
		{
			name: "no seller: fail",
			projectFunc: func() domain.Project {
				p := randomProject()
				p.SellerID = ""
				return p
			},
			wantError: "sellerID is empty",
		},
		{
			name: "negative price: fail",
			projectFunc: func() domain.Project {
				p := randomProject()
				p.Price.Amount = decimal.NewFromInt(-1)
				return p
			},
			wantError: "price is negative",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			ttProject := tt.projectFunc()

			projectID, err := suite.repo.InsertProject(ctx, ttProject)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			actual, err := suite.repo.GetProject(ctx, projectID)
			require.NoError(t, err)

			assert.Equal(t, projectID, actual.ID)
			assert.False(t, actual.CreatedAt.IsZero())
			assertProject(t, ttProject, actual)
		})
	}
}

func (suite *projectRepositorySuite) TestGetProject() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	_, err := suite.repo.GetProject(ctx, uuid.MustParse(gofakeit.UUID()))
	require.EqualError(t, err, "q.GetProject: project not found")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func (suite *projectRepositorySuite) TestGetProjectDetails() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	project := randomProject()
	projectID, err := suite.repo.InsertProject(ctx, project)
	require.NoError(t, err)

	var expectedReviews []domain.Review
	for i := 0; i < 3; i++ {
		review, err := suite.reviewRepo.InsertReview(ctx, randomReview(projectID))
		require.NoError(t, err)
		expectedReviews = append(expectedReviews, review)
	}

	details, err := suite.repo.GetProjectDetails(ctx, projectID)
	require.NoError(t, err)

	assertProject(t, project, details.Project)
	assertReviews(t, expectedReviews, details.Reviews)

	_, err = suite.repo.GetProjectDetails(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func (suite *projectRepositorySuite) TestSearchProjects() {
	defer suite.deleteAll()

	sellerID := gofakeit.UUID()

	rocket := randomProject()
	rocket.Name = "Rocket Dashboard"
	rocket.Description = "admin panel"
	rocket.SellerID = sellerID

	chat := randomProject()
	chat.Name = "Chat bot"
	chat.Description = "A ROCKET-fast support bot"

	discount := randomProject()
	discount.Name = "Coupon engine"
	discount.Description = "100% off generator"
	discount.SellerID = sellerID

	suite.insertProjects(rocket, chat, discount)

	tests := []struct {
		name      string
		filter    domain.ProjectFilter
		wantNames []string
		wantError string
	}{
		{
			name:      "empty filter returns everything, newest first",
			filter:    domain.ProjectFilter{},
			wantNames: []string{"Coupon engine", "Chat bot", "Rocket Dashboard"},
		},
		{
			name:      "query matches name or description, case-insensitive",
			filter:    domain.ProjectFilter{Query: "rocket"},
			wantNames: []string{"Chat bot", "Rocket Dashboard"},
		},
		{
			name:      "percent sign is matched literally",
			filter:    domain.ProjectFilter{Query: "100%"},
			wantNames: []string{"Coupon engine"},
		},
		{
			name:      "seller filter",
			filter:    domain.ProjectFilter{SellerID: sellerID},
			wantNames: []string{"Coupon engine", "Rocket Dashboard"},
		},
		{
			name:      "seller and query",
			filter:    domain.ProjectFilter{SellerID: sellerID, Query: "rocket"},
			wantNames: []string{"Rocket Dashboard"},
		},
		{
			name:      "limit and offset",
			filter:    domain.ProjectFilter{Limit: 1, Offset: 1},
			wantNames: []string{"Chat bot"},
		},
		{
			name:   "no match",
			filter: domain.ProjectFilter{Query: "nothing like this"},
		},
		{
			name:      "negative offset: fail",
			filter:    domain.ProjectFilter{Offset: -1},
			wantError: "filter.Validate: offset is negative",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			projects, err := suite.repo.SearchProjects(ctx, tt.filter)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			var names []string
			for _, p := range projects {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func (suite *projectRepositorySuite) TestUpdateProject() {
	defer suite.deleteAll()

	tests := []struct {
		name         string
		updateFunc   func(domain.Project) (domain.Project, error)
		targetIDFunc func(uuid.UUID) uuid.UUID
		wantErrorIs  error
	}{
		{
			name: "update fields of existing project: ok",
			updateFunc: func(p domain.Project) (domain.Project, error) {
				p.Name = "renamed"
				p.Description = "new description"
				p.Price.Amount = decimal.RequireFromString("49.90")
				p.ImageURL = "https://cdn.example.com/covers/new.png"
				return p, nil
			},
		},
		{
			name: "callback rejects the update: nothing changes",
			updateFunc: func(p domain.Project) (domain.Project, error) {
				return p, domain.ErrForbidden
			},
			wantErrorIs: domain.ErrForbidden,
		},
		{
			name: "update non-existing project: not found",
			updateFunc: func(p domain.Project) (domain.Project, error) {
				return p, nil
			},
			targetIDFunc: func(uuid.UUID) uuid.UUID {
				return uuid.New()
			},
			wantErrorIs: domain.ErrProjectNotFound,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			original := randomProject()
			projectID, err := suite.repo.InsertProject(ctx, original)
			require.NoError(t, err)

			targetID := projectID
			if tt.targetIDFunc != nil {
				targetID = tt.targetIDFunc(projectID)
			}

			var expected domain.Project
			updated, err := suite.repo.UpdateProject(ctx, targetID, func(p domain.Project) (domain.Project, error) {
				var fnErr error
				expected, fnErr = tt.updateFunc(p)
				return expected, fnErr
			})
			if tt.wantErrorIs != nil {
				require.ErrorIs(t, err, tt.wantErrorIs)

				stored, err := suite.repo.GetProject(ctx, projectID)
				require.NoError(t, err)
				assertProject(t, original, stored)
				return
			}
			require.NoError(t, err)

			assertProject(t, expected, updated)
			assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

			stored, err := suite.repo.GetProject(ctx, projectID)
			require.NoError(t, err)
			assertProject(t, expected, stored)
		})
	}
}

func (suite *projectRepositorySuite) TestDeleteProject() {
	defer suite.deleteAll()

	tests := []struct {
		name         string
		sellerIDFunc func(domain.Project) string
		targetIDFunc func(uuid.UUID) uuid.UUID
		wantError    string
	}{
		{
			name:         "owner deletes project: ok",
			sellerIDFunc: func(p domain.Project) string { return p.SellerID },
		},
		{
			name:         "another seller: not found",
			sellerIDFunc: func(domain.Project) string { return gofakeit.UUID() },
			wantError:    "q.DeleteProject: project not found",
		},
		{
			name:         "non-existing project: not found",
			sellerIDFunc: func(p domain.Project) string { return p.SellerID },
			targetIDFunc: func(uuid.UUID) uuid.UUID { return uuid.New() },
			wantError:    "q.DeleteProject: project not found",
		},
		{
			name:         "empty project ID: error",
			sellerIDFunc: func(p domain.Project) string { return p.SellerID },
			targetIDFunc: func(uuid.UUID) uuid.UUID { return uuid.Nil },
			wantError:    "projectID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			project := randomProject()
			projectID, err := suite.repo.InsertProject(ctx, project)
			require.NoError(t, err)

			_, err = suite.reviewRepo.InsertReview(ctx, randomReview(projectID))
			require.NoError(t, err)

			targetID := projectID
			if tt.targetIDFunc != nil {
				targetID = tt.targetIDFunc(projectID)
			}

			err = suite.repo.DeleteProject(ctx, targetID, tt.sellerIDFunc(project))
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			_, err = suite.repo.GetProject(ctx, projectID)
			require.True(t, errors.Is(err, domain.ErrProjectNotFound))

			reviews, err := suite.reviewRepo.ListReviews(ctx, projectID)
			require.NoError(t, err)
			assert.Empty(t, reviews)
		})
	}
}

func (suite *projectRepositorySuite) insertProjects(projects ...domain.Project) []uuid.UUID {
	var ids []uuid.UUID

	for _, p := range projects {
		id, err := suite.repo.InsertProject(suite.T().Context(), p)
		suite.Require().NoError(err)
		ids = append(ids, id)
	}

	return ids
}

func (suite *projectRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE projects, reviews, purchases CASCADE")
	suite.NoError(err)
}
