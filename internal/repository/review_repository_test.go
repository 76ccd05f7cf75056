package repository_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/codemarket/internal/domain"
	"github.com/nikolayk812/codemarket/internal/port"
	"github.com/nikolayk812/codemarket/internal/repository"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"go.uber.org/goleak"
)

type reviewRepositorySuite struct {
	suite.Suite

	pool        *pgxpool.Pool
	repo        port.ReviewRepository
	projectRepo port.ProjectRepository
	container   testcontainers.Container
}

// entry point to run the tests in the suite
func TestReviewRepositorySuite(t *testing.T) {
	// Verifies no leaks after all tests in the suite run.
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	suite.Run(t, new(reviewRepositorySuite))
}

// before all tests in the suite
func (suite *reviewRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = newMigratedPool(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo = repository.NewReview(suite.pool)
	suite.projectRepo = repository.NewProject(suite.pool)
}

// after all tests in the suite
func (suite *reviewRepositorySuite) TearDownSuite() {
	ctx := suite.T().Context()

	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(ctx))
	}
}

func (suite *reviewRepositorySuite) TestInsertReview() {
	defer suite.deleteAll()

	projectID, err := suite.projectRepo.InsertProject(suite.T().Context(), randomProject())
	suite.Require().NoError(err)

	tests := []struct {
		name        string
		reviewFunc  func() domain.Review
		wantError   string
		wantErrorIs error
	}{
		{
			name:       "valid review: ok",
			reviewFunc: func() domain.Review { return randomReview(projectID) },
		},
		{
			name: "review without comment: ok",
			reviewFunc: func() domain.Review {
				r := randomReview(projectID)
				r.Comment = ""
				return r
			},
		},
		{
			name:        "unknown project: not found",
			reviewFunc:  func() domain.Review { return randomReview(uuid.New()) },
			wantErrorIs: domain.ErrProjectNotFound,
		},
		{
			name: "empty author: fail",
			reviewFunc: func() domain.Review {
				r := randomReview(projectID)
				r.AuthorID = ""
				return r
			},
			wantError: "authorID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			ttReview := tt.reviewFunc()

			created, err := suite.repo.InsertReview(ctx, ttReview)
			switch {
			case tt.wantError != "":
				require.EqualError(t, err, tt.wantError)
				return
			case tt.wantErrorIs != nil:
				require.ErrorIs(t, err, tt.wantErrorIs)
				return
			}
			require.NoError(t, err)

			assert.NotEqual(t, uuid.Nil, created.ID)
			assert.False(t, created.CreatedAt.IsZero())

			reviews, err := suite.repo.ListReviews(ctx, ttReview.ProjectID)
			require.NoError(t, err)

			stored, found := lo.Find(reviews, func(r domain.Review) bool { return r.ID == created.ID })
			require.True(t, found)
			assertReviews(t, []domain.Review{ttReview}, []domain.Review{stored})
		})
	}
}

func (suite *reviewRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE projects, reviews CASCADE")
	suite.NoError(err)
}
