//go:build integration

package postgres_test

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/oksasatya/go-ddd-user-service/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-user-service/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-service/internal/infrastructure/postgres"
)

type UserRepositorySuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	repo      *postgres.UserRepository
}

func TestUserRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UserRepositorySuite))
}

func (s *UserRepositorySuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("users"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	s.Require().NoError(postgres.Migrate(dsn, "../../../db/migrations", logger))

	s.pool, err = postgres.NewPool(ctx, dsn, postgres.PoolOptions{MaxConns: 10})
	s.Require().NoError(err)
	s.repo = postgres.NewUserRepository(s.pool)
}

func (s *UserRepositorySuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *UserRepositorySuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), "TRUNCATE users")
	s.Require().NoError(err)
}

func (s *UserRepositorySuite) newUser() *entity.User {
	return entity.NewUser(entity.MustUserName("Jon Jonsson"), entity.MustSecretEmailAddress("some@email.com"))
}

func (s *UserRepositorySuite) TestCreateAndGet() {
	ctx := context.Background()
	u := s.newUser()

	created, err := s.repo.Create(ctx, u)
	s.Require().NoError(err)
	s.Same(u, created)

	got, err := s.repo.GetByID(ctx, u.ID)
	s.Require().NoError(err)
	s.True(u.Equal(got))
	s.Nil(got.UpdatedAt)
}

func (s *UserRepositorySuite) TestCreateDuplicateIDIsIO() {
	ctx := context.Background()
	u := s.newUser()
	_, err := s.repo.Create(ctx, u)
	s.Require().NoError(err)

	_, err = s.repo.Create(ctx, u)
	s.ErrorIs(err, apperror.ErrIO)
}

func (s *UserRepositorySuite) TestGetMissingIsNotFound() {
	_, err := s.repo.GetByID(context.Background(), entity.NewUserID())
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *UserRepositorySuite) TestUpdateLastWriteWins() {
	ctx := context.Background()
	u := s.newUser()
	_, err := s.repo.Create(ctx, u)
	s.Require().NoError(err)

	got, err := s.repo.Update(ctx, u.ID, []entity.UserUpdate{
		entity.SetName{Value: entity.MustUserName("A")},
		entity.SetEmailAddress{Value: entity.MustSecretEmailAddress("brand_new_email@address")},
		entity.SetName{Value: entity.MustUserName("B")},
	})
	s.Require().NoError(err)
	s.Equal("B", got.Name.String())
	s.Equal("brand_new_email@address", got.EmailAddress.ExposeSecret().String())
	s.Require().NotNil(got.UpdatedAt)
	s.True(got.CreatedAt.Equal(u.CreatedAt))

	fetched, err := s.repo.GetByID(ctx, u.ID)
	s.Require().NoError(err)
	s.True(got.Equal(fetched))
}

func (s *UserRepositorySuite) TestUpdateMissingIsNotFound() {
	_, err := s.repo.Update(context.Background(), entity.NewUserID(), []entity.UserUpdate{
		entity.SetName{Value: entity.MustUserName("A")},
	})
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *UserRepositorySuite) TestUpdateEmptyIsValidation() {
	ctx := context.Background()
	u := s.newUser()
	_, err := s.repo.Create(ctx, u)
	s.Require().NoError(err)

	_, err = s.repo.Update(ctx, u.ID, nil)
	s.ErrorIs(err, apperror.ErrValidation)
}

func (s *UserRepositorySuite) TestDeleteThenGetIsNotFound() {
	ctx := context.Background()
	u := s.newUser()
	_, err := s.repo.Create(ctx, u)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Delete(ctx, u.ID))
	_, err = s.repo.GetByID(ctx, u.ID)
	s.ErrorIs(err, apperror.ErrNotFound)

	s.NoError(s.repo.Delete(ctx, u.ID), "second delete is still a success")
}

func (s *UserRepositorySuite) TestConcurrentUpdatesAreAtomic() {
	ctx := context.Background()
	u := s.newUser()
	_, err := s.repo.Create(ctx, u)
	s.Require().NoError(err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.repo.Update(ctx, u.ID, []entity.UserUpdate{
				entity.SetName{Value: entity.MustUserName("Racer")},
				entity.SetEmailAddress{Value: entity.MustSecretEmailAddress("racer@mail.com")},
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	got, err := s.repo.GetByID(ctx, u.ID)
	s.Require().NoError(err)
	s.Equal("Racer", got.Name.String())
	s.Equal("racer@mail.com", got.EmailAddress.ExposeSecret().String())
}
