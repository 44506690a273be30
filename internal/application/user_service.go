package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-service/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-user-service/internal/domain/repository"
)

// UserService is the use-case surface consumed by transports.
type UserService interface {
	Create(ctx context.Context, u *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id entity.UserID) (*entity.User, error)
	Update(ctx context.Context, id entity.UserID, updates []entity.UserUpdate) (*entity.User, error)
	Delete(ctx context.Context, id entity.UserID) error
}

// Service forwards each call to the repository unchanged and logs completed
// writes by user id. Email addresses never reach the log.
type Service struct {
	Repo   repo.UserRepository
	Logger *logrus.Logger
}

func NewService(repo repo.UserRepository, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{Repo: repo, Logger: logger}
}

func (s *Service) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	created, err := s.Repo.Create(ctx, u)
	if err != nil {
		return nil, err
	}
	s.Logger.WithField("user_id", created.ID.String()).Info("user created")
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id entity.UserID) (*entity.User, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id entity.UserID, updates []entity.UserUpdate) (*entity.User, error) {
	updated, err := s.Repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	fields := make([]string, 0, len(updates))
	for _, up := range updates {
		fields = append(fields, string(up.Field()))
	}
	s.Logger.WithFields(logrus.Fields{"user_id": id.String(), "fields": fields}).Info("user updated")
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id entity.UserID) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Logger.WithField("user_id", id.String()).Info("user deleted")
	return nil
}

var _ UserService = (*Service)(nil)
