package events

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-service/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-service/internal/domain/repository"
)

// Repository decorates a UserRepository and publishes an event after each
// successful mutation. Publishing failures are logged and do not fail the call.
type Repository struct {
	next      repository.UserRepository
	publisher Publisher
	logger    *logrus.Logger
}

func NewRepository(next repository.UserRepository, publisher Publisher, logger *logrus.Logger) *Repository {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &Repository{next: next, publisher: publisher, logger: logger}
}

func (r *Repository) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	created, err := r.next.Create(ctx, u)
	if err != nil {
		return nil, err
	}
	r.publish(ctx, UserEvent{Type: UserCreated, UserID: created.ID.String(), OccurredAt: created.CreatedAt})
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id entity.UserID) (*entity.User, error) {
	return r.next.GetByID(ctx, id)
}

func (r *Repository) Update(ctx context.Context, id entity.UserID, updates []entity.UserUpdate) (*entity.User, error) {
	updated, err := r.next.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	evt := UserEvent{Type: UserUpdated, UserID: updated.ID.String(), Fields: updatedFields(updates)}
	if updated.UpdatedAt != nil {
		evt.OccurredAt = *updated.UpdatedAt
	} else {
		evt.OccurredAt = entity.Now()
	}
	r.publish(ctx, evt)
	return updated, nil
}

func (r *Repository) Delete(ctx context.Context, id entity.UserID) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.publish(ctx, UserEvent{Type: UserDeleted, UserID: id.String(), OccurredAt: entity.Now()})
	return nil
}

func (r *Repository) publish(ctx context.Context, evt UserEvent) {
	if err := r.publisher.Publish(ctx, evt); err != nil && r.logger != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"event":   evt.Type,
			"user_id": evt.UserID,
		}).Warn("publish user event failed")
	}
}

var _ repository.UserRepository = (*Repository)(nil)
