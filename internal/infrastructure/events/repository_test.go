package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-user-service/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-user-service/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-service/internal/infrastructure/memory"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []UserEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, evt UserEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func newSubject(t *testing.T, pub Publisher) (*Repository, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	return NewRepository(memory.NewUserRepository(), pub, logger), hook
}

func newUser(t *testing.T) *entity.User {
	t.Helper()
	return entity.NewUser(entity.MustUserName("Jane Roe"), entity.MustSecretEmailAddress("jane@example.com"))
}

func TestRepository_PublishesLifecycle(t *testing.T) {
	pub := &recordingPublisher{}
	repo, _ := newSubject(t, pub)
	ctx := context.Background()

	u := newUser(t)
	_, err := repo.Create(ctx, u)
	require.NoError(t, err)

	name := entity.MustUserName("Janet")
	_, err = repo.Update(ctx, u.ID, []entity.UserUpdate{
		entity.SetName{Value: name},
		entity.SetEmailAddress{Value: entity.MustSecretEmailAddress("janet@example.com")},
		entity.SetName{Value: name},
	})
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, u.ID))

	require.Len(t, pub.events, 3)
	assert.Equal(t, UserCreated, pub.events[0].Type)
	assert.Equal(t, UserUpdated, pub.events[1].Type)
	assert.Equal(t, []entity.UserField{entity.FieldName, entity.FieldEmailAddress}, pub.events[1].Fields)
	assert.Equal(t, UserDeleted, pub.events[2].Type)
	for _, evt := range pub.events {
		assert.Equal(t, u.ID.String(), evt.UserID)
		assert.False(t, evt.OccurredAt.IsZero())
	}
}

func TestRepository_FailedCallsPublishNothing(t *testing.T) {
	pub := &recordingPublisher{}
	repo, _ := newSubject(t, pub)
	ctx := context.Background()

	_, err := repo.Update(ctx, entity.NewUserID(), []entity.UserUpdate{entity.SetName{Value: entity.MustUserName("x")}})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = repo.Update(ctx, entity.NewUserID(), nil)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	assert.Empty(t, pub.events)
}

func TestRepository_PublishFailureDoesNotFailCall(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	repo, hook := newSubject(t, pub)

	u := newUser(t)
	created, err := repo.Create(context.Background(), u)
	require.NoError(t, err)
	assert.True(t, created.Equal(u))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, UserCreated, entry.Data["event"])
}

type fakeChannel struct {
	key string
	msg amqp.Publishing
}

func (c *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	c.key = key
	c.msg = msg
	return nil
}

func TestRabbitPublisher_EventOmitsEmail(t *testing.T) {
	ch := &fakeChannel{}
	p := NewRabbitPublisherWithChannel(ch, "user.events")

	u := newUser(t)
	require.NoError(t, p.Publish(context.Background(), UserEvent{
		Type:       UserCreated,
		UserID:     u.ID.String(),
		OccurredAt: u.CreatedAt,
	}))

	assert.Equal(t, "user.events", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.NotContains(t, string(ch.msg.Body), "jane@example.com")

	var decoded UserEvent
	require.NoError(t, json.Unmarshal(ch.msg.Body, &decoded))
	assert.Equal(t, UserCreated, decoded.Type)
	assert.Equal(t, u.ID.String(), decoded.UserID)
}
