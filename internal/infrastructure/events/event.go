package events

import (
	"context"
	"time"

	"github.com/oksasatya/go-ddd-user-service/internal/domain/entity"
)

type UserEventType string

const (
	UserCreated UserEventType = "user.created"
	UserUpdated UserEventType = "user.updated"
	UserDeleted UserEventType = "user.deleted"
)

// UserEvent describes a successful user mutation. It never carries the email address.
type UserEvent struct {
	Type       UserEventType      `json:"type"`
	UserID     string             `json:"user_id"`
	Fields     []entity.UserField `json:"fields,omitempty"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// Publisher delivers user events to a broker.
type Publisher interface {
	Publish(ctx context.Context, evt UserEvent) error
}

// NoopPublisher drops every event. Used when events are disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, UserEvent) error { return nil }

func updatedFields(updates []entity.UserUpdate) []entity.UserField {
	seen := make(map[entity.UserField]bool, len(updates))
	fields := make([]entity.UserField, 0, len(updates))
	for _, u := range updates {
		if !seen[u.Field()] {
			seen[u.Field()] = true
			fields = append(fields, u.Field())
		}
	}
	return fields
}
