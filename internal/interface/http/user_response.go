package handlers

import (
	"time"

	"github.com/oksasatya/go-ddd-user-service/internal/domain/entity"
)

type userResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// toUserResponse is the only place the email address leaves its secret wrapper.
func toUserResponse(u *entity.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Name:      u.Name.String(),
		Email:     u.EmailAddress.ExposeSecret().String(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
