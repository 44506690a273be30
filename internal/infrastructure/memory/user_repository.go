package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-ddd-user-service/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-user-service/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-service/internal/domain/repository"
)

// UserRepository keeps users in process memory. Rows are stored in their raw
// shape and re-validated on every read, like the SQL-backed repository.
type UserRepository struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]entity.UserRaw
	now  func() time.Time
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		rows: make(map[uuid.UUID]entity.UserRaw),
		now:  entity.Now,
	}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) (*entity.User, error) {
	raw := u.Raw()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rows[raw.ID]; exists {
		return nil, apperror.IO(errDuplicateID)
	}
	r.rows[raw.ID] = raw
	return u, nil
}

func (r *UserRepository) GetByID(_ context.Context, id entity.UserID) (*entity.User, error) {
	r.mu.RLock()
	raw, ok := r.rows[id.UUID()]
	r.mu.RUnlock()
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return entity.UserFromRaw(raw)
}

// Update applies the operations under the write lock, so the read-modify-write is
// atomic like a single UPDATE statement.
func (r *UserRepository) Update(_ context.Context, id entity.UserID, updates []entity.UserUpdate) (*entity.User, error) {
	if err := entity.ValidateUpdates(updates); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	raw, ok := r.rows[id.UUID()]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	u, err := entity.UserFromRaw(raw)
	if err != nil {
		return nil, err
	}
	if err := entity.ApplyUpdates(u, updates, r.now()); err != nil {
		return nil, err
	}
	r.rows[raw.ID] = u.Raw()
	return u, nil
}

func (r *UserRepository) Delete(_ context.Context, id entity.UserID) error {
	r.mu.Lock()
	delete(r.rows, id.UUID())
	r.mu.Unlock()
	return nil
}

// Len reports the number of stored users.
func (r *UserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows)
}

var _ repository.UserRepository = (*UserRepository)(nil)
