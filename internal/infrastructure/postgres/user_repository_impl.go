package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-ddd-user-service/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-user-service/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-service/internal/domain/repository"
)

const userColumns = "id, name, email_address, created_at, updated_at"

const (
	insertUserSQL = `
		INSERT INTO users (id, name, email_address, created_at)
		VALUES ($1, $2, $3, $4)
	`
	selectUserSQL = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	deleteUserSQL = `DELETE FROM users WHERE id = $1`
)

type UserRepository struct {
	db  DBTX
	now func() time.Time
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db, now: entity.Now}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	raw := u.Raw()
	if _, err := r.db.Exec(ctx, insertUserSQL, raw.ID, raw.Name, raw.EmailAddress, raw.CreatedAt); err != nil {
		return nil, apperror.IO(fmt.Errorf("insert user: %w", err))
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id entity.UserID) (*entity.User, error) {
	raw, err := scanUser(r.db.QueryRow(ctx, selectUserSQL, id.UUID()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		return nil, apperror.IO(fmt.Errorf("select user: %w", err))
	}
	return entity.UserFromRaw(raw)
}

func (r *UserRepository) Update(ctx context.Context, id entity.UserID, updates []entity.UserUpdate) (*entity.User, error) {
	if err := entity.ValidateUpdates(updates); err != nil {
		return nil, err
	}

	query, args := buildUpdateQuery(id, updates, r.now())
	raw, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		return nil, apperror.IO(fmt.Errorf("update user: %w", err))
	}
	return entity.UserFromRaw(raw)
}

// Delete succeeds when no row matched: an absent user and a deleted one look the same.
func (r *UserRepository) Delete(ctx context.Context, id entity.UserID) error {
	if _, err := r.db.Exec(ctx, deleteUserSQL, id.UUID()); err != nil {
		return apperror.IO(fmt.Errorf("delete user: %w", err))
	}
	return nil
}

func scanUser(row pgx.Row) (entity.UserRaw, error) {
	var raw entity.UserRaw
	err := row.Scan(&raw.ID, &raw.Name, &raw.EmailAddress, &raw.CreatedAt, &raw.UpdatedAt)
	return raw, err
}

// assignments accumulates column values in first-seen column order. Setting a
// column again replaces its value, which keeps the last operation for a field
// and avoids the duplicate assignments PostgreSQL rejects.
type assignments struct {
	columns []string
	values  map[string]any
}

func (a *assignments) set(column string, value any) {
	if a.values == nil {
		a.values = make(map[string]any)
	}
	if _, ok := a.values[column]; !ok {
		a.columns = append(a.columns, column)
	}
	a.values[column] = value
}

func foldUpdates(updates []entity.UserUpdate) assignments {
	var a assignments
	for _, upd := range updates {
		switch u := upd.(type) {
		case entity.SetName:
			a.set("name", u.Value.String())
		case entity.SetEmailAddress:
			a.set("email_address", u.Value.ExposeSecret().String())
		}
	}
	return a
}

// buildUpdateQuery compiles updates into one UPDATE ... RETURNING statement.
func buildUpdateQuery(id entity.UserID, updates []entity.UserUpdate, now time.Time) (string, []any) {
	a := foldUpdates(updates)

	args := make([]any, 0, len(a.columns)+2)
	args = append(args, now)

	var b strings.Builder
	b.WriteString("UPDATE users SET updated_at = $1")
	for _, col := range a.columns {
		args = append(args, a.values[col])
		b.WriteString(", ")
		b.WriteString(col)
		b.WriteString(" = $")
		b.WriteString(strconv.Itoa(len(args)))
	}
	args = append(args, id.UUID())
	b.WriteString(" WHERE id = $")
	b.WriteString(strconv.Itoa(len(args)))
	b.WriteString(" RETURNING ")
	b.WriteString(userColumns)

	return b.String(), args
}

var _ repository.UserRepository = (*UserRepository)(nil)
