package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-hexagonal-users/internal/domain/entity"
	"github.com/oksasatya/go-hexagonal-users/internal/domain/repository"
	"github.com/oksasatya/go-hexagonal-users/internal/domain/valueobject"
)

const (
	uniqueViolation   = "23505"
	emailConstraint   = "users_email_key"
	selectUserColumns = `id, email, password_hash, is_active, created_at, updated_at`
)

// UserRepository persists users in PostgreSQL. Every method runs a single
// statement on a pooled connection, so a write either commits whole or not at all.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+selectUserColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email valueobject.Email) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+selectUserColumns+` FROM users WHERE email = $1`, email.String())
	return scanUser(row)
}

func (r *UserRepository) Insert(ctx context.Context, u *entity.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, u.ID(), u.Email().String(), u.Password().Encoded(), u.IsActive(), u.CreatedAt(), u.UpdatedAt())
	return translateWriteErr(err)
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $1, password_hash = $2, is_active = $3, updated_at = $4
		WHERE id = $5
	`, u.Email().String(), u.Password().Encoded(), u.IsActive(), u.UpdatedAt(), u.ID())
	if err != nil {
		return translateWriteErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ListPaginated(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+selectUserColumns+`
		FROM users
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*entity.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Ping reports whether the database answers.
func (r *UserRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// scanUser maps a row onto the entity. The stored hash is carried over as-is.
func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		id, email, hash      string
		active               bool
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &email, &hash, &active, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	e, err := valueobject.NewEmail(email)
	if err != nil {
		return nil, fmt.Errorf("stored email for user %s: %w", id, err)
	}
	pw, err := valueobject.NewHashedPassword(hash)
	if err != nil {
		return nil, fmt.Errorf("stored password for user %s: %w", id, err)
	}
	return entity.RestoreUser(id, e, pw, active, createdAt, updatedAt)
}

func translateWriteErr(err error) error {
	if isUniqueViolation(err, emailConstraint) {
		return repository.ErrDuplicateEmail
	}
	return err
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint violation
// (code 23505) on constraint; an empty constraint matches any.
func isUniqueViolation(err error, constraint string) bool {
	var pge *pgconn.PgError
	if !errors.As(err, &pge) || pge.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pge.ConstraintName == constraint
}

var _ repository.UserRepository = (*UserRepository)(nil)
