package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/oksasatya/go-hexagonal-users/internal/domain/entity"
	"github.com/oksasatya/go-hexagonal-users/internal/domain/repository"
	"github.com/oksasatya/go-hexagonal-users/internal/domain/valueobject"
)

// UserRepository keeps users in process memory. It enforces the same unique
// email constraint as the postgres schema and is safe for concurrent use.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*entity.User
	byEmail map[valueobject.Email]string
	order   []string // insertion order
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*entity.User),
		byEmail: make(map[valueobject.Email]string),
	}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u.Clone(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email valueobject.Email) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.byID[id].Clone(), nil
}

func (r *UserRepository) Insert(ctx context.Context, u *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byEmail[u.Email()]; taken {
		return repository.ErrDuplicateEmail
	}
	if _, exists := r.byID[u.ID()]; exists {
		return fmt.Errorf("memory: user %s already exists", u.ID())
	}
	r.byID[u.ID()] = u.Clone()
	r.byEmail[u.Email()] = u.ID()
	r.order = append(r.order, u.ID())
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byID[u.ID()]
	if !ok {
		return repository.ErrNotFound
	}
	if owner, taken := r.byEmail[u.Email()]; taken && owner != u.ID() {
		return repository.ErrDuplicateEmail
	}
	delete(r.byEmail, current.Email())
	r.byEmail[u.Email()] = u.ID()
	r.byID[u.ID()] = u.Clone()
	return nil
}

func (r *UserRepository) ListPaginated(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if offset >= len(r.order) || limit <= 0 {
		return []*entity.User{}, nil
	}
	end := offset + limit
	if end > len(r.order) {
		end = len(r.order)
	}
	out := make([]*entity.User, 0, end-offset)
	for _, id := range r.order[offset:end] {
		out = append(out, r.byID[id].Clone())
	}
	return out, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byEmail, u.Email())
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Ping satisfies the health checker; memory is always reachable.
func (r *UserRepository) Ping(ctx context.Context) error { return ctx.Err() }

var _ repository.UserRepository = (*UserRepository)(nil)
