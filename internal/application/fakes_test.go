package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-hexagonal-users/internal/domain/entity"
	"github.com/oksasatya/go-hexagonal-users/internal/domain/repository"
	"github.com/oksasatya/go-hexagonal-users/internal/domain/valueobject"
	"github.com/oksasatya/go-hexagonal-users/internal/infrastructure/memory"
)

// fakeHasher salts with a counter so encodings differ per call, like bcrypt.
type fakeHasher struct {
	calls atomic.Int64
}

func (h *fakeHasher) Hash(plain string) (string, error) {
	n := h.calls.Add(1)
	return fmt.Sprintf("fake$%d$%s", n, plain), nil
}

func (h *fakeHasher) Compare(encoded, plain string) bool {
	parts := strings.SplitN(encoded, "$", 3)
	return len(parts) == 3 && parts[0] == "fake" && parts[2] == plain
}

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type seqIDs struct {
	n atomic.Int64
}

func (g *seqIDs) NewID() string {
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", g.n.Add(1))
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []UserRegistered
	err    error
}

func (p *recordingPublisher) PublishUserRegistered(_ context.Context, evt UserRegistered) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, evt)
	return nil
}

// blindRepo skips the application level pre-check so callers race straight into Insert.
type blindRepo struct {
	*memory.UserRepository
}

func (blindRepo) FindByEmail(context.Context, valueobject.Email) (*entity.User, error) {
	return nil, repository.ErrNotFound
}

var errStoreDown = errors.New("connection refused")

// downRepo fails every call the way an unreachable database would.
type downRepo struct {
	*memory.UserRepository
}

func (downRepo) FindByID(context.Context, string) (*entity.User, error) { return nil, errStoreDown }
func (downRepo) FindByEmail(context.Context, valueobject.Email) (*entity.User, error) {
	return nil, errStoreDown
}
func (downRepo) Insert(context.Context, *entity.User) error { return errStoreDown }
func (downRepo) ListPaginated(context.Context, int, int) ([]*entity.User, error) {
	return nil, errStoreDown
}
func (downRepo) Count(context.Context) (int, error)   { return 0, errStoreDown }
func (downRepo) Delete(context.Context, string) error { return errStoreDown }

type fixture struct {
	svc    *UserService
	repo   *memory.UserRepository
	hasher *fakeHasher
	clock  *fixedClock
	events *recordingPublisher
}

var epoch = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, nil)
}

// newFixtureWith builds the service over wrap(memory repo) when wrap is set.
func newFixtureWith(t *testing.T, wrap func(*memory.UserRepository) repository.UserRepository) *fixture {
	t.Helper()
	f := &fixture{
		repo:   memory.NewUserRepository(),
		hasher: &fakeHasher{},
		clock:  &fixedClock{now: epoch},
		events: &recordingPublisher{},
	}
	var r repository.UserRepository = f.repo
	if wrap != nil {
		r = wrap(f.repo)
	}
	svc, err := NewUserService(Deps{
		Repo:   r,
		Hasher: f.hasher,
		Clock:  f.clock,
		IDs:    &seqIDs{},
		Events: f.events,
	})
	require.NoError(t, err)
	f.svc = svc
	return f
}
