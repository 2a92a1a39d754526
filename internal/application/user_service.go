package application

import (
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/go-hexagonal-users/internal/domain/repository"
	"github.com/oksasatya/go-hexagonal-users/internal/domain/valueobject"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Deps lists the ports a UserService is built from. Events is optional.
type Deps struct {
	Repo   repo.UserRepository
	Hasher valueobject.PasswordHasher
	Clock  Clock
	IDs    IDGenerator
	Events EventPublisher
	Logger *logrus.Logger
}

// UserService implements the user use cases on top of the injected ports.
type UserService struct {
	repo   repo.UserRepository
	hasher valueobject.PasswordHasher
	clock  Clock
	ids    IDGenerator
	events EventPublisher
	logger *logrus.Logger
}

func NewUserService(d Deps) (*UserService, error) {
	switch {
	case d.Repo == nil:
		return nil, errors.New("user service: repository is required")
	case d.Hasher == nil:
		return nil, errors.New("user service: password hasher is required")
	case d.Clock == nil:
		return nil, errors.New("user service: clock is required")
	case d.IDs == nil:
		return nil, errors.New("user service: id generator is required")
	}
	logger := d.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &UserService{
		repo:   d.Repo,
		hasher: d.Hasher,
		clock:  d.Clock,
		ids:    d.IDs,
		events: d.Events,
		logger: logger,
	}, nil
}

func (s *UserService) now() time.Time { return s.clock.Now().UTC() }
