package service

import (
	"context"
	"errors"
	"sync"

	userserrors "slotly/internal/users/errors"
	"slotly/internal/users/repository"
	"slotly/pkg/config"
	apperrors "slotly/pkg/errors"
	"slotly/pkg/model"
	"slotly/pkg/sanitizer"
)

type UserService interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetAll(ctx context.Context, limit int, offset int) ([]*model.User, int64, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type userService struct {
	repo repository.UserRepository
	cfg  *config.Config
}

func NewUserService(repo repository.UserRepository, cfg *config.Config) UserService {
	return &userService{
		repo: repo,
		cfg:  cfg,
	}
}

func (s *userService) Create(ctx context.Context, u *model.User) error {
	u.Name = sanitizer.NormalizeName(u.Name)
	u.Email = sanitizer.NormalizeEmail(u.Email)

	if u.Name == "" {
		return apperrors.InvalidInput("User name cannot be empty")
	}
	if u.Email == "" {
		return apperrors.InvalidInput("User email cannot be empty")
	}
	switch u.Role {
	case model.RoleAdmin, model.RoleStaff, model.RoleStudent:
	default:
		return apperrors.InvalidInput("User role must be ADMIN, STAFF, or STUDENT")
	}

	existing, err := s.repo.FindByEmail(ctx, u.Email)
	if err != nil && !errors.Is(err, userserrors.ErrNotFound) {
		s.cfg.Log.Error("Failed to check for existing user", "email", u.Email, "error", err)
		return apperrors.Internal("Failed to check for existing user", err)
	}
	if existing != nil {
		return apperrors.Conflict("User with the same email already exists")
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.cfg.Log.Error("Failed to create user", "email", u.Email, "error", err)
		return apperrors.Internal("Failed to create user", err)
	}

	s.cfg.Log.Info("User created", "id", u.ID, "email", u.Email, "role", u.Role)
	return nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", id)
		}
		if errors.Is(err, userserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid user ID format")
		}
		s.cfg.Log.Error("Failed to get user", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}
	return u, nil
}

func (s *userService) GetAll(ctx context.Context, limit int, offset int) ([]*model.User, int64, error) {
	var (
		wg       sync.WaitGroup
		users    []*model.User
		count    int64
		findErr  error
		countErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		users, findErr = s.repo.FindAll(ctx, limit, offset)
	}()
	go func() {
		defer wg.Done()
		count, countErr = s.repo.Count(ctx)
	}()
	wg.Wait()

	if findErr != nil {
		return nil, 0, apperrors.Internal("Failed to list users", findErr)
	}
	if countErr != nil {
		return nil, 0, apperrors.Internal("Failed to count users", countErr)
	}
	return users, count, nil
}

func (s *userService) Exists(ctx context.Context, id string) (bool, error) {
	return s.repo.Exists(ctx, id)
}
