package service

import (
	"context"
	"errors"
	"sync"

	facilitieserrors "slotly/internal/facilities/errors"
	"slotly/internal/facilities/repository"
	"slotly/pkg/config"
	apperrors "slotly/pkg/errors"
	"slotly/pkg/model"
	"slotly/pkg/sanitizer"
)

type FacilityService interface {
	Create(ctx context.Context, f *model.Facility) error
	GetByID(ctx context.Context, id string) (*model.Facility, error)
	GetAll(ctx context.Context, limit int, offset int) ([]*model.Facility, int64, error)
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type facilityService struct {
	repo repository.FacilityRepository
	cfg  *config.Config
}

func NewFacilityService(repo repository.FacilityRepository, cfg *config.Config) FacilityService {
	return &facilityService{
		repo: repo,
		cfg:  cfg,
	}
}

func (s *facilityService) Create(ctx context.Context, f *model.Facility) error {
	f.Name = sanitizer.NormalizeName(f.Name)
	f.Location = sanitizer.NormalizeLocation(f.Location)

	if f.Name == "" {
		return apperrors.InvalidInput("Facility name cannot be empty")
	}
	if f.Capacity < 0 {
		return apperrors.InvalidInput("Facility capacity cannot be negative")
	}

	existing, err := s.repo.FindByName(ctx, f.Name)
	if err != nil && !errors.Is(err, facilitieserrors.ErrNotFound) {
		s.cfg.Log.Error("Failed to check for existing facility", "name", f.Name, "error", err)
		return apperrors.Internal("Failed to check for existing facility", err)
	}
	if existing != nil {
		return apperrors.Conflict("Facility with the same name already exists")
	}

	if err := s.repo.Create(ctx, f); err != nil {
		s.cfg.Log.Error("Failed to create facility", "name", f.Name, "error", err)
		return apperrors.Internal("Failed to create facility", err)
	}

	s.cfg.Log.Info("Facility created", "id", f.ID, "name", f.Name, "capacity", f.Capacity)
	return nil
}

func (s *facilityService) GetByID(ctx context.Context, id string) (*model.Facility, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Facility ID cannot be empty")
	}

	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, facilitieserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Facility", id)
		}
		if errors.Is(err, facilitieserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid facility ID format")
		}
		s.cfg.Log.Error("Failed to get facility", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve facility", err)
	}
	return f, nil
}

func (s *facilityService) GetAll(ctx context.Context, limit int, offset int) ([]*model.Facility, int64, error) {
	var (
		wg         sync.WaitGroup
		facilities []*model.Facility
		count      int64
		findErr    error
		countErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		facilities, findErr = s.repo.FindAll(ctx, limit, offset)
	}()
	go func() {
		defer wg.Done()
		count, countErr = s.repo.Count(ctx)
	}()
	wg.Wait()

	if findErr != nil {
		return nil, 0, apperrors.Internal("Failed to list facilities", findErr)
	}
	if countErr != nil {
		return nil, 0, apperrors.Internal("Failed to count facilities", countErr)
	}
	return facilities, count, nil
}

func (s *facilityService) Exists(ctx context.Context, id string) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *facilityService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Facility ID cannot be empty")
	}

	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, facilitieserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Facility", id)
		}
		if errors.Is(err, facilitieserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid facility ID format")
		}
		s.cfg.Log.Error("Failed to delete facility", "id", id, "error", err)
		return apperrors.Internal("Failed to delete facility", err)
	}

	s.cfg.Log.Info("Facility deleted", "id", id)
	return nil
}
