package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	facilitieserrors "slotly/internal/facilities/errors"
	"slotly/pkg/config"
	apperrors "slotly/pkg/errors"
	"slotly/pkg/logger"
	"slotly/pkg/model"
)

type mockFacilityRepository struct {
	createFunc     func(ctx context.Context, f *model.Facility) error
	findByIDFunc   func(ctx context.Context, id string) (*model.Facility, error)
	findAllFunc    func(ctx context.Context, limit int, offset int) ([]*model.Facility, error)
	findByNameFunc func(ctx context.Context, name string) (*model.Facility, error)
	existsFunc     func(ctx context.Context, id string) (bool, error)
	countFunc      func(ctx context.Context) (int64, error)
	deleteFunc     func(ctx context.Context, id string) error
}

func (m *mockFacilityRepository) Create(ctx context.Context, f *model.Facility) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, f)
	}
	f.ID = "fac-1"
	return nil
}

func (m *mockFacilityRepository) FindByID(ctx context.Context, id string) (*model.Facility, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, fmt.Errorf("%w: %s", facilitieserrors.ErrNotFound, id)
}

func (m *mockFacilityRepository) FindAll(ctx context.Context, limit int, offset int) ([]*model.Facility, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Facility{}, nil
}

func (m *mockFacilityRepository) FindByName(ctx context.Context, name string) (*model.Facility, error) {
	if m.findByNameFunc != nil {
		return m.findByNameFunc(ctx, name)
	}
	return nil, fmt.Errorf("%w: %s", facilitieserrors.ErrNotFound, name)
}

func (m *mockFacilityRepository) Exists(ctx context.Context, id string) (bool, error) {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, id)
	}
	return false, nil
}

func (m *mockFacilityRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockFacilityRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log:          logger.New(logger.Config{Level: "error", Format: logger.FormatJSON, Service: "test"}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func TestCreate_NormalizesAndPersists(t *testing.T) {
	var stored *model.Facility
	repo := &mockFacilityRepository{
		createFunc: func(ctx context.Context, f *model.Facility) error {
			f.ID = "fac-1"
			stored = f
			return nil
		},
	}
	svc := NewFacilityService(repo, testConfig())

	f := &model.Facility{Name: "  main   hall ", Location: " Building A ", Capacity: 500}
	if err := svc.Create(context.Background(), f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil {
		t.Fatal("facility was not persisted")
	}
	if stored.Name != "main hall" {
		t.Errorf("expected normalized name %q, got %q", "main hall", stored.Name)
	}
	if stored.Location != "Building A" {
		t.Errorf("expected normalized location %q, got %q", "Building A", stored.Location)
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	repo := &mockFacilityRepository{
		findByNameFunc: func(ctx context.Context, name string) (*model.Facility, error) {
			return &model.Facility{ID: "fac-1", Name: name}, nil
		},
	}
	svc := NewFacilityService(repo, testConfig())

	err := svc.Create(context.Background(), &model.Facility{Name: "Main Hall", Capacity: 500})
	if !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Errorf("expected CONFLICT, got %v", err)
	}
}

func TestCreate_RejectsEmptyNameAndNegativeCapacity(t *testing.T) {
	svc := NewFacilityService(&mockFacilityRepository{}, testConfig())

	err := svc.Create(context.Background(), &model.Facility{Name: "   "})
	if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("empty name: expected INVALID_INPUT, got %v", err)
	}

	err = svc.Create(context.Background(), &model.Facility{Name: "Main Hall", Capacity: -1})
	if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("negative capacity: expected INVALID_INPUT, got %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewFacilityService(&mockFacilityRepository{}, testConfig())

	_, err := svc.GetByID(context.Background(), "fac-404")
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestGetAll(t *testing.T) {
	repo := &mockFacilityRepository{
		findAllFunc: func(ctx context.Context, limit int, offset int) ([]*model.Facility, error) {
			return []*model.Facility{{ID: "fac-1", Name: "Main Hall"}}, nil
		},
		countFunc: func(ctx context.Context) (int64, error) {
			return 3, nil
		},
	}
	svc := NewFacilityService(repo, testConfig())

	facilities, count, err := svc.GetAll(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected count 3, got %d", count)
	}
	if len(facilities) != 1 {
		t.Errorf("expected 1 facility, got %d", len(facilities))
	}
}
