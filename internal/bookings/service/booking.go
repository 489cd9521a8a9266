package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"slotly/internal/bookings/conflict"
	bookingserrors "slotly/internal/bookings/errors"
	"slotly/internal/bookings/events"
	"slotly/internal/bookings/repository"
	"slotly/internal/bookings/validator"
	"slotly/pkg/config"
	apperrors "slotly/pkg/errors"
	"slotly/pkg/model"
)

// FacilityDirectory resolves facility references. The facilities service
// owns facility records; admission only needs existence.
type FacilityDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// UserDirectory resolves user references.
type UserDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int) ([]*model.Booking, int64, error)
	Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error)
	Cancel(ctx context.Context, id string) error
	CheckAvailability(ctx context.Context, facilityID string, date string) ([]*model.Booking, error)
}

type bookingService struct {
	repo       repository.BookingRepository
	detector   *conflict.Detector
	facilities FacilityDirectory
	users      UserDirectory
	validator  *validator.BookingValidator
	publisher  events.Publisher
	locks      *slotLock
	cfg        *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	facilities FacilityDirectory,
	users UserDirectory,
	bookingValidator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:       repo,
		detector:   conflict.NewDetector(repo),
		facilities: facilities,
		users:      users,
		validator:  bookingValidator,
		publisher:  publisher,
		locks:      newSlotLock(),
		cfg:        cfg,
	}
}

// Create admits a new booking. The slot lock plus the transaction make the
// conflict-check-then-insert sequence atomic per (facility, date): of any
// set of concurrent overlapping requests for one slot, exactly one commits.
func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed",
			"facility_id", req.FacilityID,
			"user_id", req.UserID,
			"error", err,
		)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.resolveReferences(ctx, req.FacilityID, req.UserID); err != nil {
		return nil, err
	}

	interval, err := model.NewInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	booking := &model.Booking{
		FacilityID: req.FacilityID,
		UserID:     req.UserID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Status:     model.StatusConfirmed,
	}

	unlock := s.locks.Lock(req.FacilityID, req.Date)
	defer unlock()

	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		occupied, err := s.detector.HasConflict(txCtx, req.FacilityID, req.Date, interval, "")
		if err != nil {
			return apperrors.Internal("Failed to check slot availability", err)
		}
		if occupied {
			return apperrors.SlotUnavailable(slotUnavailableMessage(req.FacilityID, req.Date, interval))
		}
		return s.repo.Create(txCtx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Booking created",
		"id", booking.ID,
		"facility_id", booking.FacilityID,
		"date", booking.Date,
		"interval", interval.String(),
	)
	s.publishEvent(ctx, s.publisher.BookingCreated, booking, events.EventBookingCreated)
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, id)
	}
	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int) ([]*model.Booking, int64, error) {
	var (
		wg       sync.WaitGroup
		bookings []*model.Booking
		count    int64
		findErr  error
		countErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		bookings, findErr = s.repo.FindAll(ctx, limit, offset)
	}()
	go func() {
		defer wg.Done()
		count, countErr = s.repo.Count(ctx)
	}()
	wg.Wait()

	if findErr != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", findErr)
		return nil, 0, apperrors.Internal("Failed to list bookings", findErr)
	}
	if countErr != nil {
		s.cfg.Log.Error("Failed to count bookings", "error", countErr)
		return nil, 0, apperrors.Internal("Failed to count bookings", countErr)
	}

	return bookings, count, nil
}

// Update moves a booking to a new date or time. The facility never changes;
// conflicts are checked against the booking's own facility with the booking
// itself excluded, so re-asserting the current interval succeeds.
func (s *bookingService) Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		return nil, apperrors.Validation("Booking update validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, id)
	}

	if existing.Status == model.StatusCancelled {
		return nil, apperrors.AlreadyCancelled(fmt.Sprintf("booking %s is cancelled and cannot be modified", id))
	}

	lockDate := existing.Date
	if updates.Date != nil {
		lockDate = *updates.Date
	}

	unlock := s.locks.Lock(existing.FacilityID, lockDate)
	defer unlock()

	// The pre-lock read only picked the lock key. The booking is re-read and
	// re-checked here so a cancel that landed in between is not overwritten.
	var updated model.Booking
	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		if current.Status == model.StatusCancelled {
			return apperrors.AlreadyCancelled(fmt.Sprintf("booking %s is cancelled and cannot be modified", id))
		}

		updated = *current
		if updates.Date != nil {
			updated.Date = *updates.Date
		}
		if updates.StartTime != nil {
			updated.StartTime = *updates.StartTime
		}
		if updates.EndTime != nil {
			updated.EndTime = *updates.EndTime
		}

		interval, err := model.NewInterval(updated.StartTime, updated.EndTime)
		if err != nil {
			return err
		}

		occupied, err := s.detector.HasConflict(txCtx, updated.FacilityID, updated.Date, interval, id)
		if err != nil {
			return apperrors.Internal("Failed to check slot availability", err)
		}
		if occupied {
			return apperrors.SlotUnavailable(slotUnavailableMessage(updated.FacilityID, updated.Date, interval))
		}
		_, err = s.repo.Reschedule(txCtx, id, updated.Date, updated.StartTime, updated.EndTime)
		return err
	})
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		return nil, err
	}

	s.cfg.Log.Info("Booking updated",
		"id", id,
		"date", updated.Date,
		"interval", updated.Interval().String(),
	)
	s.publishEvent(ctx, s.publisher.BookingUpdated, &updated, events.EventBookingUpdated)
	return &updated, nil
}

// Cancel transitions a booking to cancelled. Cancelling a booking that is
// already cancelled succeeds without touching the store. A missing booking
// id is reported as not found rather than silently ignored.
func (s *bookingService) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.mapLookupError(err, id)
	}

	if existing.Status == model.StatusCancelled {
		return nil
	}

	// Hold the slot lock so an in-flight create on the same slot never
	// observes a half-applied cancellation.
	unlock := s.locks.Lock(existing.FacilityID, existing.Date)
	defer unlock()

	// Re-read under the lock and write the status field alone, so a
	// reschedule that committed after the first read is kept.
	var cancelled model.Booking
	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		cancelled = *current
		cancelled.Status = model.StatusCancelled
		if current.Status == model.StatusCancelled {
			return nil
		}
		_, err = s.repo.UpdateStatus(txCtx, id, model.StatusCancelled)
		return err
	})
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to cancel booking", "id", id, "error", err)
		return apperrors.Internal("Failed to cancel booking", err)
	}

	s.cfg.Log.Info("Booking cancelled", "id", id)
	s.publishEvent(ctx, s.publisher.BookingCancelled, &cancelled, events.EventBookingCancelled)
	return nil
}

// CheckAvailability returns every booking on the facility for that date,
// cancelled ones included. Deriving free slots is left to the caller.
func (s *bookingService) CheckAvailability(ctx context.Context, facilityID string, date string) ([]*model.Booking, error) {
	if facilityID == "" {
		return nil, apperrors.InvalidInput("Facility ID cannot be empty")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, apperrors.InvalidInput("Date must be in YYYY-MM-DD format")
	}

	exists, err := s.facilities.Exists(ctx, facilityID)
	if err != nil {
		return nil, apperrors.Internal("Failed to resolve facility", err)
	}
	if !exists {
		return nil, apperrors.NotFoundWithID("Facility", facilityID)
	}

	bookings, err := s.repo.FindByFacilityAndDate(ctx, facilityID, date)
	if err != nil {
		s.cfg.Log.Error("Failed to load bookings",
			"facility_id", facilityID,
			"date", date,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to load bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) resolveReferences(ctx context.Context, facilityID string, userID string) error {
	exists, err := s.facilities.Exists(ctx, facilityID)
	if err != nil {
		return apperrors.Internal("Failed to resolve facility", err)
	}
	if !exists {
		return apperrors.NotFoundWithID("Facility", facilityID)
	}

	exists, err = s.users.Exists(ctx, userID)
	if err != nil {
		return apperrors.Internal("Failed to resolve user", err)
	}
	if !exists {
		return apperrors.NotFoundWithID("User", userID)
	}
	return nil
}

func (s *bookingService) mapLookupError(err error, id string) error {
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Booking", id)
	}
	if errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	s.cfg.Log.Error("Failed to load booking", "id", id, "error", err)
	return apperrors.Internal("Failed to retrieve booking", err)
}

func slotUnavailableMessage(facilityID string, date string, interval model.Interval) string {
	return fmt.Sprintf("slot %s on %s for facility %s overlaps an existing booking", interval, date, facilityID)
}

func (s *bookingService) publishEvent(ctx context.Context, publish func(context.Context, *model.Booking) error, b *model.Booking, eventType string) {
	if err := publish(ctx, b); err != nil {
		s.cfg.Log.Warn("Booking event not published",
			"event_type", eventType,
			"booking_id", b.ID,
			"error", err,
		)
	}
}
