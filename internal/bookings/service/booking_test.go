package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "slotly/internal/bookings/errors"
	"slotly/internal/bookings/events"
	"slotly/internal/bookings/validator"
	"slotly/pkg/config"
	mongotx "slotly/pkg/db/mongo"
	apperrors "slotly/pkg/errors"
	"slotly/pkg/logger"
	"slotly/pkg/model"
)

const (
	facMainHall   = "507f1f77bcf86cd799439011"
	facCourt      = "507f1f77bcf86cd799439012"
	userJohn      = "507f191e810c19729de860ea"
	testDate      = "2026-09-15"
	otherTestDate = "2026-09-16"
)

// mockBookingRepository keeps bookings in memory. Transactions just run the
// callback; serialization of admission comes from the service's slot lock,
// which is exactly what these tests exercise.
type mockBookingRepository struct {
	mu       sync.Mutex
	bookings map[string]*model.Booking
	nextID   int

	// afterFindByID runs after a lookup returns its snapshot, letting tests
	// interleave another operation between a read and the write based on it.
	afterFindByID func(id string)
}

func newMockRepo() *mockBookingRepository {
	return &mockBookingRepository{bookings: make(map[string]*model.Booking)}
}

func (m *mockBookingRepository) Create(ctx context.Context, b *model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	b.ID = fmt.Sprintf("bk-%d", m.nextID)
	b.CreatedAt = time.Now().UTC()
	clone := *b
	m.bookings[b.ID] = &clone
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	m.mu.Lock()
	b, ok := m.bookings[id]
	var clone model.Booking
	if ok {
		clone = *b
	}
	m.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrNotFound, id)
	}
	if m.afterFindByID != nil {
		m.afterFindByID(id)
	}
	return &clone, nil
}

func (m *mockBookingRepository) FindAll(ctx context.Context, limit int, offset int) ([]*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Booking
	for _, b := range m.bookings {
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

func (m *mockBookingRepository) FindByFacilityAndDate(ctx context.Context, facilityID string, date string) ([]*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Booking
	for _, b := range m.bookings {
		if b.FacilityID == facilityID && b.Date == date {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (m *mockBookingRepository) Reschedule(ctx context.Context, id string, date string, start, end model.TimeOfDay) (*mongo.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrNotFound, id)
	}
	b.Date = date
	b.StartTime = start
	b.EndTime = end
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*mongo.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrNotFound, id)
	}
	b.Status = status
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockBookingRepository) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.bookings)), nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(ctx)
}

type mockDirectory struct {
	existsFunc func(ctx context.Context, id string) (bool, error)
}

func (m *mockDirectory) Exists(ctx context.Context, id string) (bool, error) {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, id)
	}
	return true, nil
}

func newTestService(repo *mockBookingRepository) BookingService {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.FormatJSON,
		Service: "test",
	})
	cfg := &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return NewBookingService(
		repo,
		&mockDirectory{},
		&mockDirectory{},
		validator.NewBookingValidator(log),
		events.Nop(),
		cfg,
	)
}

func request(facilityID string, date string, start, end model.TimeOfDay) *model.BookingRequest {
	return &model.BookingRequest{
		FacilityID: facilityID,
		UserID:     userJohn,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
	}
}

func TestCreate_Succeeds(t *testing.T) {
	svc := newTestService(newMockRepo())

	b, err := svc.Create(context.Background(), request(facMainHall, testDate, 9*60, 10*60))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ID == "" {
		t.Error("expected booking to receive an ID")
	}
	if b.Status != model.StatusConfirmed {
		t.Errorf("expected status CONFIRMED, got %s", b.Status)
	}
}

func TestCreate_TouchingIntervalsBothSucceed(t *testing.T) {
	svc := newTestService(newMockRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, request(facMainHall, testDate, 9*60, 10*60)); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := svc.Create(ctx, request(facMainHall, testDate, 10*60, 11*60)); err != nil {
		t.Fatalf("touching booking rejected: %v", err)
	}
}

func TestCreate_OverlapFails(t *testing.T) {
	svc := newTestService(newMockRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, request(facMainHall, testDate, 9*60, 10*60)); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	_, err := svc.Create(ctx, request(facMainHall, testDate, 9*60+30, 10*60+30))
	if !apperrors.HasCode(err, apperrors.CodeSlotUnavailable) {
		t.Fatalf("expected SLOT_UNAVAILABLE, got %v", err)
	}
}

func TestCreate_DifferentFacilityOrDateNeverConflicts(t *testing.T) {
	svc := newTestService(newMockRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, request(facMainHall, testDate, 9*60, 10*60)); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := svc.Create(ctx, request(facCourt, testDate, 9*60, 10*60)); err != nil {
		t.Errorf("same interval on another facility rejected: %v", err)
	}
	if _, err := svc.Create(ctx, request(facMainHall, otherTestDate, 9*60, 10*60)); err != nil {
		t.Errorf("same interval on another date rejected: %v", err)
	}
}

func TestCreate_InvalidInterval(t *testing.T) {
	svc := newTestService(newMockRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, request(facMainHall, testDate, 10*60, 10*60))
	if !apperrors.HasCode(err, apperrors.CodeInvalidInterval) {
		t.Errorf("start == end: expected INVALID_INTERVAL, got %v", err)
	}

	_, err = svc.Create(ctx, request(facMainHall, testDate, 11*60, 10*60))
	if !apperrors.HasCode(err, apperrors.CodeInvalidInterval) {
		t.Errorf("start > end: expected INVALID_INTERVAL, got %v", err)
	}
}

func TestCreate_UnknownReferences(t *testing.T) {
	repo := newMockRepo()
	log := logger.New(logger.Config{Level: "error", Format: logger.FormatJSON, Service: "test"})
	cfg := &config.Config{Log: log, ReadTimeout: 5 * time.Second, WriteTimeout: 5 * time.Second}

	missingFacilities := &mockDirectory{
		existsFunc: func(ctx context.Context, id string) (bool, error) { return false, nil },
	}
	svc := NewBookingService(repo, missingFacilities, &mockDirectory{}, validator.NewBookingValidator(log), events.Nop(), cfg)

	_, err := svc.Create(context.Background(), request(facMainHall, testDate, 9*60, 10*60))
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("unknown facility: expected NOT_FOUND, got %v", err)
	}

	missingUsers := &mockDirectory{
		existsFunc: func(ctx context.Context, id string) (bool, error) { return false, nil },
	}
	svc = NewBookingService(repo, &mockDirectory{}, missingUsers, validator.NewBookingValidator(log), events.Nop(), cfg)

	_, err = svc.Create(context.Background(), request(facMainHall, testDate, 9*60, 10*60))
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("unknown user: expected NOT_FOUND, got %v", err)
	}
}

// Reference resolution happens before interval checks, so a request that is
// wrong on both counts reports the missing facility.
func TestCreate_ReferencesResolvedBeforeInterval(t *testing.T) {
	repo := newMockRepo()
	log := logger.New(logger.Config{Level: "error", Format: logger.FormatJSON, Service: "test"})
	cfg := &config.Config{Log: log, ReadTimeout: 5 * time.Second, WriteTimeout: 5 * time.Second}
	missingFacilities := &mockDirectory{
		existsFunc: func(ctx context.Context, id string) (bool, error) { return false, nil },
	}
	svc := NewBookingService(repo, missingFacilities, &mockDirectory{}, validator.NewBookingValidator(log), events.Nop(), cfg)

	_, err := svc.Create(context.Background(), request(facMainHall, testDate, 10*60, 10*60))
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("unknown facility with bad interval: expected NOT_FOUND, got %v", err)
	}
}

func TestUpdate_SelfExclusion(t *testing.T) {
	svc := newTestService(newMockRepo())
	ctx := context.Background()

	b, err := svc.Create(ctx, request(facMainHall, testDate, 9*60, 10*60))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Re-asserting the identical interval only "conflicts" with itself.
	start := model.TimeOfDay(9 * 60)
	end := model.TimeOfDay(10 * 60)
	updated, err := svc.Update(ctx, b.ID, &model.BookingUpdate{StartTime: &start, EndTime: &end})
	if err != nil {
		t.Fatalf("identical-interval update rejected: %v", err)
	}
	if updated.StartTime != start || updated.EndTime != end {
		t.Errorf("update did not persist interval: got [%s, %s)", updated.StartTime, updated.EndTime)
	}
}

func TestUpdate_ConflictWithOtherBooking(t *testing.T) {
	svc := newTestService(newMockRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, request(facMainHall, testDate, 9*60, 10*60)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	b, err := svc.Create(ctx, request(facMainHall, testDate, 11*60, 12*60))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	start := model.TimeOfDay(9*60 + 30)
	end := model.TimeOfDay(10*60 + 30)
	_, err = svc.Update(ctx, b.ID, &model.BookingUpdate{StartTime: &start, EndTime: &end})
	if !apperrors.HasCode(err, apperrors.CodeSlotUnavailable) {
		t.Errorf("expected SLOT_UNAVAILABLE, got %v", err)
	}
}

func TestUpdate_InvalidInterval(t *testing.T) {
	svc := newTestService(newMockRepo())
	ctx := context.Background()

	b, err := svc.Create(ctx, request(facMainHall, testDate, 9*60, 10*60))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	start := model.TimeOfDay(10 * 60)
	end := model.TimeOfDay(9 * 60)
	_, err = svc.Update(ctx, b.ID, &model.BookingUpdate{StartTime: &start, EndTime: &end})
	if !apperrors.HasCode(err, apperrors.CodeInvalidInterval) {
		t.Errorf("expected INVALID_INTERVAL, got %v", err)
	}
}

func TestUpdate_CancelledBookingFails(t *testing.T) {
	svc := newTestService(newMockRepo())
	ctx := context.Background()

	b, err := svc.Create(ctx, request(facMainHall, testDate, 9*60, 10*60))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Cancel(ctx, b.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	date := otherTestDate
	_, err = svc.Update(ctx, b.ID, &model.BookingUpdate{Date: &date})
	if !apperrors.HasCode(err, apperrors.CodeAlreadyCancelled) {
		t.Errorf("expected ALREADY_CANCELLED, got %v", err)
	}
}

// A cancel that commits between update's initial read and its write must win:
// the booking stays CANCELLED and keeps its schedule.
func TestUpdate_CancelRaceDoesNotResurrect(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	b, err := svc.Create(ctx, request(facMainHall, testDate, 9*60, 10*60))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// A fire-once flag rather than sync.Once: the interleaved Cancel performs
	// its own FindByID, so the hook re-enters and Once.Do would self-deadlock.
	var interleaved bool
	repo.afterFindByID = func(id string) {
		if interleaved {
			return
		}
		interleaved = true
		if err := svc.Cancel(ctx, b.ID); err != nil {
			t.Errorf("interleaved cancel failed: %v", err)
		}
	}

	start := model.TimeOfDay(14 * 60)
	end := model.TimeOfDay(15 * 60)
	_, err = svc.Update(ctx, b.ID, &model.BookingUpdate{StartTime: &start, EndTime: &end})
	if !apperrors.HasCode(err, apperrors.CodeAlreadyCancelled) {
		t.Fatalf("expected ALREADY_CANCELLED, got %v", err)
	}

	repo.afterFindByID = nil
	stored, err := repo.FindByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if stored.Status != model.StatusCancelled {
		t.Errorf("cancelled booking came back as %s", stored.Status)
	}
	if stored.StartTime != 9*60 || stored.EndTime != 10*60 {
		t.Errorf("aborted update changed the schedule: [%s, %s)", stored.StartTime, stored.EndTime)
	}
}

// The mirror interleaving: a reschedule that commits between cancel's initial
// read and its write is kept, since cancel touches only the status field.
func TestCancel_KeepsConcurrentReschedule(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	b, err := svc.Create(ctx, request(facMainHall, testDate, 9*60, 10*60))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Fire-once flag instead of sync.Once; see TestUpdate_CancelRaceDoesNotResurrect.
	var interleaved bool
	repo.afterFindByID = func(id string) {
		if interleaved {
			return
		}
		interleaved = true
		start := model.TimeOfDay(14 * 60)
		end := model.TimeOfDay(15 * 60)
		if _, err := svc.Update(ctx, b.ID, &model.BookingUpdate{StartTime: &start, EndTime: &end}); err != nil {
			t.Errorf("interleaved update failed: %v", err)
		}
	}

	if err := svc.Cancel(ctx, b.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	repo.afterFindByID = nil
	stored, err := repo.FindByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if stored.Status != model.StatusCancelled {
		t.Errorf("expected status CANCELLED, got %s", stored.Status)
	}
	if stored.StartTime != 14*60 || stored.EndTime != 15*60 {
		t.Errorf("cancel clobbered the reschedule: [%s, %s)", stored.StartTime, stored.EndTime)
	}
}

func TestUpdate_MissingBooking(t *testing.T) {
	svc := newTestService(newMockRepo())

	date := testDate
	_, err := svc.Update(context.Background(), "bk-999", &model.BookingUpdate{Date: &date})
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestCancel_ReleasesSlot(t *testing.T) {
	svc := newTestService(newMockRepo())
	ctx := context.Background()

	b, err := svc.Create(ctx, request(facMainHall, testDate, 9*60, 10*60))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Cancel(ctx, b.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if _, err := svc.Create(ctx, request(facMainHall, testDate, 9*60, 10*60)); err != nil {
		t.Errorf("identical interval after cancel rejected: %v", err)
	}
}

func TestCancel_Idempotent(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	b, err := svc.Create(ctx, request(facMainHall, testDate, 9*60, 10*60))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Cancel(ctx, b.ID); err != nil {
		t.Fatalf("first cancel failed: %v", err)
	}
	if err := svc.Cancel(ctx, b.ID); err != nil {
		t.Fatalf("second cancel errored: %v", err)
	}

	stored, err := repo.FindByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if stored.Status != model.StatusCancelled {
		t.Errorf("expected status CANCELLED, got %s", stored.Status)
	}
}

func TestCancel_MissingBooking(t *testing.T) {
	svc := newTestService(newMockRepo())

	err := svc.Cancel(context.Background(), "bk-999")
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestCheckAvailability_ReturnsAllStatuses(t *testing.T) {
	svc := newTestService(newMockRepo())
	ctx := context.Background()

	b, err := svc.Create(ctx, request(facMainHall, testDate, 9*60, 10*60))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(ctx, request(facMainHall, testDate, 11*60, 12*60)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Cancel(ctx, b.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	bookings, err := svc.CheckAvailability(ctx, facMainHall, testDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("expected 2 bookings (cancelled included), got %d", len(bookings))
	}
}

func TestCheckAvailability_UnknownFacility(t *testing.T) {
	repo := newMockRepo()
	log := logger.New(logger.Config{Level: "error", Format: logger.FormatJSON, Service: "test"})
	cfg := &config.Config{Log: log, ReadTimeout: 5 * time.Second, WriteTimeout: 5 * time.Second}
	missing := &mockDirectory{
		existsFunc: func(ctx context.Context, id string) (bool, error) { return false, nil },
	}
	svc := NewBookingService(repo, missing, &mockDirectory{}, validator.NewBookingValidator(log), events.Nop(), cfg)

	_, err := svc.CheckAvailability(context.Background(), facMainHall, testDate)
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestGetAll(t *testing.T) {
	svc := newTestService(newMockRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, request(facMainHall, testDate, 9*60, 10*60)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(ctx, request(facCourt, otherTestDate, 9*60, 10*60)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Run repeatedly; the listing fans out to two goroutines and -race
	// should stay quiet.
	for i := 0; i < 20; i++ {
		bookings, count, err := svc.GetAll(ctx, 10, 0)
		if err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", i, err)
		}
		if count != 2 {
			t.Errorf("iteration %d: expected count 2, got %d", i, count)
		}
		if len(bookings) != 2 {
			t.Errorf("iteration %d: expected 2 bookings, got %d", i, len(bookings))
		}
	}
}

func TestConcurrentCreate_ExactlyOneWins(t *testing.T) {
	svc := newTestService(newMockRepo())

	const workers = 16
	var (
		wg          sync.WaitGroup
		successes   int64
		unavailable int64
		mu          sync.Mutex
		unexpected  []error
	)

	start := make(chan struct{})
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.Create(context.Background(), request(facMainHall, testDate, 9*60, 10*60))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case apperrors.HasCode(err, apperrors.CodeSlotUnavailable):
				unavailable++
			default:
				unexpected = append(unexpected, err)
			}
		}()
	}
	close(start)
	wg.Wait()

	if len(unexpected) > 0 {
		t.Fatalf("unexpected errors: %v", unexpected)
	}
	if successes != 1 {
		t.Errorf("expected exactly 1 success, got %d", successes)
	}
	if unavailable != workers-1 {
		t.Errorf("expected %d SLOT_UNAVAILABLE failures, got %d", workers-1, unavailable)
	}
}

// TestRandomOperations_InvariantHolds hammers the service with a random mix
// of creates, updates, and cancels, then asserts the safety invariant: no two
// confirmed bookings on the same facility and date overlap.
func TestRandomOperations_InvariantHolds(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	rng := rand.New(rand.NewSource(42))
	facilities := []string{facMainHall, facCourt}
	dates := []string{testDate, otherTestDate}

	var created []string
	randomInterval := func() (model.TimeOfDay, model.TimeOfDay) {
		start := model.TimeOfDay(rng.Intn(22) * 60)
		end := start + model.TimeOfDay((rng.Intn(4)+1)*30)
		return start, end
	}

	for i := 0; i < 500; i++ {
		switch rng.Intn(3) {
		case 0:
			start, end := randomInterval()
			fac := facilities[rng.Intn(len(facilities))]
			date := dates[rng.Intn(len(dates))]
			b, err := svc.Create(ctx, request(fac, date, start, end))
			if err == nil {
				created = append(created, b.ID)
			} else if !apperrors.HasCode(err, apperrors.CodeSlotUnavailable) {
				t.Fatalf("create: unexpected error: %v", err)
			}
		case 1:
			if len(created) == 0 {
				continue
			}
			id := created[rng.Intn(len(created))]
			start, end := randomInterval()
			_, err := svc.Update(ctx, id, &model.BookingUpdate{StartTime: &start, EndTime: &end})
			if err != nil &&
				!apperrors.HasCode(err, apperrors.CodeSlotUnavailable) &&
				!apperrors.HasCode(err, apperrors.CodeAlreadyCancelled) {
				t.Fatalf("update: unexpected error: %v", err)
			}
		case 2:
			if len(created) == 0 {
				continue
			}
			id := created[rng.Intn(len(created))]
			if err := svc.Cancel(ctx, id); err != nil {
				t.Fatalf("cancel: unexpected error: %v", err)
			}
		}
	}

	for _, fac := range facilities {
		for _, date := range dates {
			bookings, err := repo.FindByFacilityAndDate(ctx, fac, date)
			if err != nil {
				t.Fatalf("lookup failed: %v", err)
			}
			var confirmed []*model.Booking
			for _, b := range bookings {
				if b.Status == model.StatusConfirmed {
					confirmed = append(confirmed, b)
				}
			}
			for i := 0; i < len(confirmed); i++ {
				for j := i + 1; j < len(confirmed); j++ {
					if confirmed[i].Interval().Overlaps(confirmed[j].Interval()) {
						t.Errorf("facility %s on %s: confirmed bookings %s %s and %s %s overlap",
							fac, date,
							confirmed[i].ID, confirmed[i].Interval(),
							confirmed[j].ID, confirmed[j].Interval(),
						)
					}
				}
			}
		}
	}
}
