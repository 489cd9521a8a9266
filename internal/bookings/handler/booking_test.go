package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	apperrors "slotly/pkg/errors"
	"slotly/pkg/logger"
	"slotly/pkg/model"
)

type mockBookingService struct {
	createFunc            func(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	cancelFunc            func(ctx context.Context, id string) error
	checkAvailabilityFunc func(ctx context.Context, facilityID string, date string) ([]*model.Booking, error)
}

func (m *mockBookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &model.Booking{ID: "bk-1", Status: model.StatusConfirmed}, nil
}

func (m *mockBookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingService) GetAll(ctx context.Context, limit int, offset int) ([]*model.Booking, int64, error) {
	return []*model.Booking{}, 0, nil
}

func (m *mockBookingService) Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingService) Cancel(ctx context.Context, id string) error {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, id)
	}
	return nil
}

func (m *mockBookingService) CheckAvailability(ctx context.Context, facilityID string, date string) ([]*model.Booking, error) {
	if m.checkAvailabilityFunc != nil {
		return m.checkAvailabilityFunc(ctx, facilityID, date)
	}
	return []*model.Booking{}, nil
}

func newTestHandler(svc *mockBookingService) *BookingHandler {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.FormatJSON,
		Service: "test",
	})
	return NewBookingHandler(svc, log)
}

func newRouter(h *BookingHandler) *httprouter.Router {
	router := httprouter.New()
	h.RegisterRoutes(router)
	return router
}

func TestCreate_InvalidBody(t *testing.T) {
	router := newRouter(newTestHandler(&mockBookingService{}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestCreate_SlotUnavailableMapsTo409(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
			return nil, apperrors.SlotUnavailable("slot is occupied")
		},
	}
	router := newRouter(newTestHandler(svc))

	body := `{"facility_id":"507f1f77bcf86cd799439011","user_id":"507f191e810c19729de860ea","date":"2026-09-15","start_time":"09:00","end_time":"10:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}

	var resp struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != apperrors.CodeSlotUnavailable {
		t.Errorf("expected code %s, got %s", apperrors.CodeSlotUnavailable, resp.Code)
	}
}

func TestCreate_Success(t *testing.T) {
	var received *model.BookingRequest
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
			received = req
			return &model.Booking{
				ID:         "bk-1",
				FacilityID: req.FacilityID,
				UserID:     req.UserID,
				Date:       req.Date,
				StartTime:  req.StartTime,
				EndTime:    req.EndTime,
				Status:     model.StatusConfirmed,
			}, nil
		},
	}
	router := newRouter(newTestHandler(svc))

	body := `{"facility_id":"507f1f77bcf86cd799439011","user_id":"507f191e810c19729de860ea","date":"2026-09-15","start_time":"09:00","end_time":"10:30"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if received == nil {
		t.Fatal("service did not receive the request")
	}
	if received.StartTime != 9*60 || received.EndTime != 10*60+30 {
		t.Errorf("times decoded wrong: start=%d end=%d", received.StartTime, received.EndTime)
	}

	var resp struct {
		Data model.Booking `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Status != model.StatusConfirmed {
		t.Errorf("expected CONFIRMED, got %s", resp.Data.Status)
	}
}

func TestCancel_NoContent(t *testing.T) {
	var cancelledID string
	svc := &mockBookingService{
		cancelFunc: func(ctx context.Context, id string) error {
			cancelledID = id
			return nil
		},
	}
	router := newRouter(newTestHandler(svc))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/id/bk-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if cancelledID != "bk-1" {
		t.Errorf("expected cancel of bk-1, got %q", cancelledID)
	}
}

func TestCheckAvailability_RequiresQueryParams(t *testing.T) {
	router := newRouter(newTestHandler(&mockBookingService{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/availability?facility_id=fac-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 when date is missing, got %d", rec.Code)
	}
}

func TestCheckAvailability_ReturnsBookings(t *testing.T) {
	svc := &mockBookingService{
		checkAvailabilityFunc: func(ctx context.Context, facilityID string, date string) ([]*model.Booking, error) {
			return []*model.Booking{
				{ID: "bk-1", FacilityID: facilityID, Date: date, StartTime: 9 * 60, EndTime: 10 * 60, Status: model.StatusConfirmed},
				{ID: "bk-2", FacilityID: facilityID, Date: date, StartTime: 10 * 60, EndTime: 11 * 60, Status: model.StatusCancelled},
			}, nil
		},
	}
	router := newRouter(newTestHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/availability?facility_id=507f1f77bcf86cd799439011&date=2026-09-15", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data []model.Booking `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Errorf("expected 2 bookings, got %d", len(resp.Data))
	}
}
