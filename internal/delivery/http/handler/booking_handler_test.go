package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/testutil"
	"hospital-scheduling/internal/usecase"
	"hospital-scheduling/pkg/response"
	"hospital-scheduling/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBookingUsecase returns canned results per method.
type stubBookingUsecase struct {
	booking *dto.BookingResponse
	err     error
}

func (s *stubBookingUsecase) GetBooking(context.Context, uuid.UUID) (*dto.BookingResponse, error) {
	return s.booking, s.err
}

func (s *stubBookingUsecase) CreateBooking(context.Context, entity.ScheduleKind, *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	return s.booking, s.err
}

func (s *stubBookingUsecase) UpdateBooking(context.Context, uuid.UUID, *dto.UpdateBookingRequest) (*dto.BookingResponse, error) {
	return s.booking, s.err
}

func (s *stubBookingUsecase) CancelBooking(context.Context, uuid.UUID, int) (*dto.BookingResponse, error) {
	return s.booking, s.err
}

func (s *stubBookingUsecase) DeleteBooking(context.Context, uuid.UUID) error {
	return s.err
}

func newBookingHandler(u usecase.BookingUsecase) *BookingHandler {
	return NewBookingHandler(u, testutil.Logger(), validator.NewValidator())
}

func validCreateBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(dto.CreateBookingRequest{
		ResourceID:      uuid.New(),
		Date:            "2026-09-07",
		StartSlot:       "09:00",
		DurationMinutes: 60,
		PatientNameRaw:  "김철수",
		PatientCategory: "outpatient",
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func createRequest(t *testing.T, kind string, body *bytes.Buffer) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/schedules/"+kind+"/bookings", body)
	return mux.SetURLVars(req, map[string]string{"kind": kind})
}

func TestCreateBookingHandler(t *testing.T) {
	stub := &stubBookingUsecase{booking: &dto.BookingResponse{ID: uuid.New(), Version: 1}}
	h := newBookingHandler(stub)

	rec := httptest.NewRecorder()
	h.Create(rec, createRequest(t, "rf", validCreateBody(t)))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestCreateBookingHandlerOverlapConflict(t *testing.T) {
	conflicting := uuid.New()
	h := newBookingHandler(&stubBookingUsecase{err: &usecase.OverlapError{ConflictingID: conflicting}})

	rec := httptest.NewRecorder()
	h.Create(rec, createRequest(t, "rf", validCreateBody(t)))

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp struct {
		Error map[string]string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, conflicting.String(), resp.Error["conflicting_booking_id"])
}

func TestCreateBookingHandlerValidation(t *testing.T) {
	h := newBookingHandler(&stubBookingUsecase{})

	// Missing patient name and id.
	body, _ := json.Marshal(dto.CreateBookingRequest{
		ResourceID:      uuid.New(),
		Date:            "2026-09-07",
		StartSlot:       "09:00",
		DurationMinutes: 60,
		PatientCategory: "outpatient",
	})
	rec := httptest.NewRecorder()
	h.Create(rec, createRequest(t, "rf", bytes.NewBuffer(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBookingHandlerUnknownKind(t *testing.T) {
	h := newBookingHandler(&stubBookingUsecase{})

	rec := httptest.NewRecorder()
	h.Create(rec, createRequest(t, "surgery", validCreateBody(t)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateBookingHandlerStaleVersion(t *testing.T) {
	h := newBookingHandler(&stubBookingUsecase{err: usecase.ErrStaleVersion})

	body, _ := json.Marshal(dto.UpdateBookingRequest{Version: 1})
	req := httptest.NewRequest(http.MethodPatch, "/api/bookings/"+uuid.NewString(), bytes.NewBuffer(body))
	req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})

	rec := httptest.NewRecorder()
	h.Update(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetBookingHandlerNotFound(t *testing.T) {
	h := newBookingHandler(&stubBookingUsecase{err: usecase.ErrBookingNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/"+uuid.NewString(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})

	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetBookingHandlerBadID(t *testing.T) {
	h := newBookingHandler(&stubBookingUsecase{})

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/nope", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "nope"})

	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelBookingHandler(t *testing.T) {
	h := newBookingHandler(&stubBookingUsecase{booking: &dto.BookingResponse{Status: "cancelled", Version: 2}})

	body, _ := json.Marshal(dto.CancelBookingRequest{Version: 1})
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/"+uuid.NewString()+"/cancel", bytes.NewBuffer(body))
	req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})

	rec := httptest.NewRecorder()
	h.Cancel(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateBookingHandlerPastClosing(t *testing.T) {
	h := newBookingHandler(&stubBookingUsecase{err: usecase.ErrPastClosing})

	rec := httptest.NewRecorder()
	h.Create(rec, createRequest(t, "rf", validCreateBody(t)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
