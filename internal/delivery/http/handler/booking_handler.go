package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/usecase"
	"hospital-scheduling/pkg/response"
	"hospital-scheduling/pkg/validator"

	"github.com/sirupsen/logrus"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	log            *logrus.Logger
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, log *logrus.Logger, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		log:            log,
		validator:      validator,
	}
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(w, r)
	if !ok {
		return
	}

	booking, err := h.bookingUsecase.GetBooking(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Booking retrieved successfully", booking)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	kind, ok := scheduleKindFromPath(w, r)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.CreateBooking(r.Context(), kind, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Booking created successfully", booking)
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(w, r)
	if !ok {
		return
	}

	var req dto.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.UpdateBooking(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Booking updated successfully", booking)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(w, r)
	if !ok {
		return
	}

	var req dto.CancelBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.CancelBooking(r.Context(), id, req.Version)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Booking cancelled successfully", booking)
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(w, r)
	if !ok {
		return
	}

	if err := h.bookingUsecase.DeleteBooking(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Booking deleted successfully", nil)
}

// writeError maps usecase errors to HTTP statuses. Overlaps and stale
// versions are both conflicts; an overlap additionally names the booking
// that holds the slot.
func (h *BookingHandler) writeError(w http.ResponseWriter, err error) {
	var overlap *usecase.OverlapError
	if errors.As(err, &overlap) {
		response.Conflict(w, "Requested time overlaps an existing booking", map[string]string{
			"conflicting_booking_id": overlap.ConflictingID.String(),
		})
		return
	}

	switch {
	case errors.Is(err, usecase.ErrStaleVersion):
		response.Conflict(w, err.Error(), nil)
	case errors.Is(err, usecase.ErrBookingNotFound),
		errors.Is(err, usecase.ErrUnknownScheduleKind):
		response.NotFound(w, err.Error())
	case errors.Is(err, usecase.ErrInvalidDate),
		errors.Is(err, usecase.ErrOffGridStart),
		errors.Is(err, usecase.ErrInvalidDuration),
		errors.Is(err, usecase.ErrPastClosing),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrResourceNotFound),
		errors.Is(err, usecase.ErrResourceInactive),
		errors.Is(err, usecase.ErrPatientNotFound),
		errors.Is(err, usecase.ErrBookingCancelled):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	default:
		h.log.Errorf("Booking handler error: %+v", err)
		response.InternalServerError(w, "")
	}
}
