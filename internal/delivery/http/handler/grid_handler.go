package handler

import (
	"errors"
	"net/http"
	"strconv"

	"hospital-scheduling/internal/usecase"
	"hospital-scheduling/pkg/response"

	"github.com/sirupsen/logrus"
)

type GridHandler struct {
	gridUsecase usecase.GridUsecase
	log         *logrus.Logger
}

func NewGridHandler(gridUsecase usecase.GridUsecase, log *logrus.Logger) *GridHandler {
	return &GridHandler{
		gridUsecase: gridUsecase,
		log:         log,
	}
}

// Daily serves GET /api/schedules/{kind}/daily?date=YYYY-MM-DD.
func (h *GridHandler) Daily(w http.ResponseWriter, r *http.Request) {
	kind, ok := scheduleKindFromPath(w, r)
	if !ok {
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "date query parameter is required", nil)
		return
	}

	grid, err := h.gridUsecase.DailyGrid(r.Context(), kind, date)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Daily grid retrieved successfully", grid)
}

// Weekly serves GET /api/schedules/{kind}/weekly?week_start=YYYY-MM-DD.
func (h *GridHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	kind, ok := scheduleKindFromPath(w, r)
	if !ok {
		return
	}
	weekStart := r.URL.Query().Get("week_start")
	if weekStart == "" {
		response.Error(w, http.StatusBadRequest, "week_start query parameter is required", nil)
		return
	}

	grid, err := h.gridUsecase.WeeklyGrid(r.Context(), kind, weekStart)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Weekly grid retrieved successfully", grid)
}

// Monthly serves GET /api/schedules/{kind}/monthly?year=YYYY&month=M.
func (h *GridHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	kind, ok := scheduleKindFromPath(w, r)
	if !ok {
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "year query parameter is required", nil)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "month query parameter is required", nil)
		return
	}

	grid, err := h.gridUsecase.MonthlyGrid(r.Context(), kind, year, month)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Monthly grid retrieved successfully", grid)
}

func (h *GridHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrUnknownScheduleKind):
		response.NotFound(w, err.Error())
	case errors.Is(err, usecase.ErrInvalidDate):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	default:
		h.log.Errorf("Grid handler error: %+v", err)
		response.InternalServerError(w, "")
	}
}
