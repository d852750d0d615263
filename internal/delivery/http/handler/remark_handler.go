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

type RemarkHandler struct {
	remarkUsecase usecase.RemarkUsecase
	log           *logrus.Logger
	validator     *validator.CustomValidator
}

func NewRemarkHandler(remarkUsecase usecase.RemarkUsecase, log *logrus.Logger, validator *validator.CustomValidator) *RemarkHandler {
	return &RemarkHandler{
		remarkUsecase: remarkUsecase,
		log:           log,
		validator:     validator,
	}
}

func (h *RemarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	kind, ok := scheduleKindFromPath(w, r)
	if !ok {
		return
	}

	var req dto.CreateRemarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	remark, err := h.remarkUsecase.CreateRemark(r.Context(), kind, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Remark created successfully", remark)
}

func (h *RemarkHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(w, r)
	if !ok {
		return
	}

	var req dto.UpdateRemarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	remark, err := h.remarkUsecase.UpdateRemark(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Remark updated successfully", remark)
}

func (h *RemarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(w, r)
	if !ok {
		return
	}

	if err := h.remarkUsecase.DeleteRemark(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Remark deleted successfully", nil)
}

func (h *RemarkHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrRemarkNotFound),
		errors.Is(err, usecase.ErrUnknownScheduleKind):
		response.NotFound(w, err.Error())
	case errors.Is(err, usecase.ErrRemarkExists):
		response.Conflict(w, err.Error(), nil)
	case errors.Is(err, usecase.ErrInvalidDate):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	default:
		h.log.Errorf("Remark handler error: %+v", err)
		response.InternalServerError(w, "")
	}
}
