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

type ResourceHandler struct {
	resourceUsecase usecase.ResourceUsecase
	log             *logrus.Logger
	validator       *validator.CustomValidator
}

func NewResourceHandler(resourceUsecase usecase.ResourceUsecase, log *logrus.Logger, validator *validator.CustomValidator) *ResourceHandler {
	return &ResourceHandler{
		resourceUsecase: resourceUsecase,
		log:             log,
		validator:       validator,
	}
}

func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	kind, ok := scheduleKindFromPath(w, r)
	if !ok {
		return
	}

	resources, err := h.resourceUsecase.ListResources(r.Context(), kind)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Resources retrieved successfully", resources)
}

func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	resource, err := h.resourceUsecase.CreateResource(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Resource created successfully", resource)
}

func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(w, r)
	if !ok {
		return
	}

	var req dto.UpdateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	resource, err := h.resourceUsecase.UpdateResource(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Resource updated successfully", resource)
}

func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(w, r)
	if !ok {
		return
	}

	if err := h.resourceUsecase.DeleteResource(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Resource deleted successfully", nil)
}

func (h *ResourceHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrResourceNotFound),
		errors.Is(err, usecase.ErrUnknownScheduleKind):
		response.NotFound(w, err.Error())
	default:
		h.log.Errorf("Resource handler error: %+v", err)
		response.InternalServerError(w, "")
	}
}
