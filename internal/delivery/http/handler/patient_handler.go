package handler

import (
	"net/http"

	"hospital-scheduling/internal/usecase"
	"hospital-scheduling/pkg/response"

	"github.com/sirupsen/logrus"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	log            *logrus.Logger
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, log *logrus.Logger) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		log:            log,
	}
}

// Search serves GET /api/patients/search?q=... against the EMR mirror.
func (h *PatientHandler) Search(w http.ResponseWriter, r *http.Request) {
	result, err := h.patientUsecase.SearchPatients(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.log.Errorf("Patient search error: %+v", err)
		response.InternalServerError(w, "")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", result)
}
