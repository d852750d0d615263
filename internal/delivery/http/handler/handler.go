package handler

import (
	"net/http"

	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// scheduleKindFromPath reads the {kind} path variable. An unknown kind writes
// a 404 and returns false; the caller just returns.
func scheduleKindFromPath(w http.ResponseWriter, r *http.Request) (entity.ScheduleKind, bool) {
	kind := entity.ScheduleKind(mux.Vars(r)["kind"])
	if !kind.Valid() {
		response.NotFound(w, "Unknown schedule kind")
		return "", false
	}
	return kind, true
}

// idFromPath reads the {id} path variable as a UUID.
func idFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}
