package http

import (
	"net/http"

	"hospital-scheduling/internal/delivery/http/handler"
	"hospital-scheduling/internal/delivery/http/middleware"
	"hospital-scheduling/internal/delivery/ws"
	"hospital-scheduling/pkg/response"

	"github.com/gorilla/mux"
)

type RouterConfig struct {
	BookingHandler  *handler.BookingHandler
	GridHandler     *handler.GridHandler
	RemarkHandler   *handler.RemarkHandler
	PatientHandler  *handler.PatientHandler
	ResourceHandler *handler.ResourceHandler
	WSHandler       *ws.Handler
	AuthMiddleware  *middleware.AuthMiddleware
	CORSMiddleware  *middleware.CORSMiddleware
}

func NewRouter(cfg RouterConfig) *mux.Router {
	router := mux.NewRouter()
	router.Use(cfg.CORSMiddleware.Handle)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, "OK", nil)
	}).Methods(http.MethodGet)

	// Live schedule updates. The websocket carries its token in the query
	// string, so it bypasses the header-based auth middleware.
	router.Handle("/ws", cfg.WSHandler).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(cfg.AuthMiddleware.Authenticate)

	// Grid views
	api.HandleFunc("/schedules/{kind}/daily", cfg.GridHandler.Daily).Methods(http.MethodGet)
	api.HandleFunc("/schedules/{kind}/weekly", cfg.GridHandler.Weekly).Methods(http.MethodGet)
	api.HandleFunc("/schedules/{kind}/monthly", cfg.GridHandler.Monthly).Methods(http.MethodGet)

	// Bookings
	api.HandleFunc("/schedules/{kind}/bookings", cfg.BookingHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}", cfg.BookingHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}", cfg.BookingHandler.Update).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{id}/cancel", cfg.BookingHandler.Cancel).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}", cfg.BookingHandler.Delete).Methods(http.MethodDelete)

	// Daily remarks
	api.HandleFunc("/schedules/{kind}/remarks", cfg.RemarkHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/remarks/{id}", cfg.RemarkHandler.Update).Methods(http.MethodPatch)
	api.HandleFunc("/remarks/{id}", cfg.RemarkHandler.Delete).Methods(http.MethodDelete)

	// Patient search
	api.HandleFunc("/patients/search", cfg.PatientHandler.Search).Methods(http.MethodGet)

	// Resource registry; list is open to staff, mutations are admin only.
	api.HandleFunc("/schedules/{kind}/resources", cfg.ResourceHandler.List).Methods(http.MethodGet)

	admin := api.PathPrefix("/resources").Subrouter()
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("", cfg.ResourceHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/{id}", cfg.ResourceHandler.Update).Methods(http.MethodPatch)
	admin.HandleFunc("/{id}", cfg.ResourceHandler.Delete).Methods(http.MethodDelete)

	return router
}
