package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// PlanHandlers is the set of HTTP handlers the router binds.
type PlanHandlers interface {
	SchedulePlan(w http.ResponseWriter, r *http.Request)
	Curate(w http.ResponseWriter, r *http.Request)
	ApplyOperations(w http.ResponseWriter, r *http.Request)
	GetAlternatives(w http.ResponseWriter, r *http.Request)
	GetConflicts(w http.ResponseWriter, r *http.Request)
	GetPreferences(w http.ResponseWriter, r *http.Request)
	GetNearbyPlaces(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	planHandler PlanHandlers
	router      *mux.Router
}

// NewRouter creates a router with the app's routes.
func NewRouter(
	planHandler PlanHandlers,
	router *mux.Router) *Router {
	return &Router{
		planHandler: planHandler,
		router:      router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.HandleFunc("/v1/destinations/{destinationId}/plan/schedule", r.planHandler.SchedulePlan).Methods("POST")
	r.router.HandleFunc("/v1/destinations/{destinationId}/plan/curate", r.planHandler.Curate).Methods("POST")
	r.router.HandleFunc("/v1/destinations/{destinationId}/plan/operations", r.planHandler.ApplyOperations).Methods("POST")
	r.router.HandleFunc("/v1/destinations/{destinationId}/plan/conflicts", r.planHandler.GetConflicts).Methods("GET")
	r.router.HandleFunc("/v1/destinations/{destinationId}/activities/{activityId}/alternatives", r.planHandler.GetAlternatives).Methods("GET")
	r.router.HandleFunc("/v1/destinations/{destinationId}/preferences", r.planHandler.GetPreferences).Methods("GET")

	// expects ?lat={latitude(float)}&lng={longitude(float)}&radius={radius(float)}
	r.router.HandleFunc("/v1/places/nearby", r.planHandler.GetNearbyPlaces).Methods("GET")

	r.router.HandleFunc("/ping", r.planHandler.Ping).Methods("GET")
}
