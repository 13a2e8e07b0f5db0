package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"tp-server/models"
	services "tp-server/service"
)

const (
	LAT_QUERY_ARG     = "lat"
	LNG_QUERY_ARG     = "lng"
	RADIUS_QUERY_ARG  = "radius"
	DATE_QUERY_ARG    = "date"
	MAX_QUERY_ARG     = "max"
	MESSAGE_QUERY_ARG = "message"
)

type PlanHandler struct {
	plannerService *services.PlannerService
}

func NewPlanHandler(plannerService *services.PlannerService) *PlanHandler {
	return &PlanHandler{plannerService: plannerService}
}

// SchedulePlan handles POST /v1/destinations/{destinationId}/plan/schedule
func (h *PlanHandler) SchedulePlan(w http.ResponseWriter, r *http.Request) {
	destinationID := mux.Vars(r)["destinationId"]

	var req services.SchedulePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.plannerService.SchedulePlan(destinationID, req)
	if err != nil {
		log.Println("Error scheduling plan:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, resp)
}

// Curate handles POST /v1/destinations/{destinationId}/plan/curate
func (h *PlanHandler) Curate(w http.ResponseWriter, r *http.Request) {
	destinationID := mux.Vars(r)["destinationId"]

	var req services.CurateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.plannerService.Curate(destinationID, req)
	if err != nil {
		log.Println("Error curating plan:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, resp)
}

// ApplyOperations handles POST /v1/destinations/{destinationId}/plan/operations
func (h *PlanHandler) ApplyOperations(w http.ResponseWriter, r *http.Request) {
	destinationID := mux.Vars(r)["destinationId"]

	var ops []models.Operation
	if err := json.NewDecoder(r.Body).Decode(&ops); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.plannerService.ApplyOperations(r.Context(), destinationID, ops); err != nil {
		log.Println("Error applying operations:", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]string{"status": "applied"})
}

// GetAlternatives handles GET /v1/destinations/{destinationId}/activities/{activityId}/alternatives
func (h *PlanHandler) GetAlternatives(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	destinationID := vars["destinationId"]
	activityID := vars["activityId"]

	max := 0
	if v := r.URL.Query().Get(MAX_QUERY_ARG); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "Invalid argument "+MAX_QUERY_ARG, http.StatusBadRequest)
			return
		}
		max = parsed
	}

	suggestions, err := h.plannerService.Alternatives(destinationID, activityID, max)
	if err != nil {
		log.Println("Error ranking alternatives:", err)
		http.Error(w, "Activity not found", http.StatusNotFound)
		return
	}
	writeJSON(w, suggestions)
}

// GetConflicts handles GET /v1/destinations/{destinationId}/plan/conflicts
func (h *PlanHandler) GetConflicts(w http.ResponseWriter, r *http.Request) {
	destinationID := mux.Vars(r)["destinationId"]

	date := r.URL.Query().Get(DATE_QUERY_ARG)
	if date == "" {
		http.Error(w, "Missing argument "+DATE_QUERY_ARG, http.StatusBadRequest)
		return
	}

	report, err := h.plannerService.Conflicts(destinationID, date)
	if err != nil {
		log.Println("Error building conflict report:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, report)
}

// GetPreferences handles GET /v1/destinations/{destinationId}/preferences
func (h *PlanHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	destinationID := mux.Vars(r)["destinationId"]
	message := r.URL.Query().Get(MESSAGE_QUERY_ARG)

	profile, err := h.plannerService.GetPreferences(destinationID, message)
	if err != nil {
		log.Println("Error resolving preferences:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, profile)
}

// GetNearbyPlaces handles GET /v1/places/nearby
func (h *PlanHandler) GetNearbyPlaces(w http.ResponseWriter, r *http.Request) {
	lat, lng, radius, ok := h.parseGeoArgs(r.URL.Query(), w)
	if !ok {
		return // error already written
	}

	places, err := h.plannerService.GetNearbyPlaces(lat, lng, radius)
	if err != nil {
		log.Println("Error loading nearby places:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, places)
}

func (h *PlanHandler) parseGeoArgs(vals url.Values, w http.ResponseWriter) (lat, lng, radius float64, ok bool) {
	var err error

	lat, err = parseArgFloat64(vals, LAT_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+LAT_QUERY_ARG, http.StatusBadRequest)
		return
	}
	lng, err = parseArgFloat64(vals, LNG_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+LNG_QUERY_ARG, http.StatusBadRequest)
		return
	}
	radius, err = parseArgFloat64(vals, RADIUS_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+RADIUS_QUERY_ARG, http.StatusBadRequest)
		return
	}
	ok = true
	return
}

func parseArgFloat64(vals url.Values, name string) (float64, error) {
	s := vals.Get(name)
	return strconv.ParseFloat(s, 64)
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Println("Error encoding response:", err)
	}
}

// Ping handles GET /ping
func (h *PlanHandler) Ping(w http.ResponseWriter, r *http.Request) {
	log.Println("Pinging server")
	writeJSON(w, map[string]string{"status": "pong"})
}
