package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

// MockPlanHandler is a mock implementation of the plan handlers.
type MockPlanHandler struct{}

func (h *MockPlanHandler) respond(w http.ResponseWriter, body string) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

func (h *MockPlanHandler) SchedulePlan(w http.ResponseWriter, r *http.Request) {
	h.respond(w, `{"message": "schedule"}`)
}

func (h *MockPlanHandler) Curate(w http.ResponseWriter, r *http.Request) {
	h.respond(w, `{"message": "curate"}`)
}

func (h *MockPlanHandler) ApplyOperations(w http.ResponseWriter, r *http.Request) {
	h.respond(w, `{"message": "operations"}`)
}

func (h *MockPlanHandler) GetAlternatives(w http.ResponseWriter, r *http.Request) {
	h.respond(w, `{"message": "alternatives"}`)
}

func (h *MockPlanHandler) GetConflicts(w http.ResponseWriter, r *http.Request) {
	h.respond(w, `{"message": "conflicts"}`)
}

func (h *MockPlanHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	h.respond(w, `{"message": "preferences"}`)
}

func (h *MockPlanHandler) GetNearbyPlaces(w http.ResponseWriter, r *http.Request) {
	h.respond(w, `{"message": "places nearby"}`)
}

func (h *MockPlanHandler) Ping(w http.ResponseWriter, r *http.Request) {
	h.respond(w, `{"status": "pong"}`)
}

func TestRouter_RegisterRoutes(t *testing.T) {
	// Setup
	mockPlanHandler := &MockPlanHandler{}
	router := mux.NewRouter()
	appRouter := NewRouter(mockPlanHandler, router)
	appRouter.RegisterRoutes()

	// Test Cases
	tests := []struct {
		name       string
		method     string
		path       string
		statusCode int
		response   string
	}{
		{
			name:       "Schedule Plan",
			method:     "POST",
			path:       "/v1/destinations/paris/plan/schedule",
			statusCode: http.StatusOK,
			response:   `{"message": "schedule"}`,
		},
		{
			name:       "Curate Plan",
			method:     "POST",
			path:       "/v1/destinations/paris/plan/curate",
			statusCode: http.StatusOK,
			response:   `{"message": "curate"}`,
		},
		{
			name:       "Apply Operations",
			method:     "POST",
			path:       "/v1/destinations/paris/plan/operations",
			statusCode: http.StatusOK,
			response:   `{"message": "operations"}`,
		},
		{
			name:       "Get Conflicts",
			method:     "GET",
			path:       "/v1/destinations/paris/plan/conflicts?date=2025-04-14",
			statusCode: http.StatusOK,
			response:   `{"message": "conflicts"}`,
		},
		{
			name:       "Get Alternatives",
			method:     "GET",
			path:       "/v1/destinations/paris/activities/42/alternatives",
			statusCode: http.StatusOK,
			response:   `{"message": "alternatives"}`,
		},
		{
			name:       "Get Preferences",
			method:     "GET",
			path:       "/v1/destinations/paris/preferences",
			statusCode: http.StatusOK,
			response:   `{"message": "preferences"}`,
		},
		{
			name:       "Get Places Nearby",
			method:     "GET",
			path:       "/v1/places/nearby",
			statusCode: http.StatusOK,
			response:   `{"message": "places nearby"}`,
		},
		{
			name:       "Ping Route",
			method:     "GET",
			path:       "/ping",
			statusCode: http.StatusOK,
			response:   `{"status": "pong"}`,
		},
		{
			name:       "Invalid Route",
			method:     "GET",
			path:       "/invalid",
			statusCode: http.StatusNotFound,
		},
		{
			name:       "Wrong Method",
			method:     "GET",
			path:       "/v1/destinations/paris/plan/schedule",
			statusCode: http.StatusMethodNotAllowed,
		},
	}

	// Run tests
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.path, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			// Assert status code
			if rr.Code != test.statusCode {
				t.Errorf("Expected status %d, got %d", test.statusCode, rr.Code)
			}

			// Assert response body, if applicable
			if test.response != "" && rr.Body.String() != test.response {
				t.Errorf("Expected response %s, got %s", test.response, rr.Body.String())
			}
		})
	}
}
