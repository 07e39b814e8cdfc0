package weights

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"feedback-backend/internal/scoring"
)

func newWeightsRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	NewHandler(NewService(NewMemoryRepo())).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestGetWeightsFallsBackToDefault(t *testing.T) {
	r := newWeightsRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weights", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var payload struct {
		Weights scoring.WeightVector `json:"weights"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Weights != scoring.DefaultWeights() {
		t.Fatalf("expected default weights, got %+v", payload.Weights)
	}
}

func TestPutWeightsRoundTrip(t *testing.T) {
	r := newWeightsRouter(t)

	body, _ := json.Marshal(map[string]any{
		"weights":   scoring.WeightVector{Impact: 1, Urgency: 1, Effort: 1, Strategic: 1, Trend: 1},
		"updatedBy": "ops",
	})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/weights", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/weights", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	var payload struct {
		Weights scoring.WeightVector `json:"weights"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := scoring.WeightVector{Impact: 1, Urgency: 1, Effort: 1, Strategic: 1, Trend: 1}
	if payload.Weights != want {
		t.Fatalf("expected stored weights %+v, got %+v", want, payload.Weights)
	}
}

func TestPutWeightsRejectsInvalidVector(t *testing.T) {
	r := newWeightsRouter(t)

	body, _ := json.Marshal(map[string]any{
		"weights": scoring.WeightVector{Impact: -1, Urgency: 1, Effort: 1, Strategic: 1, Trend: 1},
	})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/weights", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}

	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Error.Code != "invalid_weights" {
		t.Fatalf("expected invalid_weights, got %q", payload.Error.Code)
	}
}
