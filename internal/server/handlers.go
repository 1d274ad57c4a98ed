package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/jonathan/valentino/internal/encoding"
	"github.com/jonathan/valentino/internal/types"
)

// SharedPoemResponse represents the response for GET /poem.
// A missing or malformed token is a "no poem found" state, never an error.
type SharedPoemResponse struct {
	Found bool             `json:"found"`
	Data  *types.ShareData `json:"data,omitempty"`
}

// ShareTokenResponse represents the response for POST /api/share
type ShareTokenResponse struct {
	Data string `json:"data"`
}

// HealthResponse represents the response for GET /api/health
type HealthResponse struct {
	Status    string `json:"status"`
	Provider  bool   `json:"provider"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

// handleGeneratePoem runs one generation (or remix) cycle.
func (s *Server) handleGeneratePoem(w http.ResponseWriter, r *http.Request) {
	var req types.PoemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	result, err := s.generator.Generate(r.Context(), &req)
	if err != nil {
		// Never forward provider payloads to the client; log and map to a
		// human-readable message.
		log.Printf("Poem generation failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), UserMessage(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleSharedPoem decodes a share token from the data query parameter.
func (s *Server) handleSharedPoem(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("data")

	decoded := encoding.DecodeJSONParam[types.ShareData](token)
	if decoded == nil || decoded.Poem == "" {
		s.jsonResponse(w, http.StatusOK, SharedPoemResponse{Found: false})
		return
	}

	s.jsonResponse(w, http.StatusOK, SharedPoemResponse{Found: true, Data: decoded})
}

// handleCreateShare mints a share token from a ShareData body.
func (s *Server) handleCreateShare(w http.ResponseWriter, r *http.Request) {
	var data types.ShareData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if data.Poem == "" {
		s.errorResponse(w, http.StatusBadRequest, "Nothing to share: poem is empty")
		return
	}

	token, err := encoding.EncodeJSONParam(data)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to encode share data")
		return
	}

	s.jsonResponse(w, http.StatusOK, ShareTokenResponse{Data: token})
}

// handleHealth pings the provider's model listing to verify reachability.
// Concurrent probes collapse into a single upstream call.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	result, err, _ := s.healthGroup.Do("health", func() (any, error) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()
		return s.llmClient.ListModels(ctx)
	})

	timestamp := time.Now().UTC().Format(time.RFC3339)

	if err != nil {
		log.Printf("Health check failed: %v", err)
		s.jsonResponse(w, http.StatusInternalServerError, HealthResponse{
			Status:    "error",
			Provider:  false,
			Error:     "Failed to reach model provider",
			Timestamp: timestamp,
		})
		return
	}

	models, _ := result.([]string)
	if len(models) == 0 {
		s.jsonResponse(w, http.StatusInternalServerError, HealthResponse{
			Status:    "error",
			Provider:  false,
			Error:     "Provider returned no models",
			Timestamp: timestamp,
		})
		return
	}

	s.jsonResponse(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Provider:  true,
		Timestamp: timestamp,
	})
}
