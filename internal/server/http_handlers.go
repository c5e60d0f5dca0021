package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"time"

	resumeErrors "resumescore/internal/errors"
)

const healthCheckTimeout = 2 * time.Second

// healthHandler reports store reachability and the active skill catalog
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	storeHealthy, storeStatus := s.Service.StoreHealth(ctx)
	if s.AppConfig != nil {
		storeStatus["driver"] = s.AppConfig.Storage.Driver
	}

	catalog := s.Service.Catalog()
	response := map[string]any{
		"status":  "healthy",
		"service": "resumescore",
		"version": s.Version,
		"store":   storeStatus,
		"catalog": map[string]any{
			"source": catalog.Source,
			"skills": len(catalog.Skills),
		},
	}

	status := http.StatusOK
	if !storeHealthy {
		response["status"] = "degraded"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, response)
}

// statsHandler provides stored resume counts and server statistics including
// rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Service.Stats(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	response := map[string]any{
		"service": "resumescore",
		"version": s.Version,
		"resumes": stats,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
	}

	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	writeJSON(w, http.StatusOK, response)
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// writeJSON writes v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	writeJSON(w, statusCode, ErrorResponse{
		Error:   error,
		Message: message,
	})
}

// writeServiceError translates a service error into a status code and a
// standardized error body. Internal causes are logged, not returned.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	status, title := statusForError(err)
	response := ErrorResponse{Error: title, Message: title}

	var appErr *resumeErrors.AppError
	if errors.As(err, &appErr) {
		response.Code = appErr.Code
		response.Message = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		s.Logger.LogError(err, "Request failed", "status", status)
	}

	writeJSON(w, status, response)
}

// statusForError maps error types and codes onto HTTP statuses
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Request timed out"
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout, "Request cancelled"
	}

	var appErr *resumeErrors.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, "Internal server error"
	}

	switch appErr.Type {
	case resumeErrors.ErrorTypeValidation:
		switch appErr.Code {
		case resumeErrors.ErrCodeFileTooLarge:
			return http.StatusRequestEntityTooLarge, "File too large"
		case resumeErrors.ErrCodeUnsupportedFormat:
			return http.StatusUnsupportedMediaType, "Unsupported file format"
		}
		return http.StatusBadRequest, "Invalid request"
	case resumeErrors.ErrorTypeNotFound:
		return http.StatusNotFound, "Not found"
	case resumeErrors.ErrorTypeStorage:
		if appErr.Code == resumeErrors.ErrCodeStoreUnavailable {
			return http.StatusServiceUnavailable, "Storage unavailable"
		}
		return http.StatusInternalServerError, "Storage error"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
