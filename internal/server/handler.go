package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"resumescore/internal/types"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// uploadFormField is the multipart field carrying the resume file
const uploadFormField = "file"

// multipartOverhead is allowed on top of the file size limit for multipart
// boundaries and headers
const multipartOverhead = 64 << 10

// UploadRequest is the JSON alternative to a multipart upload
type UploadRequest struct {
	FileName string `json:"fileName"`
	Content  string `json:"content"`
}

// analyzeHandler scores resume text without storing anything
func (s *Server) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	span := trace.SpanFromContext(r.Context())

	var req AnalyzeRequest
	if err := parseJSONRequest(r, &req); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "validation"))
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	span.SetAttributes(
		attribute.Int("request.content_length", len(req.Content)),
		attribute.String("operation", "analyze"),
	)

	result, err := s.Service.AnalyzeText(r.Context(), types.Resume{
		ID:      req.ResumeID,
		Content: req.Content,
	})
	if err != nil {
		span.RecordError(err)
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// uploadHandler stores a resume sent as multipart form data or as JSON
func (s *Server) uploadHandler(w http.ResponseWriter, r *http.Request) {
	fileName, contentType, data, err := s.readUpload(r)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeErrorResponse(w, "File too large",
				fmt.Sprintf("request body too large (limit is %d bytes)", maxBytesErr.Limit),
				http.StatusRequestEntityTooLarge)
			return
		}
		writeErrorResponse(w, "Invalid upload", err.Error(), http.StatusBadRequest)
		return
	}

	resume, err := s.Service.Upload(r.Context(), fileName, contentType, data)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	w.Header().Set("Location", "/resumes/"+resume.ID)
	writeJSON(w, http.StatusCreated, resume)
}

// readUpload returns the file name, declared content type and bytes of an
// upload
func (s *Server) readUpload(r *http.Request) (string, string, []byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(s.multipartMemory()); err != nil {
			return "", "", nil, err
		}
		file, header, err := r.FormFile(uploadFormField)
		if err != nil {
			return "", "", nil, fmt.Errorf("multipart field %q is required", uploadFormField)
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return "", "", nil, err
		}
		return header.Filename, header.Header.Get("Content-Type"), data, nil

	case "application/json":
		var req UploadRequest
		if err := parseJSONRequest(r, &req); err != nil {
			return "", "", nil, err
		}
		return req.FileName, "", []byte(req.Content), nil

	default:
		return "", "", nil, fmt.Errorf("content-type must be multipart/form-data or application/json")
	}
}

func (s *Server) multipartMemory() int64 {
	if s.MaxRequestSize > 0 {
		return s.MaxRequestSize
	}
	return 32 << 20
}

// listResumesHandler lists resume summaries newest first. recent=true
// returns the configured number of most recent uploads; limit caps the
// result otherwise.
func (s *Server) listResumesHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if recent, _ := strconv.ParseBool(query.Get("recent")); recent && query.Get("limit") == "" {
		resumes, err := s.Service.RecentResumes(r.Context())
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resumes)
		return
	}

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeErrorResponse(w, "Invalid limit", "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	resumes, err := s.Service.ListResumes(r.Context(), limit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resumes)
}

func (s *Server) getResumeHandler(w http.ResponseWriter, r *http.Request) {
	resume, err := s.Service.GetResume(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resume)
}

// analyzeResumeHandler scores a stored resume and records the result
func (s *Server) analyzeResumeHandler(w http.ResponseWriter, r *http.Request) {
	result, err := s.Service.AnalyzeResume(r.Context(), r.PathValue("id"))
	if err != nil {
		trace.SpanFromContext(r.Context()).RecordError(err)
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) getAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	result, err := s.Service.GetAnalysis(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) listAnalysesHandler(w http.ResponseWriter, r *http.Request) {
	results, err := s.Service.ListAnalyses(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// catalogHandler lists the skills the active engine scores against
func (s *Server) catalogHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Service.Catalog())
}
