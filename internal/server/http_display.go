package server

import "fmt"

// displayServerInfo shows server configuration information
func (s *Server) displayServerInfo() {
	s.displayEndpoints()
	s.displayAuthInfo()
	s.displayRequestLimitInfo()
	s.displayRateLimitInfo()
	s.displayCatalogInfo()
}

// displayEndpoints shows available API endpoints
func (s *Server) displayEndpoints() {
	fmt.Fprintln(s.out, "Available endpoints:")
	fmt.Fprintln(s.out, "  GET  /health                  - Health check")
	fmt.Fprintln(s.out, "  GET  /stats                   - Server statistics")
	fmt.Fprintln(s.out, "  POST /analyze                 - Score resume text")
	fmt.Fprintln(s.out, "  POST /resumes                 - Upload a resume")
	fmt.Fprintln(s.out, "  GET  /resumes                 - List resumes (?recent=true, ?limit=N)")
	fmt.Fprintln(s.out, "  GET  /resumes/{id}            - Get a resume")
	fmt.Fprintln(s.out, "  POST /resumes/{id}/analysis   - Analyze a stored resume")
	fmt.Fprintln(s.out, "  GET  /resumes/{id}/analysis   - Latest analysis of a resume")
	fmt.Fprintln(s.out, "  GET  /analyses                - Analysis history")
	fmt.Fprintln(s.out, "  GET  /catalog                 - Active skill catalog")
}

// displayAuthInfo shows authentication configuration
func (s *Server) displayAuthInfo() {
	if len(s.APIKeys) > 0 {
		fmt.Fprintf(s.out, "API authentication: ENABLED (%d keys configured)\n", len(s.APIKeys))
		fmt.Fprintln(s.out, "Include 'X-API-Key: <your-key>' header in requests to resume endpoints")
	} else {
		fmt.Fprintln(s.out, "API authentication: DISABLED (no API keys configured)")
		fmt.Fprintln(s.out, "WARNING: API endpoints are publicly accessible!")
	}
}

// displayRequestLimitInfo shows request size limit configuration
func (s *Server) displayRequestLimitInfo() {
	if s.MaxRequestSize > 0 {
		fmt.Fprintf(s.out, "Request size limit: %d bytes (%.1f MB)\n", s.MaxRequestSize, float64(s.MaxRequestSize)/(1024*1024))
	} else {
		fmt.Fprintln(s.out, "Request size limit: DISABLED")
		fmt.Fprintln(s.out, "WARNING: No request size limits configured!")
	}
}

// displayRateLimitInfo shows rate limiting configuration
func (s *Server) displayRateLimitInfo() {
	if s.RateLimit != nil && s.RateLimit.Enabled {
		fmt.Fprintf(s.out, "Rate limiting: ENABLED (%d requests/min, burst: %d)\n",
			s.RateLimit.RequestsPerMin, s.RateLimit.BurstCapacity)
		if s.RateLimit.ByAPIKey {
			fmt.Fprintln(s.out, "  - Per API key rate limiting enabled")
		}
		if s.RateLimit.ByIP {
			fmt.Fprintln(s.out, "  - Per IP address rate limiting enabled")
		}
	} else {
		fmt.Fprintln(s.out, "Rate limiting: DISABLED")
		fmt.Fprintln(s.out, "WARNING: No rate limiting configured!")
	}
}

// displayCatalogInfo shows the active catalog and whether it is watched
func (s *Server) displayCatalogInfo() {
	catalog := s.Service.Catalog()
	fmt.Fprintf(s.out, "Skill catalog: %s (%d skills)\n", catalog.Source, len(catalog.Skills))
	if s.CatalogWatcher != nil {
		fmt.Fprintln(s.out, "  - Reloading on file changes")
	}
}
