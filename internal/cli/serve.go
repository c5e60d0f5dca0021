package cli

import (
	"fmt"

	"resumescore/internal/config"
	"resumescore/internal/server"
	"resumescore/internal/service"

	"github.com/spf13/cobra"
)

type serveOptions struct {
	port     string
	host     string
	tlsMode  string
	certFile string
	keyFile  string
	caFile   string
}

func newServeCommand() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server for resume upload and scoring",
		Long: `Start an HTTP server that provides REST API endpoints for resume upload,
scoring and analysis history.

Available endpoints:
- POST /analyze: Score resume text without storing it
- POST /resumes: Upload a resume (multipart field "file", or JSON)
- GET /resumes: List resumes (?recent=true for the latest uploads)
- GET /resumes/{id}: Get a stored resume
- POST /resumes/{id}/analysis: Analyze a stored resume
- GET /resumes/{id}/analysis: Latest analysis of a resume
- GET /analyses: Analysis history
- GET /catalog: Active skill catalog
- GET /health: Health check endpoint
- GET /stats: Server statistics and rate limiting info

TLS Configuration:
- Use --tls-mode to set TLS mode: disabled, server, mutual
- Use --cert-file and --key-file for TLS certificates
- Use --ca-file for mutual TLS client certificate verification`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.port, "port", "p", "", "Port to listen on (default from config)")
	cmd.Flags().StringVar(&opts.host, "host", "", "Host to bind to (default from config)")
	cmd.Flags().StringVar(&opts.tlsMode, "tls-mode", "", "TLS mode: disabled, server, mutual (overrides config)")
	cmd.Flags().StringVar(&opts.certFile, "cert-file", "", "Server certificate file (PEM, overrides config)")
	cmd.Flags().StringVar(&opts.keyFile, "key-file", "", "Server private key file (PEM, overrides config)")
	cmd.Flags().StringVar(&opts.caFile, "ca-file", "", "CA certificate file for client cert verification (PEM, overrides config)")
	return cmd
}

// apply overrides the server section of cfg with the flags that were set
func (o *serveOptions) apply(sc *config.ServerConfig) {
	override := func(dst *string, value string) {
		if value != "" {
			*dst = value
		}
	}
	override(&sc.Port, o.port)
	override(&sc.Host, o.host)
	override(&sc.TLS.Mode, o.tlsMode)
	override(&sc.TLS.CertFile, o.certFile)
	override(&sc.TLS.KeyFile, o.keyFile)
	override(&sc.TLS.CAFile, o.caFile)
}

func runServe(cmd *cobra.Command, opts *serveOptions) error {
	baseCfg, logger, err := getConfigAndLogger(cmd)
	if err != nil {
		return err
	}

	cfg := *baseCfg
	opts.apply(&cfg.Server)

	// Validate TLS configuration after applying overrides
	if err := cfg.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("invalid TLS configuration: %w", err)
	}

	st, err := openStore(cmd.Context(), &cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore(st, logger)

	svc, err := service.NewFromConfig(&cfg, st, logger)
	if err != nil {
		return err
	}

	serverCfg := server.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Version:        Version,
		TLSConfig:      cfg.Server.TLS,
		APIKeys:        cfg.Server.APIKeys,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxRequestSize: cfg.App.MaxFileSize,
		RateLimit:      &cfg.Server.RateLimit,
	}
	return server.NewServer(&cfg, serverCfg, svc, logger).Start(cmd.Context())
}
