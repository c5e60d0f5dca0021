package config

import "fmt"

// TLSConfig holds TLS/mTLS configuration
type TLSConfig struct {
	Mode     string `mapstructure:"mode"`     // disabled, server, mutual
	CertFile string `mapstructure:"certFile"` // Server certificate file (PEM)
	KeyFile  string `mapstructure:"keyFile"`  // Server private key file (PEM)
	CAFile   string `mapstructure:"caFile"`   // CA for client certificates (mutual only)

	// Certificate content, set when loaded from Vault instead of files
	CertContent string `mapstructure:"certContent"`
	KeyContent  string `mapstructure:"keyContent"`
	CAContent   string `mapstructure:"caContent"`

	MinVersion       string `mapstructure:"minVersion"`       // 1.2 or 1.3
	ClientAuthPolicy string `mapstructure:"clientAuthPolicy"` // require, request, verify
}

// pemSource pairs a file setting with its inline alternative
type pemSource struct {
	name    string
	file    string
	content string
}

func (p pemSource) missing() bool { return p.file == "" && p.content == "" }

func (p pemSource) ambiguous() bool { return p.file != "" && p.content != "" }

// ValidateTLSConfig validates the TLS configuration
func (c *Config) ValidateTLSConfig() error {
	tls := c.Server.TLS

	if err := validateTLSMode(tls); err != nil {
		return err
	}
	return validateTLSVersion(tls)
}

func validateTLSMode(tls TLSConfig) error {
	sources := []pemSource{
		{name: "cert", file: tls.CertFile, content: tls.CertContent},
		{name: "key", file: tls.KeyFile, content: tls.KeyContent},
	}

	switch tls.Mode {
	case "disabled":
		return nil
	case "server":
	case "mutual":
		ca := pemSource{name: "ca", file: tls.CAFile, content: tls.CAContent}
		if ca.missing() {
			return fmt.Errorf("CA certificate is required for mutual TLS mode (provide either caFile or caContent)")
		}
		sources = append(sources, ca)
		if err := validateClientAuthPolicy(tls.ClientAuthPolicy); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid TLS mode: %s (must be 'disabled', 'server', or 'mutual')", tls.Mode)
	}

	if sources[0].missing() || sources[1].missing() {
		return fmt.Errorf("TLS certificate and key are required for %s mode (provide either files or content)", tls.Mode)
	}
	for _, src := range sources {
		if src.ambiguous() {
			return fmt.Errorf("cannot specify both %sFile and %sContent - choose one", src.name, src.name)
		}
	}
	return nil
}

func validateClientAuthPolicy(policy string) error {
	switch policy {
	case "require", "request", "verify", "":
		return nil
	default:
		return fmt.Errorf("invalid clientAuthPolicy: %s (must be 'require', 'request', or 'verify')", policy)
	}
}

func validateTLSVersion(tls TLSConfig) error {
	switch tls.MinVersion {
	case "", "1.2", "1.3":
		return nil
	default:
		return fmt.Errorf("invalid TLS minVersion: %s (must be '1.2' or '1.3')", tls.MinVersion)
	}
}
