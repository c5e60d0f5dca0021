package server

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"io"
	"math/big"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"resumescore/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// selfSignedPEM returns a self-signed certificate and its key, PEM encoded
func selfSignedPEM(t *testing.T) (string, string) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "localhost"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
		DNSNames:              []string{"localhost"},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	keyDER, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})
	return string(certPEM), string(keyPEM)
}

func tlsTestServer(tlsCfg config.TLSConfig) *Server {
	return &Server{TLSConfig: tlsCfg, out: io.Discard, Logger: testLogger()}
}

func TestConfigureTLS(t *testing.T) {
	certPEM, keyPEM := selfSignedPEM(t)

	dir := t.TempDir()
	certFile := filepath.Join(dir, "server.crt")
	keyFile := filepath.Join(dir, "server.key")
	require.NoError(t, os.WriteFile(certFile, []byte(certPEM), 0o600))
	require.NoError(t, os.WriteFile(keyFile, []byte(keyPEM), 0o600))

	tests := []struct {
		name           string
		cfg            config.TLSConfig
		wantTLS        bool
		wantErr        string
		wantClientAuth tls.ClientAuthType
		wantMinVersion uint16
	}{
		{name: "disabled", cfg: config.TLSConfig{Mode: "disabled"}},
		{
			name:           "server from content",
			cfg:            config.TLSConfig{Mode: "server", CertContent: certPEM, KeyContent: keyPEM, MinVersion: "1.3"},
			wantTLS:        true,
			wantClientAuth: tls.NoClientCert,
			wantMinVersion: tls.VersionTLS13,
		},
		{
			name:           "server from files",
			cfg:            config.TLSConfig{Mode: "server", CertFile: certFile, KeyFile: keyFile},
			wantTLS:        true,
			wantClientAuth: tls.NoClientCert,
			wantMinVersion: tls.VersionTLS12,
		},
		{
			name:           "mutual",
			cfg:            config.TLSConfig{Mode: "mutual", CertFile: certFile, KeyFile: keyFile, CAContent: certPEM, ClientAuthPolicy: "verify"},
			wantTLS:        true,
			wantClientAuth: tls.VerifyClientCertIfGiven,
			wantMinVersion: tls.VersionTLS12,
		},
		{
			name:    "mutual without ca",
			cfg:     config.TLSConfig{Mode: "mutual", CertFile: certFile, KeyFile: keyFile},
			wantErr: "CA certificate is required",
		},
		{
			name:    "bad ca",
			cfg:     config.TLSConfig{Mode: "mutual", CertFile: certFile, KeyFile: keyFile, CAContent: "not pem"},
			wantErr: "failed to append CA cert",
		},
		{
			name:    "missing certificate",
			cfg:     config.TLSConfig{Mode: "server"},
			wantErr: "TLS certificate and key are required",
		},
		{
			name:    "unreadable files",
			cfg:     config.TLSConfig{Mode: "server", CertFile: filepath.Join(dir, "nope.crt"), KeyFile: keyFile},
			wantErr: "failed to load server cert/key from files",
		},
		{
			name:    "invalid mode",
			cfg:     config.TLSConfig{Mode: "sometimes"},
			wantErr: "invalid TLS mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpServer := &http.Server{Addr: "localhost:0"}
			err := tlsTestServer(tt.cfg).configureTLS(httpServer)

			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			if !tt.wantTLS {
				assert.Nil(t, httpServer.TLSConfig)
				return
			}
			require.NotNil(t, httpServer.TLSConfig)
			assert.Len(t, httpServer.TLSConfig.Certificates, 1)
			assert.Equal(t, tt.wantClientAuth, httpServer.TLSConfig.ClientAuth)
			assert.Equal(t, tt.wantMinVersion, httpServer.TLSConfig.MinVersion)
		})
	}
}

func TestGetClientAuthPolicy(t *testing.T) {
	tests := map[string]tls.ClientAuthType{
		"require": tls.RequireAndVerifyClientCert,
		"request": tls.RequestClientCert,
		"verify":  tls.VerifyClientCertIfGiven,
		"":        tls.RequireAndVerifyClientCert,
	}

	for policy, want := range tests {
		s := tlsTestServer(config.TLSConfig{ClientAuthPolicy: policy})
		assert.Equal(t, want, s.getClientAuthPolicy(), policy)
	}
}
