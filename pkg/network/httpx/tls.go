package httpx

import (
	"os"
	"path/filepath"

	"golang.org/x/crypto/acme/autocert"
)

type TLS struct {
	CertManager *autocert.Manager
}

func NewTLSConfig(host string) *TLS {
	tls := TLS{
		CertManager: &autocert.Manager{
			Prompt: autocert.AcceptTOS,
			Cache:  autocert.DirCache(certCacheDir()),
		},
	}
	if host != "" {
		tls.CertManager.HostPolicy = autocert.HostWhitelist(host)
	}
	return &tls
}

// certCacheDir keeps obtained certificates under the same per-user
// directory the config loader reads from.
func certCacheDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".signaler", "cache")
	}
	return filepath.Join(os.TempDir(), "signaler-certs")
}
