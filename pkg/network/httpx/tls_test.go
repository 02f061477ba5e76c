package httpx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCertCacheDir(t *testing.T) {
	dir := certCacheDir()
	if home, err := os.UserHomeDir(); err == nil {
		want := filepath.Join(home, ".signaler", "cache")
		if dir != want {
			t.Errorf("cache dir = %q, want %q", dir, want)
		}
	}
	if !strings.HasSuffix(dir, "cache") && !strings.HasSuffix(dir, "signaler-certs") {
		t.Errorf("unexpected cache dir %q", dir)
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("cache dir %q is relative", dir)
	}
}

func TestNewTLSConfig(t *testing.T) {
	tls := NewTLSConfig("")
	if tls.CertManager == nil || tls.CertManager.Cache == nil {
		t.Fatal("cert manager not configured")
	}
	if tls.CertManager.HostPolicy != nil {
		t.Error("empty domain must not install a host policy")
	}
	if NewTLSConfig("relay.example.org").CertManager.HostPolicy == nil {
		t.Error("domain-bound config lacks a host policy")
	}
}
