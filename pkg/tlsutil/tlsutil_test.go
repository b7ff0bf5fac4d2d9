package tlsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateSelfSignedCert(t *testing.T) {
	dir := t.TempDir()

	if err := GenerateSelfSignedCert([]string{"localhost", "127.0.0.1"}, dir); err != nil {
		t.Fatalf("GenerateSelfSignedCert() error = %v", err)
	}

	for _, name := range []string{"ca.pem", "ca-key.pem", "server.pem", "server-key.pem"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("expected %s to exist: %v", name, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestServerTLSConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	if err := GenerateSelfSignedCert([]string{"localhost"}, dir); err != nil {
		t.Fatalf("GenerateSelfSignedCert() error = %v", err)
	}

	creds, err := ServerTLSConfig(filepath.Join(dir, "server.pem"), filepath.Join(dir, "server-key.pem"))
	if err != nil {
		t.Fatalf("ServerTLSConfig() error = %v", err)
	}
	if creds.Info().SecurityProtocol != "tls" {
		t.Errorf("SecurityProtocol = %q, want tls", creds.Info().SecurityProtocol)
	}
}

func TestServerTLSConfig_MissingFiles(t *testing.T) {
	_, err := ServerTLSConfig("/nonexistent/cert.pem", "/nonexistent/key.pem")
	if err == nil {
		t.Fatal("ServerTLSConfig() expected error for missing files, got nil")
	}
}

func TestClientTLSConfig_WithCA(t *testing.T) {
	dir := t.TempDir()
	if err := GenerateSelfSignedCert([]string{"localhost"}, dir); err != nil {
		t.Fatalf("GenerateSelfSignedCert() error = %v", err)
	}

	creds, err := ClientTLSConfig(filepath.Join(dir, "ca.pem"), false)
	if err != nil {
		t.Fatalf("ClientTLSConfig() error = %v", err)
	}
	if creds == nil {
		t.Fatal("ClientTLSConfig() returned nil credentials")
	}
}

func TestClientTLSConfig_BadCA(t *testing.T) {
	dir := t.TempDir()
	badCA := filepath.Join(dir, "ca.pem")
	if err := os.WriteFile(badCA, []byte("not a certificate"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := ClientTLSConfig(badCA, false); err == nil {
		t.Fatal("ClientTLSConfig() expected error for unparseable CA, got nil")
	}
}
