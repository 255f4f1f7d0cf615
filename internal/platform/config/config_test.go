package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Relay.Endpoint != "https://formspree.io/f/xgooedeg" {
		t.Fatalf("unexpected relay endpoint %q", cfg.Relay.Endpoint)
	}
	if cfg.Consent.BannerDelay != 1500*time.Millisecond {
		t.Fatalf("unexpected banner delay %v", cfg.Consent.BannerDelay)
	}
	if cfg.WhatsApp.Number != "34672616466" {
		t.Fatalf("unexpected whatsapp number %q", cfg.WhatsApp.Number)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "site_name: Prime Test\nrelay:\n  timeout: 3s\nchat:\n  language: en\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("PORT", "")
	t.Setenv("PRIMEWEB_RELAY__TIMEOUT", "7s")
	t.Setenv("PRIMEWEB_CORS_ORIGINS", "https://primeweb.es, https://www.primeweb.es")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SiteName != "Prime Test" {
		t.Errorf("file value lost: %q", cfg.SiteName)
	}
	if cfg.Chat.Language != "en" {
		t.Errorf("expected en, got %q", cfg.Chat.Language)
	}
	if cfg.Relay.Timeout != 7*time.Second {
		t.Errorf("env should override file, got %v", cfg.Relay.Timeout)
	}
	if got := cfg.AllowedOrigins(); len(got) != 2 || got[1] != "https://www.primeweb.es" {
		t.Errorf("unexpected origins %v", got)
	}
}

func TestPortEnvWins(t *testing.T) {
	t.Setenv("PRIMEWEB_PORT", "9000")
	t.Setenv("PORT", "8081")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8081" {
		t.Fatalf("expected PORT to win, got %q", cfg.Port)
	}
}

func TestValidateCollectsProblems(t *testing.T) {
	cfg := Default()
	cfg.Relay.Endpoint = "not a url"
	cfg.Chat.Store = StorePostgres
	cfg.Consent.Store = "redis"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"relay.endpoint", "postgres.dsn", "consent.store"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %v", want, err)
		}
	}
}

func TestFirestoreNeedsProject(t *testing.T) {
	cfg := Default()
	cfg.Consent.Store = StoreFirestore
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "firebase.project_id") {
		t.Fatalf("expected project id error, got %v", err)
	}
	cfg.Firebase.ProjectID = "prime-web"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.UsesFirebase() {
		t.Fatal("expected UsesFirebase")
	}
}

func TestAdminEmailsAndCookies(t *testing.T) {
	cfg := Default()
	if cfg.AdminEmails() != nil || cfg.SecureCookies() {
		t.Fatal("defaults should have no admins and plain cookies")
	}
	cfg.Admin.Emails = "a@primeweb.es, ,b@primeweb.es"
	cfg.BaseURL = "https://primeweb.es"
	if got := cfg.AdminEmails(); len(got) != 2 || got[1] != "b@primeweb.es" {
		t.Fatalf("unexpected admins %v", got)
	}
	if !cfg.SecureCookies() {
		t.Fatal("https base URL should mark cookies secure")
	}
}
