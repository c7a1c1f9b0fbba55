package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("expected default listen addr :8080, got %q", cfg.ListenAddr)
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("expected empty default database URL, got %q", cfg.DatabaseURL)
	}
	if cfg.SMTP.Port != 587 {
		t.Errorf("expected default SMTP port 587, got %d", cfg.SMTP.Port)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BOUTIQUE_LISTEN_ADDR", ":9090")
	t.Setenv("BOUTIQUE_SMTP_HOST", "smtp.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("expected listen addr from env, got %q", cfg.ListenAddr)
	}
	if cfg.SMTP.Host != "smtp.example.com" {
		t.Errorf("expected SMTP host from env, got %q", cfg.SMTP.Host)
	}
}
