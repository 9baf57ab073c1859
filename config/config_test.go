package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsAndEnv(t *testing.T) {
	t.Setenv("SITE_ORIGIN", "https://scopedlabs.example")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_x")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_x")
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co")
	t.Setenv("SUPABASE_SERVICE_KEY", "service-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8787" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Site.Origin != "https://scopedlabs.example" {
		t.Errorf("origin = %q", cfg.Site.Origin)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  addr: ":9000"
  read_timeout: 5s
site:
  origin: "https://scopedlabs.example"
stripe:
  secret_key: "sk_test_file"
  webhook_secret: "whsec_file"
postgres:
  dsn: "postgres://localhost/scopedlabs"
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateMissingSecrets(t *testing.T) {
	cfg := defaults()
	cfg.Site.Origin = "https://scopedlabs.example"
	cfg.Stripe.SecretKey = "sk_test_x"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate passed without a webhook secret")
	}
	cfg.Stripe.WebhookSecret = "whsec_x"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate passed without any store configuration")
	}
	cfg.Postgres.DSN = "postgres://localhost/scopedlabs"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateRejectsPartialSupabase(t *testing.T) {
	cfg := defaults()
	cfg.Site.Origin = "https://scopedlabs.example"
	cfg.Stripe.SecretKey = "sk_test_x"
	cfg.Stripe.WebhookSecret = "whsec_x"
	cfg.Supabase.URL = "https://abc.supabase.co"
	cfg.Postgres.DSN = "postgres://localhost/scopedlabs"

	// URL without a service key is a misconfiguration even when Postgres
	// could serve, not a silent fallback.
	if err := cfg.Validate(); err == nil {
		t.Error("Validate passed with supabase.url but no service key")
	}
	cfg.Supabase.ServiceKey = "service-key"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
