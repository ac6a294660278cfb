package config

import (
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("PORTAL_CONFIG_DIR", t.TempDir())

	cfg := &Config{}
	if err := cfg.SetProfile("work", Profile{BaseURL: "http://intranet.local:8080", Token: "tok", DisplayName: "An"}); err != nil {
		t.Fatalf("SetProfile: %v", err)
	}
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.CurrentProfile != "work" {
		t.Fatalf("current = %q", got.CurrentProfile)
	}
	p := got.Profiles["work"]
	if p.BaseURL != "http://intranet.local:8080" || p.Token != "tok" {
		t.Fatalf("profile = %+v", p)
	}
}

func TestCurrent_EnvOverrides(t *testing.T) {
	t.Setenv("PORTAL_CONFIG_DIR", t.TempDir())
	t.Setenv("PORTAL_URL", "http://other.local")
	t.Setenv("PORTAL_TOKEN", "env-tok")

	cfg := &Config{}
	_ = cfg.SetProfile("work", Profile{BaseURL: "http://intranet.local", Token: "stored"})

	p, err := cfg.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if p.BaseURL != "http://other.local" || p.Token != "env-tok" {
		t.Fatalf("profile = %+v", p)
	}
}

func TestCurrent_ErrorsWithoutBaseURL(t *testing.T) {
	t.Setenv("PORTAL_CONFIG_DIR", t.TempDir())
	t.Setenv("PORTAL_URL", "")
	t.Setenv("PORTAL_TOKEN", "")

	cfg := &Config{}
	if _, err := cfg.Current(); err == nil {
		t.Fatalf("expected error when nothing is configured")
	}
}

func TestLoad_MissingFileIsEmptyConfig(t *testing.T) {
	t.Setenv("PORTAL_CONFIG_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Profiles) != 0 || cfg.CurrentProfile != "" {
		t.Fatalf("expected empty config; got %+v", cfg)
	}
}
