package config

import (
	"testing"
	"time"
)

func TestEnvString(t *testing.T) {
	t.Setenv("TEST_STRING", "value")

	if got := envString("TEST_STRING", "default"); got != "value" {
		t.Errorf("envString = %q, want %q", got, "value")
	}
	if got := envString("TEST_STRING_MISSING", "default"); got != "default" {
		t.Errorf("envString missing = %q, want %q", got, "default")
	}
}

func TestEnvBool(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{"true", false, true},
		{"false", true, false},
		{"1", false, true},
		{"", true, true},
		{"garbage", false, false},
	}

	for _, tt := range tests {
		t.Setenv("TEST_BOOL", tt.value)
		if got := envBool("TEST_BOOL", tt.def); got != tt.want {
			t.Errorf("envBool(%q, %v) = %v, want %v", tt.value, tt.def, got, tt.want)
		}
	}
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "45m")
	if got := envDuration("TEST_DURATION", time.Hour); got != 45*time.Minute {
		t.Errorf("envDuration = %v, want 45m", got)
	}

	t.Setenv("TEST_DURATION", "nope")
	if got := envDuration("TEST_DURATION", time.Hour); got != time.Hour {
		t.Errorf("envDuration invalid = %v, want default 1h", got)
	}

	if got := envDuration("TEST_DURATION_MISSING", 30*time.Second); got != 30*time.Second {
		t.Errorf("envDuration missing = %v, want default 30s", got)
	}
}

func TestSanitizedStripsSecrets(t *testing.T) {
	cfg := &Config{
		AppName:      "Momentum",
		AppEnv:       "production",
		JWTSecret:    "secret",
		ResendAPIKey: "re_123",
		AIAPIKey:     "sk-123",
		S3SecretKey:  "s3secret",
	}

	s := cfg.Sanitized()

	if s.AppName != "Momentum" || s.AppEnv != "production" {
		t.Error("expected public fields to survive sanitization")
	}
	if s.JWTSecret != "" || s.ResendAPIKey != "" || s.AIAPIKey != "" || s.S3SecretKey != "" {
		t.Error("expected secrets to be stripped")
	}
}

func TestEnvironmentChecks(t *testing.T) {
	dev := &Config{AppEnv: "development"}
	if !dev.IsDevelopment() || dev.IsProduction() {
		t.Error("development env misclassified")
	}

	prod := &Config{AppEnv: "production"}
	if !prod.IsProduction() || prod.IsDevelopment() {
		t.Error("production env misclassified")
	}
}
