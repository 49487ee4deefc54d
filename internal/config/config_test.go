package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func mapLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFrom(mapLookup(nil))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Upload.MaxConcurrent != 4 {
		t.Errorf("Upload.MaxConcurrent = %d, want %d", cfg.Upload.MaxConcurrent, 4)
	}
	if cfg.Upload.MaxFileSize != 10<<20 {
		t.Errorf("Upload.MaxFileSize = %d, want %d", cfg.Upload.MaxFileSize, 10<<20)
	}
	if cfg.Session.CookieName != "ledgerview_session" {
		t.Errorf("Session.CookieName = %q", cfg.Session.CookieName)
	}
	if cfg.Session.TTL != 2*time.Hour {
		t.Errorf("Session.TTL = %v, want 2h", cfg.Session.TTL)
	}
	if !cfg.Rate.Enabled || cfg.Rate.RequestsPerMinute != 120 {
		t.Errorf("Rate = %+v", cfg.Rate)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if cfg.Security.APIKeys != nil {
		t.Errorf("Security.APIKeys = %v, want nil", cfg.Security.APIKeys)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("UPLOAD_MAX_CONCURRENT", "10")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Upload.MaxConcurrent != 10 {
		t.Errorf("Upload.MaxConcurrent = %d, want %d", cfg.Upload.MaxConcurrent, 10)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	cfg, err := LoadFrom(mapLookup(map[string]string{"PORT": "3000"}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000 from PORT", cfg.Server.Port)
	}

	cfg, err = LoadFrom(mapLookup(map[string]string{"PORT": "3000", "SERVER_PORT": "4000"}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("Server.Port = %d, want primary 4000", cfg.Server.Port)
	}
}

func TestLoad_ParsesTypes(t *testing.T) {
	cfg, err := LoadFrom(mapLookup(map[string]string{
		"SESSION_TTL":          "45m",
		"SECURITY_ENABLE_CSP":  "false",
		"TRUSTED_PROXIES":      " 10.0.0.0/8, ,192.168.0.0/16 ",
		"UPLOAD_MAX_FILE_SIZE": "2048",
	}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Session.TTL != 45*time.Minute {
		t.Errorf("Session.TTL = %v, want 45m", cfg.Session.TTL)
	}
	if cfg.Security.EnableCSP {
		t.Error("Security.EnableCSP should be false")
	}
	want := []string{"10.0.0.0/8", "192.168.0.0/16"}
	if !reflect.DeepEqual(cfg.Security.TrustedProxies, want) {
		t.Errorf("TrustedProxies = %v, want %v", cfg.Security.TrustedProxies, want)
	}
	if cfg.Upload.MaxFileSize != 2048 {
		t.Errorf("Upload.MaxFileSize = %d, want 2048", cfg.Upload.MaxFileSize)
	}
}

func TestLoad_InvalidValuesReportedTogether(t *testing.T) {
	_, err := LoadFrom(mapLookup(map[string]string{
		"SERVER_PORT":        "abc",
		"SESSION_TTL":        "forever",
		"RATE_LIMIT_ENABLED": "maybe",
	}))
	if err == nil {
		t.Fatal("expected error")
	}

	for _, name := range []string{"SERVER_PORT", "SESSION_TTL", "RATE_LIMIT_ENABLED"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error should mention %s: %v", name, err)
		}
	}
}

func TestLoadStruct_Required(t *testing.T) {
	var target struct {
		Token string `env:"TOKEN" required:"true"`
	}

	err := loadStruct(reflect.ValueOf(&target).Elem(), mapLookup(nil))
	if err == nil || !strings.Contains(err.Error(), "TOKEN") {
		t.Errorf("expected missing TOKEN error, got %v", err)
	}

	err = loadStruct(reflect.ValueOf(&target).Elem(), mapLookup(map[string]string{"TOKEN": "x"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.Token != "x" {
		t.Errorf("Token = %q, want x", target.Token)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad port", map[string]string{"SERVER_PORT": "70000"}, "SERVER_PORT"},
		{"zero uploads", map[string]string{"UPLOAD_MAX_CONCURRENT": "0"}, "UPLOAD_MAX_CONCURRENT"},
		{"blank cookie falls back to default", map[string]string{"SESSION_COOKIE": " "}, ""},
		{"bad level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"bad format", map[string]string{"LOG_FORMAT": "xml"}, "LOG_FORMAT"},
		{"api key without keys", map[string]string{"REQUIRE_API_KEY": "true"}, "API_KEYS"},
		{"api key with keys", map[string]string{"REQUIRE_API_KEY": "true", "API_KEYS": "k1,k2"}, ""},
		{"rate disabled skips checks", map[string]string{"RATE_LIMIT_ENABLED": "false", "RATE_LIMIT_UPLOAD": "0"}, ""},
		{"rate enabled zero upload", map[string]string{"RATE_LIMIT_UPLOAD": "0"}, "RATE_LIMIT_UPLOAD"},
		{"relative metrics path", map[string]string{"METRICS_PATH": "metrics"}, "METRICS_PATH"},
		{"upload outlives request", map[string]string{"UPLOAD_TIMEOUT": "2m"}, "SERVER_REQUEST_TIMEOUT"},
		{"upload outlives write", map[string]string{"UPLOAD_TIMEOUT": "90s", "SERVER_REQUEST_TIMEOUT": "2m"}, "SERVER_WRITE_TIMEOUT"},
		{"upload within both", map[string]string{"UPLOAD_TIMEOUT": "90s", "SERVER_REQUEST_TIMEOUT": "2m", "SERVER_WRITE_TIMEOUT": "2m"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(mapLookup(tt.env))
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_StringMasksKeys(t *testing.T) {
	cfg, err := LoadFrom(mapLookup(map[string]string{
		"REQUIRE_API_KEY": "true",
		"API_KEYS":        "super-secret-key",
	}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	s := cfg.String()
	if strings.Contains(s, "super-secret-key") {
		t.Errorf("String() leaked an API key: %s", s)
	}
	if !strings.Contains(s, "1 MASKED") {
		t.Errorf("String() = %s, want masked key count", s)
	}
}

func TestServerConfig_Addr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"", 9000, ":9000"},
		{"::1", 443, "[::1]:443"},
	}
	for _, tt := range tests {
		c := ServerConfig{Host: tt.host, Port: tt.port}
		if got := c.Addr(); got != tt.want {
			t.Errorf("Addr(%q, %d) = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}
