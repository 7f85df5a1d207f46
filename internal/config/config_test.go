package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pdns-tui.yml")

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}

	return path
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, `
servers:
  - name: primary
    url: https://ns1.example.com:8081/api/v1/
    api_key: secret-one
  - name: secondary
    url: https://ns2.example.com:8081
    api_key: secret-two
    vhost: pdns
timeout: 2s
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Servers) != 2 {
		t.Fatalf("len(Servers) = %d, want 2", len(cfg.Servers))
	}

	if cfg.Servers[0].URL != "https://ns1.example.com:8081" {
		t.Errorf("Servers[0].URL = %q, want API prefix stripped", cfg.Servers[0].URL)
	}

	if cfg.Servers[0].VHost != DefaultVHost {
		t.Errorf("Servers[0].VHost = %q, want %q", cfg.Servers[0].VHost, DefaultVHost)
	}

	if cfg.Servers[1].VHost != "pdns" {
		t.Errorf("Servers[1].VHost = %q, want %q", cfg.Servers[1].VHost, "pdns")
	}

	if cfg.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, 2*time.Second)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfigFile(t, `
servers:
  - name: primary
    url: https://ns1.example.com:8081
    api_key: secret
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want default %v", cfg.Timeout, DefaultTimeout)
	}

	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want default %q", cfg.Log.Level, DefaultLogLevel)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Error("Load() on a missing file should fail")
	}
}

func TestLoadDuplicateNames(t *testing.T) {
	path := writeConfigFile(t, `
servers:
  - name: primary
    url: https://ns1.example.com:8081
    api_key: secret-one
  - name: primary
    url: https://ns2.example.com:8081
    api_key: secret-two
`)

	_, err := Load(path)
	if !errors.Is(err, ErrDuplicateServer) {
		t.Errorf("Load() error = %v, want ErrDuplicateServer", err)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "no servers",
			content: "servers: []\n",
		},
		{
			name: "missing api key",
			content: `
servers:
  - name: primary
    url: https://ns1.example.com:8081
`,
		},
		{
			name: "missing name",
			content: `
servers:
  - url: https://ns1.example.com:8081
    api_key: secret
`,
		},
		{
			name: "url not a url",
			content: `
servers:
  - name: primary
    url: not a url
    api_key: secret
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfigFile(t, tt.content)); err == nil {
				t.Error("Load() should fail validation")
			}
		})
	}
}

func TestLoadWithJSONOverride(t *testing.T) {
	path := writeConfigFile(t, `
servers:
  - name: primary
    url: https://ns1.example.com:8081
    api_key: secret
log:
  level: info
`)

	jsonOverride := `{"Timeout":1000000000,"Log":{"Level":"warn"}}`
	t.Setenv(EnvConfigJSON, jsonOverride)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Timeout != time.Second {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, time.Second)
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}
}

func TestLoadWithBrokenJSONOverride(t *testing.T) {
	path := writeConfigFile(t, `
servers:
  - name: primary
    url: https://ns1.example.com:8081
    api_key: secret
`)

	t.Setenv(EnvConfigJSON, "{not json")

	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on a broken JSON override")
	}
}

func TestFromFlags(t *testing.T) {
	tests := []struct {
		name     string
		rawURL   string
		apiKey   string
		wantName string
		wantURL  string
		wantErr  bool
	}{
		{
			name:     "name derived from host",
			rawURL:   "https://ns1.example.com:8081",
			apiKey:   "secret",
			wantName: "ns1.example.com",
			wantURL:  "https://ns1.example.com:8081",
		},
		{
			name:     "api prefix stripped",
			rawURL:   "http://127.0.0.1:8081/api/v1",
			apiKey:   "secret",
			wantName: "127.0.0.1",
			wantURL:  "http://127.0.0.1:8081",
		},
		{
			name:    "missing api key",
			rawURL:  "https://ns1.example.com:8081",
			apiKey:  "",
			wantErr: true,
		},
		{
			name:    "unparseable url",
			rawURL:  "://nope",
			apiKey:  "secret",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := FromFlags(tt.rawURL, tt.apiKey)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromFlags() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				return
			}

			if cfg.Servers[0].Name != tt.wantName {
				t.Errorf("Name = %q, want %q", cfg.Servers[0].Name, tt.wantName)
			}

			if cfg.Servers[0].URL != tt.wantURL {
				t.Errorf("URL = %q, want %q", cfg.Servers[0].URL, tt.wantURL)
			}
		})
	}
}

func TestResolveWithoutSource(t *testing.T) {
	_, err := Resolve("", "", "")
	if !errors.Is(err, ErrNoServers) {
		t.Errorf("Resolve() error = %v, want ErrNoServers", err)
	}
}

func TestNormalizeServerURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "https://ns1.example.com:8081", "https://ns1.example.com:8081"},
		{"trailing slash", "https://ns1.example.com:8081/", "https://ns1.example.com:8081"},
		{"api prefix", "https://ns1.example.com:8081/api/v1", "https://ns1.example.com:8081"},
		{"api prefix with slash", "https://ns1.example.com:8081/api/v1/", "https://ns1.example.com:8081"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeServerURL(tt.raw); got != tt.want {
				t.Errorf("normalizeServerURL(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestServerHost(t *testing.T) {
	tests := []struct {
		name   string
		server Server
		want   string
	}{
		{"host and port", Server{URL: "https://ns1.example.com:8081"}, "ns1.example.com"},
		{"bare host", Server{URL: "http://127.0.0.1"}, "127.0.0.1"},
		{"unparseable", Server{URL: "not a url"}, "not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.server.Host(); got != tt.want {
				t.Errorf("Host() = %q, want %q", got, tt.want)
			}
		})
	}
}
