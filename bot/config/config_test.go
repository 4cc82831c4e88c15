package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
telegram:
  token: "123:abc"
  admin_id: 42
database:
  host: localhost
  port: "5432"
  user: bot
  password: secret
  name: assistbot
  sslmode: disable
providers:
  weather:
    api_key: ow-key
  hotels:
    api_key: rapid-key
history:
  path: /tmp/history.txt
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Core.Telegram.Token != "123:abc" {
		t.Fatalf("token: %q", cfg.Core.Telegram.Token)
	}
	if cfg.Core.Telegram.RunMode != "longpoll" {
		t.Fatalf("run mode default: %q", cfg.Core.Telegram.RunMode)
	}
	if cfg.History.Path != "/tmp/history.txt" {
		t.Fatalf("history path: %q", cfg.History.Path)
	}
	if cfg.ProviderTimeout().Seconds() != 10 {
		t.Fatalf("timeout default: %v", cfg.ProviderTimeout())
	}
}

func TestLoadRejectsMissingProviderKey(t *testing.T) {
	body := `
telegram:
  token: "123:abc"
database:
  host: localhost
  name: assistbot
providers:
  weather:
    api_key: ow-key
`
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatal("expected error for missing hotels api key")
	}
}

func TestHistoryPathDefault(t *testing.T) {
	body := `
telegram:
  token: "123:abc"
database:
  host: localhost
  name: assistbot
providers:
  weather:
    api_key: ow-key
  hotels:
    api_key: rapid-key
`
	cfg, err := Load(writeConfig(t, body))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.History.Path != "history.txt" {
		t.Fatalf("history default: %q", cfg.History.Path)
	}
}
