package storage

import (
	"strings"
	"testing"
)

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(Config{Driver: "oracle", DSN: "whatever"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestOpenRequiresDSN(t *testing.T) {
	if _, err := Open(Config{Driver: DriverSQLite}); err == nil {
		t.Fatal("expected error for empty dsn")
	}
}

func TestOpenSQLiteMemory(t *testing.T) {
	db, err := Open(Config{Driver: DriverSQLite, DSN: "file::memory:?cache=shared"})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		t.Fatalf("ping sqlite: %v", err)
	}
}

func TestValidateConfigPayload(t *testing.T) {
	valid := map[string]any{
		"driver": "sqlite",
		"dsn":    "file:posts.db",
	}
	if err := ValidateConfigPayload(valid); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}

	missingDSN := map[string]any{"driver": "sqlite"}
	if err := ValidateConfigPayload(missingDSN); err == nil {
		t.Fatal("expected error for missing dsn")
	}

	badDriver := map[string]any{"driver": "mysql", "dsn": "x"}
	err := ValidateConfigPayload(badDriver)
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
	if !strings.Contains(err.Error(), "invalid config") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfigFromPayload(t *testing.T) {
	payload := map[string]any{
		"name":     "primary",
		"driver":   "postgres",
		"dsn":      "postgres://localhost:5432/posts",
		"readOnly": true,
		"options":  map[string]any{"pool_size": float64(4)},
	}

	cfg, err := ConfigFromPayload(payload)
	if err != nil {
		t.Fatalf("ConfigFromPayload: %v", err)
	}
	if cfg.Name != "primary" {
		t.Fatalf("unexpected name %q", cfg.Name)
	}
	if cfg.Driver != DriverPostgres {
		t.Fatalf("unexpected driver %q", cfg.Driver)
	}
	if !cfg.ReadOnly {
		t.Fatal("expected readOnly to carry over")
	}
	if cfg.Options["pool_size"] != float64(4) {
		t.Fatalf("unexpected options: %#v", cfg.Options)
	}
}
