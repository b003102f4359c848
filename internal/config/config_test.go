package config

import (
	"testing"

	"netra-dburl/internal/dburl"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Transport != TransportStdio {
		t.Fatalf("expected stdio transport, got %s", cfg.Transport)
	}
	if cfg.ProbeTimeoutSeconds <= 0 {
		t.Fatalf("expected positive probe timeout")
	}
}

func TestValidateProbeSecret(t *testing.T) {
	cfg := Config{Transport: TransportStdio, AllowProbe: true, ProbeTimeoutSeconds: 5, ProbesPerMinute: 6}
	if err := validate(cfg); err == nil {
		t.Fatalf("allow_probe without secret must fail")
	}
	cfg.ProbeSecret = "s"
	if err := validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSnapshotDistinguishesAbsentFromEmpty(t *testing.T) {
	t.Setenv(dburl.KeyEnvironment, "")
	t.Setenv(dburl.KeyHost, "db.example.com")
	m := Snapshot()
	if v, ok := m[dburl.KeyEnvironment]; !ok || v != "" {
		t.Fatalf("explicitly empty key must survive as empty, got %q ok=%v", v, ok)
	}
	if m[dburl.KeyHost] != "db.example.com" {
		t.Fatalf("host not captured: %v", m)
	}
}

func TestMergeDoesNotMutateBase(t *testing.T) {
	base := map[string]string{dburl.KeyHost: "a"}
	out := Merge(base, map[string]string{dburl.KeyHost: "b", dburl.KeyUser: "u"})
	if base[dburl.KeyHost] != "a" {
		t.Fatalf("base mutated")
	}
	if out[dburl.KeyHost] != "b" || out[dburl.KeyUser] != "u" {
		t.Fatalf("overrides not applied: %v", out)
	}
}
