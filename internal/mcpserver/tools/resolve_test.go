package tools

import (
	"context"
	"strings"
	"testing"

	"netra-dburl/internal/cache"
	"netra-dburl/internal/config"
	"netra-dburl/internal/dburl"
	"netra-dburl/internal/safety"
	"go.uber.org/zap"
)

func depsForTest(snapshot map[string]string, cfg config.Config) Dependencies {
	return Dependencies{
		Logger:   zap.NewNop(),
		Config:   cfg,
		Guard:    safety.NewProbeGuard(cfg),
		Probes:   cache.New[ProbeResult](),
		Snapshot: func() map[string]string { return snapshot },
	}
}

func TestResolveURLMasksByDefault(t *testing.T) {
	deps := depsForTest(map[string]string{
		dburl.KeyEnvironment: "staging",
		dburl.KeyHost:        "db.example.com",
		dburl.KeyUser:        "svc",
		dburl.KeyPassword:    "hunter2hunter2",
		dburl.KeyDatabase:    "netra",
	}, config.Config{})
	res, out, err := ResolveURL(context.Background(), deps, ResolveURLInput{})
	if err != nil || res != nil {
		t.Fatalf("unexpected failure: %v %v", err, res)
	}
	if !out.Resolved || out.Environment != "staging" || out.Topology != dburl.TopologyTCP {
		t.Fatalf("unexpected output %+v", out)
	}
	if strings.Contains(out.URL, "hunter2hunter2") || out.RawURL != "" {
		t.Fatalf("credentials leaked: %+v", out)
	}
}

func TestResolveURLRevealOnlyLocal(t *testing.T) {
	deps := depsForTest(map[string]string{
		dburl.KeyEnvironment: "staging",
		dburl.KeyHost:        "db.example.com",
		dburl.KeyUser:        "svc",
		dburl.KeyPassword:    "pw",
		dburl.KeyDatabase:    "netra",
	}, config.Config{})
	res, _, err := ResolveURL(context.Background(), deps, ResolveURLInput{Reveal: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil || !res.IsError {
		t.Fatalf("reveal in staging must be refused")
	}

	deps = depsForTest(map[string]string{dburl.KeyEnvironment: "development"}, config.Config{})
	_, out, err := ResolveURL(context.Background(), deps, ResolveURLInput{Reveal: true})
	if err != nil || out.RawURL == "" {
		t.Fatalf("development reveal should return the raw url, got %+v", out)
	}
}

func TestResolveURLOverrides(t *testing.T) {
	deps := depsForTest(map[string]string{dburl.KeyEnvironment: "development"}, config.Config{})
	_, out, err := ResolveURL(context.Background(), deps, ResolveURLInput{
		Overrides: map[string]string{dburl.KeyHost: "/cloudsql/p:r:i"},
	})
	if err != nil || out.Topology != dburl.TopologyCloudSocket {
		t.Fatalf("override not applied: %+v err=%v", out, err)
	}
}

func TestResolveURLUnknownDialect(t *testing.T) {
	deps := depsForTest(map[string]string{}, config.Config{})
	res, _, err := ResolveURL(context.Background(), deps, ResolveURLInput{Dialect: "oracle"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil || !res.IsError {
		t.Fatalf("unknown dialect must be a tool error")
	}
}

func TestFormatForDriverTool(t *testing.T) {
	deps := depsForTest(map[string]string{}, config.Config{})
	_, out, err := FormatForDriver(context.Background(), deps, FormatForDriverInput{
		URL:     "postgresql://u@h:5432/d?sslmode=require",
		Dialect: "asyncpg",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.URL != "postgresql+asyncpg://u@h:5432/d?ssl=require" {
		t.Fatalf("got %q", out.URL)
	}
	if !out.Validation.OK {
		t.Fatalf("formatted url must validate for its own dialect: %v", out.Validation.Issues)
	}
}

func TestMaskURLTool(t *testing.T) {
	deps := depsForTest(map[string]string{}, config.Config{})
	_, out, _ := MaskURL(context.Background(), deps, MaskURLInput{URL: ""})
	if out.Masked != "NOT SET" {
		t.Fatalf("got %q", out.Masked)
	}
}
