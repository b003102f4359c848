package tools

import (
	"context"
	"testing"
	"time"

	"netra-dburl/internal/config"
	"netra-dburl/internal/dburl"
	serr "netra-dburl/internal/errors"
	"netra-dburl/internal/safety"
)

func TestValidateConfigTool(t *testing.T) {
	deps := depsForTest(map[string]string{dburl.KeyEnvironment: "staging"}, config.Config{})
	_, out, err := ValidateConfig(context.Background(), deps, ValidateConfigInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.OK || len(out.Issues) != 1 {
		t.Fatalf("expected single accumulated issue, got %+v", out)
	}
}

func TestDescribeConfigToolIsLogSafe(t *testing.T) {
	deps := depsForTest(map[string]string{
		dburl.KeyHost:     "db.example.com",
		dburl.KeyPassword: "hunter2hunter2",
	}, config.Config{})
	_, out, err := DescribeConfig(context.Background(), deps, DescribeConfigInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Summary.PasswordSet || !out.Summary.HostSet {
		t.Fatalf("presence flags wrong: %+v", out.Summary)
	}
}

func TestEnvironmentMatrixDefaults(t *testing.T) {
	deps := depsForTest(map[string]string{}, config.Config{})
	_, out, err := EnvironmentMatrix(context.Background(), deps, EnvironmentMatrixInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Rows) != 4 {
		t.Fatalf("expected four rows, got %d", len(out.Rows))
	}
	byEnv := map[string]MatrixRow{}
	for _, r := range out.Rows {
		byEnv[r.Environment] = r
	}
	if !byEnv["development"].Resolved || !byEnv["test"].Resolved {
		t.Fatalf("local environments must resolve a default url: %+v", out.Rows)
	}
	if byEnv["staging"].Resolved || byEnv["production"].Resolved {
		t.Fatalf("strict environments without host must not resolve: %+v", out.Rows)
	}
	if byEnv["staging"].OK {
		t.Fatalf("staging with empty config must fail validation")
	}
}

func TestCheckConnectivityDisabled(t *testing.T) {
	deps := depsForTest(map[string]string{}, config.Config{})
	res, _, err := CheckConnectivity(context.Background(), deps, CheckConnectivityInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil || !res.IsError {
		t.Fatalf("probe must be disabled by default")
	}
	if sc, ok := res.StructuredContent.(map[string]any); !ok || sc["code"] != serr.CodeProbeDisabled {
		t.Fatalf("expected %s, got %+v", serr.CodeProbeDisabled, res.StructuredContent)
	}
}

func TestCheckConnectivityRequiresApproval(t *testing.T) {
	cfg := config.Config{AllowProbe: true, ProbeSecret: "s3cret", ProbesPerMinute: 60, ProbeTimeoutSeconds: 1}
	deps := depsForTest(map[string]string{
		dburl.KeyEnvironment: "production",
		dburl.KeyHost:        "db.example.com",
		dburl.KeyUser:        "svc",
		dburl.KeyPassword:    "strong_pw_32_chars_xxxxxxxxxxxxx",
		dburl.KeyDatabase:    "netra",
	}, cfg)
	res, _, err := CheckConnectivity(context.Background(), deps, CheckConnectivityInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil || !res.IsError {
		t.Fatalf("production probe without token must be refused")
	}
	if sc, ok := res.StructuredContent.(map[string]any); !ok || sc["code"] != serr.CodeApprovalRequired {
		t.Fatalf("expected %s, got %+v", serr.CodeApprovalRequired, res.StructuredContent)
	}

	tok, err := safety.GenerateProbeToken(cfg.ProbeSecret, "production", time.Minute)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	res, _, err = CheckConnectivity(context.Background(), deps, CheckConnectivityInput{ApprovalToken: tok})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != nil && res.IsError {
		t.Fatalf("valid token must pass the guard, got %+v", res.StructuredContent)
	}
}

func TestRequestProbeToken(t *testing.T) {
	cfg := config.Config{AllowProbe: true, ProbeSecret: "s3cret", ProbesPerMinute: 60}
	deps := depsForTest(map[string]string{}, cfg)
	_, out, err := RequestProbeToken(context.Background(), deps, RequestProbeTokenInput{Environment: "Staging"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Token == "" || out.ExpiresInSeconds <= 0 {
		t.Fatalf("expected token, got %+v", out)
	}
}
