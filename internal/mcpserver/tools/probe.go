package tools

import (
	"context"
	"strconv"
	"strings"
	"time"

	"netra-dburl/internal/config"
	"netra-dburl/internal/db"
	"netra-dburl/internal/dburl"
	serr "netra-dburl/internal/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// CheckConnectivity tool

type CheckConnectivityInput struct {
	ForSync       bool              `json:"for_sync,omitempty"`
	Overrides     map[string]string `json:"overrides,omitempty" jsonschema:"per-call configuration overrides"`
	ApprovalToken string            `json:"approval_token,omitempty" jsonschema:"required for staging/production"`
}

type CheckConnectivityOutput struct {
	Environment string `json:"environment"`
	URL         string `json:"url"`
	ProbeResult
	Cached bool `json:"cached,omitempty"`
}

func CheckConnectivity(ctx context.Context, deps Dependencies, input CheckConnectivityInput) (*mcp.CallToolResult, CheckConnectivityOutput, error) {
	cfg := config.Merge(deps.snapshot(), input.Overrides)
	env := dburl.NormalizeEnvironment(cfg)

	if err := deps.Guard.RequireProbeAllowed(env, input.ApprovalToken); err != nil {
		te := serr.ToToolError(err)
		return callError(te.Code, te.Message, te.Hint), CheckConnectivityOutput{}, nil
	}

	url, ok := dburl.Resolve(cfg, input.ForSync)
	if !ok {
		return callError(serr.CodeUnavailable, "no connection url can be resolved", "set "+dburl.KeyHost), CheckConnectivityOutput{}, nil
	}
	masked := dburl.Mask(url)
	key := masked + "|sync=" + strconv.FormatBool(input.ForSync)

	if res, hit := deps.Probes.Get(key); hit {
		return nil, CheckConnectivityOutput{Environment: env, URL: masked, ProbeResult: res, Cached: true}, nil
	}

	timeout := time.Duration(deps.Config.ProbeTimeoutSeconds) * time.Second
	start := time.Now()
	err := db.Probe(ctx, url, deps.Config.AppName, timeout)
	res := ProbeResult{OK: err == nil, LatencyMs: time.Since(start).Milliseconds()}
	if err != nil {
		res.Error = serr.Scrub(err.Error())
	}
	deps.Probes.Set(key, res, time.Duration(deps.Config.ProbeCacheTTLSeconds)*time.Second)

	deps.Logger.Info("connectivity probe",
		zap.String("environment", env),
		zap.String("url", masked),
		zap.Bool("ok", res.OK),
		zap.Int64("latency_ms", res.LatencyMs),
	)
	return nil, CheckConnectivityOutput{Environment: env, URL: masked, ProbeResult: res}, nil
}

// RequestProbeToken tool

type RequestProbeTokenInput struct {
	Environment string `json:"environment" jsonschema:"required"`
}

type RequestProbeTokenOutput struct {
	Token            string `json:"token"`
	ExpiresInSeconds int64  `json:"expires_in_seconds"`
}

func RequestProbeToken(ctx context.Context, deps Dependencies, input RequestProbeTokenInput) (*mcp.CallToolResult, RequestProbeTokenOutput, error) {
	env := strings.ToLower(strings.TrimSpace(input.Environment))
	if env == "" {
		return callError(serr.CodeInvalidInput, "environment required", "name the environment to probe"), RequestProbeTokenOutput{}, nil
	}
	tok, err := deps.Guard.GenerateToken(env)
	if err != nil {
		te := serr.ToToolError(err)
		return callError(te.Code, te.Message, te.Hint), RequestProbeTokenOutput{}, nil
	}
	return nil, RequestProbeTokenOutput{
		Token:            tok,
		ExpiresInSeconds: int64(deps.Guard.TokenTTL() / time.Second),
	}, nil
}
