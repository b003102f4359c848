package tools

import (
	"context"
	"fmt"

	"netra-dburl/internal/cache"
	"netra-dburl/internal/config"
	"netra-dburl/internal/dburl"
	serr "netra-dburl/internal/errors"
	"netra-dburl/internal/safety"
	"netra-dburl/internal/version"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// ProbeResult is the cached outcome of a connectivity probe.
type ProbeResult struct {
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms"`
}

type Dependencies struct {
	Logger *zap.Logger
	Config config.Config
	Guard  *safety.ProbeGuard
	Probes *cache.Cache[ProbeResult]

	// Snapshot returns the raw engine configuration map. Nil means the
	// process environment (config.Snapshot); tests substitute fixed maps.
	Snapshot func() map[string]string
}

func (d Dependencies) snapshot() map[string]string {
	if d.Snapshot != nil {
		return d.Snapshot()
	}
	return config.Snapshot()
}

func Register(server *mcp.Server, deps Dependencies) {
	mcp.AddTool(server, &mcp.Tool{Name: "ping", Description: "ping the server"}, func(ctx context.Context, req *mcp.CallToolRequest, input PingInput) (*mcp.CallToolResult, PingOutput, error) {
		return Ping(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "server_info", Description: "returns server metadata"}, func(ctx context.Context, req *mcp.CallToolRequest, input ServerInfoInput) (*mcp.CallToolResult, ServerInfoOutput, error) {
		return ServerInfo(ctx, deps)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "resolve_url", Description: "resolves the database connection url from configuration"}, func(ctx context.Context, req *mcp.CallToolRequest, input ResolveURLInput) (*mcp.CallToolResult, ResolveURLOutput, error) {
		return ResolveURL(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "format_for_driver", Description: "rewrites a connection url for a client-library dialect"}, func(ctx context.Context, req *mcp.CallToolRequest, input FormatForDriverInput) (*mcp.CallToolResult, FormatForDriverOutput, error) {
		return FormatForDriver(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "validate_for_driver", Description: "checks url/dialect compatibility without modifying the url"}, func(ctx context.Context, req *mcp.CallToolRequest, input ValidateForDriverInput) (*mcp.CallToolResult, ValidateForDriverOutput, error) {
		return ValidateForDriver(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "mask_url", Description: "masks credentials in a connection url for logging"}, func(ctx context.Context, req *mcp.CallToolRequest, input MaskURLInput) (*mcp.CallToolResult, MaskURLOutput, error) {
		return MaskURL(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "validate_config", Description: "validates database configuration against environment policy"}, func(ctx context.Context, req *mcp.CallToolRequest, input ValidateConfigInput) (*mcp.CallToolResult, ValidateConfigOutput, error) {
		return ValidateConfig(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "describe_config", Description: "log-safe summary of the database configuration"}, func(ctx context.Context, req *mcp.CallToolRequest, input DescribeConfigInput) (*mcp.CallToolResult, DescribeConfigOutput, error) {
		return DescribeConfig(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "environment_matrix", Description: "resolves and validates the configuration across environments"}, func(ctx context.Context, req *mcp.CallToolRequest, input EnvironmentMatrixInput) (*mcp.CallToolResult, EnvironmentMatrixOutput, error) {
		return EnvironmentMatrix(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "check_connectivity", Description: "probes the resolved database url (approval required outside development/test)"}, func(ctx context.Context, req *mcp.CallToolRequest, input CheckConnectivityInput) (*mcp.CallToolResult, CheckConnectivityOutput, error) {
		return CheckConnectivity(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "request_probe_token", Description: "issues a short-lived approval token for staging/production probes"}, func(ctx context.Context, req *mcp.CallToolRequest, input RequestProbeTokenInput) (*mcp.CallToolResult, RequestProbeTokenOutput, error) {
		return RequestProbeToken(ctx, deps, input)
	})
}

// Ping tool

type PingInput struct {
	Message string `json:"message,omitempty" jsonschema:"optional message to echo"`
}

type PingOutput struct {
	Pong string `json:"pong"`
}

func Ping(ctx context.Context, deps Dependencies, input PingInput) (*mcp.CallToolResult, PingOutput, error) {
	msg := input.Message
	if msg == "" {
		msg = "pong"
	}
	return nil, PingOutput{Pong: msg}, nil
}

// ServerInfo tool

type ServerInfoInput struct{}

type ServerInfoOutput struct {
	Build       version.BuildInfo `json:"build"`
	AllowProbe  bool              `json:"allow_probe"`
	Environment string            `json:"environment"`
}

func ServerInfo(ctx context.Context, deps Dependencies) (*mcp.CallToolResult, ServerInfoOutput, error) {
	return nil, ServerInfoOutput{
		Build:       version.Info(),
		AllowProbe:  deps.Config.AllowProbe,
		Environment: dburl.NormalizeEnvironment(deps.snapshot()),
	}, nil
}

// Helper error creation
func callError(code serr.Code, msg, hint string) *mcp.CallToolResult {
	errObj := map[string]any{"code": code, "message": msg}
	if hint != "" {
		errObj["hint"] = hint
	}
	return &mcp.CallToolResult{
		IsError:           true,
		StructuredContent: errObj,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("%s: %s", code, msg)},
		},
	}
}
