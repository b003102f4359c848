package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"netra-dburl/internal/cache"
	"netra-dburl/internal/config"
	"netra-dburl/internal/dburl"
	"netra-dburl/internal/mcpserver/tools"
	"netra-dburl/internal/safety"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	cfg := config.Config{
		AppName:              "netra-dburl-integration",
		AllowProbe:           os.Getenv("NETRA_DBURL_ALLOW_PROBE") == "true",
		ProbeSecret:          os.Getenv("NETRA_DBURL_PROBE_SECRET"),
		ProbeTimeoutSeconds:  5,
		ProbeCacheTTLSeconds: 5,
		ProbesPerMinute:      10,
		LogLevel:             "info",
	}

	logger, _ := zap.NewDevelopment()
	deps := tools.Dependencies{
		Logger: logger,
		Config: cfg,
		Guard:  safety.NewProbeGuard(cfg),
		Probes: cache.New[tools.ProbeResult](),
	}

	env := dburl.NormalizeEnvironment(config.Snapshot())
	fmt.Println("Environment:", env)

	run("ping", func() (*mcp.CallToolResult, any, error) {
		return tools.Ping(ctx, deps, tools.PingInput{Message: "hello"})
	})
	run("server_info", func() (*mcp.CallToolResult, any, error) { return tools.ServerInfo(ctx, deps) })
	run("describe_config", func() (*mcp.CallToolResult, any, error) {
		return tools.DescribeConfig(ctx, deps, tools.DescribeConfigInput{})
	})
	run("validate_config", func() (*mcp.CallToolResult, any, error) {
		return tools.ValidateConfig(ctx, deps, tools.ValidateConfigInput{})
	})
	run("resolve_url", func() (*mcp.CallToolResult, any, error) {
		return tools.ResolveURL(ctx, deps, tools.ResolveURLInput{})
	})
	run("resolve_url (sync)", func() (*mcp.CallToolResult, any, error) {
		return tools.ResolveURL(ctx, deps, tools.ResolveURLInput{ForSync: true})
	})
	run("format_for_driver", func() (*mcp.CallToolResult, any, error) {
		return tools.FormatForDriver(ctx, deps, tools.FormatForDriverInput{
			URL:     "postgresql://postgres@localhost:5432/netra_dev?sslmode=require",
			Dialect: "asyncpg",
		})
	})
	run("validate_for_driver", func() (*mcp.CallToolResult, any, error) {
		return tools.ValidateForDriver(ctx, deps, tools.ValidateForDriverInput{
			URL:     "postgresql+asyncpg://postgres@localhost:5432/netra_dev",
			Dialect: "asyncpg",
		})
	})
	run("mask_url", func() (*mcp.CallToolResult, any, error) {
		return tools.MaskURL(ctx, deps, tools.MaskURLInput{URL: "postgresql://u:secret@h:5432/d"})
	})
	run("environment_matrix", func() (*mcp.CallToolResult, any, error) {
		return tools.EnvironmentMatrix(ctx, deps, tools.EnvironmentMatrixInput{})
	})
	if cfg.AllowProbe {
		run("check_connectivity", func() (*mcp.CallToolResult, any, error) {
			return tools.CheckConnectivity(ctx, deps, tools.CheckConnectivityInput{})
		})
	} else {
		fmt.Println("\nProbing disabled; set NETRA_DBURL_ALLOW_PROBE=true to exercise check_connectivity")
	}

	fmt.Println("Done at", time.Now().Format(time.RFC3339))
}

// run executes a tool function and prints the result.
func run(name string, fn func() (*mcp.CallToolResult, any, error)) {
	fmt.Printf("\n=== %s ===\n", name)
	res, out, err := fn()
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	if res != nil && res.IsError {
		fmt.Printf("tool error: %s\n", toJSON(res.StructuredContent))
		return
	}
	fmt.Println(toJSON(out))
}

func toJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("<json error: %v>", err)
	}
	return string(b)
}
