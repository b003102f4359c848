package tools

import (
	"context"
	"strings"

	"netra-dburl/internal/config"
	"netra-dburl/internal/dburl"
	serr "netra-dburl/internal/errors"
	"netra-dburl/internal/fanout"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ValidateConfig tool

type ValidateConfigInput struct {
	Overrides map[string]string `json:"overrides,omitempty" jsonschema:"per-call configuration overrides"`
}

type ValidateConfigOutput struct {
	Environment string   `json:"environment"`
	OK          bool     `json:"ok"`
	Issues      []string `json:"issues,omitempty"`
}

func ValidateConfig(ctx context.Context, deps Dependencies, input ValidateConfigInput) (*mcp.CallToolResult, ValidateConfigOutput, error) {
	cfg := config.Merge(deps.snapshot(), input.Overrides)
	res := dburl.Validate(cfg)
	return nil, ValidateConfigOutput{
		Environment: dburl.NormalizeEnvironment(cfg),
		OK:          res.OK,
		Issues:      res.Issues,
	}, nil
}

// DescribeConfig tool

type DescribeConfigInput struct{}

type DescribeConfigOutput struct {
	Summary dburl.Summary `json:"summary"`
}

func DescribeConfig(ctx context.Context, deps Dependencies, input DescribeConfigInput) (*mcp.CallToolResult, DescribeConfigOutput, error) {
	return nil, DescribeConfigOutput{Summary: dburl.Describe(deps.snapshot())}, nil
}

// EnvironmentMatrix tool

type EnvironmentMatrixInput struct {
	Environments []string `json:"environments,omitempty" jsonschema:"environment tags to evaluate; defaults to the four standard ones"`
	ForSync      bool     `json:"for_sync,omitempty"`
}

type MatrixRow struct {
	Environment string   `json:"environment"`
	Resolved    bool     `json:"resolved"`
	URL         string   `json:"url,omitempty"`
	OK          bool     `json:"ok"`
	Issues      []string `json:"issues,omitempty"`
}

type EnvironmentMatrixOutput struct {
	Rows []MatrixRow `json:"rows"`
}

func EnvironmentMatrix(ctx context.Context, deps Dependencies, input EnvironmentMatrixInput) (*mcp.CallToolResult, EnvironmentMatrixOutput, error) {
	envs := input.Environments
	if len(envs) == 0 {
		envs = []string{dburl.EnvDevelopment, dburl.EnvTest, dburl.EnvStaging, dburl.EnvProduction}
	}
	snap := deps.snapshot()
	rows, err := fanout.Fanout(ctx, envs, func(ctx context.Context, env string) (MatrixRow, error) {
		cfg := config.Merge(snap, map[string]string{dburl.KeyEnvironment: env})
		url, resolved := dburl.Resolve(cfg, input.ForSync)
		res := dburl.Validate(cfg)
		row := MatrixRow{
			Environment: strings.ToLower(env),
			Resolved:    resolved,
			OK:          res.OK,
			Issues:      res.Issues,
		}
		if resolved {
			row.URL = dburl.Mask(url)
		}
		return row, nil
	})
	if err != nil {
		return callError(serr.CodeInternalError, err.Error(), ""), EnvironmentMatrixOutput{}, nil
	}
	return nil, EnvironmentMatrixOutput{Rows: rows}, nil
}
