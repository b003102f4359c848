package tools

import (
	"context"
	"fmt"

	"netra-dburl/internal/config"
	"netra-dburl/internal/dburl"
	serr "netra-dburl/internal/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ResolveURL tool

type ResolveURLInput struct {
	ForSync   bool              `json:"for_sync,omitempty" jsonschema:"use the synchronous driver scheme"`
	Dialect   string            `json:"dialect,omitempty" jsonschema:"target dialect: asyncpg|psycopg2|psycopg3|base"`
	Overrides map[string]string `json:"overrides,omitempty" jsonschema:"per-call configuration overrides"`
	Reveal    bool              `json:"reveal,omitempty" jsonschema:"include the unmasked url (development/test only)"`
}

type ResolveURLOutput struct {
	Resolved    bool              `json:"resolved"`
	URL         string            `json:"url,omitempty"`
	RawURL      string            `json:"raw_url,omitempty"`
	Environment string            `json:"environment"`
	Topology    dburl.TopologyKind `json:"topology"`
}

func ResolveURL(ctx context.Context, deps Dependencies, input ResolveURLInput) (*mcp.CallToolResult, ResolveURLOutput, error) {
	cfg := config.Merge(deps.snapshot(), input.Overrides)
	env := dburl.NormalizeEnvironment(cfg)
	top := dburl.ClassifyTopology(cfg)

	var url string
	var ok bool
	if input.Dialect != "" {
		d, known := dburl.ParseDialect(input.Dialect)
		if !known {
			return callError(serr.CodeInvalidInput, fmt.Sprintf("unknown dialect %q", input.Dialect), "use asyncpg|psycopg2|psycopg3|base"), ResolveURLOutput{}, nil
		}
		url, ok = dburl.ResolveForDialect(cfg, d)
	} else {
		url, ok = dburl.Resolve(cfg, input.ForSync)
	}

	out := ResolveURLOutput{Resolved: ok, Environment: env, Topology: top.Kind}
	if !ok {
		return nil, out, nil
	}
	out.URL = dburl.Mask(url)
	if input.Reveal {
		if env != dburl.EnvDevelopment && env != dburl.EnvTest {
			return callError(serr.CodePolicyViolation, "unmasked urls are limited to development/test", "omit reveal"), ResolveURLOutput{}, nil
		}
		out.RawURL = url
	}
	return nil, out, nil
}

// FormatForDriver tool. The caller already holds whatever credentials the
// input url carries, so the formatted result comes back unmasked.

type FormatForDriverInput struct {
	URL     string `json:"url" jsonschema:"required"`
	Dialect string `json:"dialect" jsonschema:"required"`
}

type FormatForDriverOutput struct {
	URL        string                 `json:"url"`
	Validation dburl.ValidationResult `json:"validation"`
}

func FormatForDriver(ctx context.Context, deps Dependencies, input FormatForDriverInput) (*mcp.CallToolResult, FormatForDriverOutput, error) {
	if input.URL == "" {
		return callError(serr.CodeInvalidInput, "url required", "provide a connection url"), FormatForDriverOutput{}, nil
	}
	d, known := dburl.ParseDialect(input.Dialect)
	if !known {
		return callError(serr.CodeInvalidInput, fmt.Sprintf("unknown dialect %q", input.Dialect), "use asyncpg|psycopg2|psycopg3|base"), FormatForDriverOutput{}, nil
	}
	formatted := dburl.FormatForDriver(input.URL, d)
	return nil, FormatForDriverOutput{URL: formatted, Validation: dburl.ValidateForDriver(formatted, d)}, nil
}

// ValidateForDriver tool

type ValidateForDriverInput struct {
	URL     string `json:"url" jsonschema:"required"`
	Dialect string `json:"dialect" jsonschema:"required"`
}

type ValidateForDriverOutput struct {
	OK     bool     `json:"ok"`
	Issues []string `json:"issues,omitempty"`
}

func ValidateForDriver(ctx context.Context, deps Dependencies, input ValidateForDriverInput) (*mcp.CallToolResult, ValidateForDriverOutput, error) {
	if input.URL == "" {
		return callError(serr.CodeInvalidInput, "url required", "provide a connection url"), ValidateForDriverOutput{}, nil
	}
	d, known := dburl.ParseDialect(input.Dialect)
	if !known {
		return callError(serr.CodeInvalidInput, fmt.Sprintf("unknown dialect %q", input.Dialect), "use asyncpg|psycopg2|psycopg3|base"), ValidateForDriverOutput{}, nil
	}
	res := dburl.ValidateForDriver(input.URL, d)
	return nil, ValidateForDriverOutput{OK: res.OK, Issues: res.Issues}, nil
}

// MaskURL tool

type MaskURLInput struct {
	URL string `json:"url,omitempty" jsonschema:"connection url to mask; empty reports NOT SET"`
}

type MaskURLOutput struct {
	Masked string `json:"masked"`
}

func MaskURL(ctx context.Context, deps Dependencies, input MaskURLInput) (*mcp.CallToolResult, MaskURLOutput, error) {
	return nil, MaskURLOutput{Masked: dburl.Mask(input.URL)}, nil
}
