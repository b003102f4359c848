package db

import (
	"context"
	"fmt"
	"time"

	"netra-dburl/internal/dburl"
	"github.com/jackc/pgx/v5"
)

// Probe opens a single connection to the resolved URL and pings it. The URL
// is first reduced to its direct-driver form: pgx takes bare postgresql://,
// not ORM-qualified schemes.
func Probe(ctx context.Context, url, appName string, timeout time.Duration) error {
	cfg, err := pgx.ParseConfig(dburl.FormatForDirectUse(url))
	if err != nil {
		return fmt.Errorf("parse connection url: %w", err)
	}
	cfg.ConnectTimeout = timeout
	if cfg.RuntimeParams == nil {
		cfg.RuntimeParams = map[string]string{}
	}
	if appName != "" {
		cfg.RuntimeParams["application_name"] = appName
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())
	return conn.Ping(ctx)
}
