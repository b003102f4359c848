package safety

import (
	"time"

	"netra-dburl/internal/config"
	"netra-dburl/internal/dburl"
	serr "netra-dburl/internal/errors"
)

// ProbeGuard gates connectivity probes: probing staging or production
// touches real infrastructure and requires an approval token; development
// and test do not.
type ProbeGuard struct {
	allowProbe bool
	secret     string
	tokenTTL   time.Duration
	limiter    *Limiter
}

func NewProbeGuard(cfg config.Config) *ProbeGuard {
	return &ProbeGuard{
		allowProbe: cfg.AllowProbe,
		secret:     cfg.ProbeSecret,
		tokenTTL:   5 * time.Minute,
		limiter:    NewLimiter(cfg.ProbesPerMinute),
	}
}

// RequireProbeAllowed ensures probing is enabled, rate limited, and — for
// staging/production — backed by a valid approval token.
func (g *ProbeGuard) RequireProbeAllowed(environment, token string) error {
	if !g.allowProbe {
		return serr.NewProbeDisabled()
	}
	if !g.limiter.Allow() {
		return serr.NewRateLimited()
	}
	if environment != dburl.EnvStaging && environment != dburl.EnvProduction {
		return nil
	}
	if token == "" {
		return serr.NewApprovalRequired(environment)
	}
	if err := ValidateProbeToken(g.secret, environment, token); err != nil {
		return serr.New(serr.CodeApprovalRequired, "invalid probe token", err.Error(), map[string]any{"environment": environment})
	}
	return nil
}

// GenerateToken issues an approval token for the environment.
func (g *ProbeGuard) GenerateToken(environment string) (string, error) {
	if !g.allowProbe {
		return "", serr.NewProbeDisabled()
	}
	return GenerateProbeToken(g.secret, environment, g.tokenTTL)
}

// TokenTTL reports how long issued tokens stay valid.
func (g *ProbeGuard) TokenTTL() time.Duration { return g.tokenTTL }
