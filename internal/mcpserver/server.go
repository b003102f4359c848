package mcpserver

import (
	"context"

	"netra-dburl/internal/cache"
	"netra-dburl/internal/config"
	"netra-dburl/internal/mcpserver/prompts"
	"netra-dburl/internal/mcpserver/resources"
	"netra-dburl/internal/mcpserver/tools"
	"netra-dburl/internal/safety"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.Config
	logger *zap.Logger
	guard  *safety.ProbeGuard
	srv    *mcp.Server
}

func New(ctx context.Context, impl *mcp.Implementation, cfg config.Config, logger *zap.Logger) (*Server, error) {
	if impl == nil {
		impl = &mcp.Implementation{Name: "netra-dburl", Version: "0.1.0"}
	}
	m := mcp.NewServer(impl, nil)
	guard := safety.NewProbeGuard(cfg)
	deps := tools.Dependencies{
		Logger: logger,
		Config: cfg,
		Guard:  guard,
		Probes: cache.New[tools.ProbeResult](),
	}
	tools.Register(m, deps)
	prompts.RegisterAll(m, deps)
	resources.RegisterAll(m, deps)
	return &Server{cfg: cfg, logger: logger, guard: guard, srv: m}, nil
}

// Run runs the server with the provided transport (e.g., &mcp.StdioTransport{}).
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.srv.Run(ctx, transport)
}
