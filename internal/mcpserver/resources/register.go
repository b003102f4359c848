package resources

import (
	"netra-dburl/internal/mcpserver/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterAll registers resources with the MCP server. Currently a no-op placeholder.
func RegisterAll(server *mcp.Server, deps tools.Dependencies) {
	// no resources yet
}
