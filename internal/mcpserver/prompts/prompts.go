package prompts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"netra-dburl/internal/mcpserver/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterAll registers all prompts with the MCP server.
func RegisterAll(server *mcp.Server, deps tools.Dependencies) {
	server.AddPrompt(&mcp.Prompt{Name: "/netra.db_diagnose", Title: "Database configuration diagnosis", Description: "Checklist with the resolved topology and policy findings"}, promptDBDiagnose(deps))
	server.AddPrompt(&mcp.Prompt{Name: "/netra.probe_workflow", Title: "Connectivity probe workflow", Description: "Step-by-step guidance for probing the resolved database"}, promptProbeWorkflow(deps))
}

func promptDBDiagnose(deps tools.Dependencies) mcp.PromptHandler {
	return func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		var summaryText string
		var checklist strings.Builder
		checklist.WriteString("### 🩺 Database Configuration Diagnosis\n")
		checklist.WriteString("- [ ] Run `describe_config` for a credential-safe summary\n")
		checklist.WriteString("- [ ] Run `validate_config` and review every issue\n")
		checklist.WriteString("- [ ] Run `resolve_url` and confirm the expected topology\n")
		checklist.WriteString("- [ ] Compare environments with `environment_matrix`\n\n")

		_, desc, derr := tools.DescribeConfig(ctx, deps, tools.DescribeConfigInput{})
		_, val, verr := tools.ValidateConfig(ctx, deps, tools.ValidateConfigInput{})
		if derr == nil && verr == nil {
			checklist.WriteString(fmt.Sprintf("**Environment**: %s\n", desc.Summary.Environment))
			checklist.WriteString(fmt.Sprintf("**Topology**: %s\n\n", desc.Summary.Topology))
			if !val.OK {
				checklist.WriteString("Policy issues:\n")
				for _, issue := range val.Issues {
					checklist.WriteString(fmt.Sprintf("- %s\n", issue))
				}
				checklist.WriteString("\n")
			}
			b, _ := json.MarshalIndent(desc.Summary, "", "  ")
			summaryText = fmt.Sprintf("```json\n%s\n```", string(b))
		} else {
			summaryText = fmt.Sprintf("⚠️ Unable to read configuration: %v %v", derr, verr)
		}

		messages := []*mcp.PromptMessage{
			{Role: mcp.Role("system"), Content: &mcp.TextContent{Text: "You are a concise database operations assistant. Provide checklists and actionable next steps. Never echo credentials."}},
			{Role: mcp.Role("assistant"), Content: &mcp.TextContent{Text: checklist.String() + summaryText}},
		}
		return &mcp.GetPromptResult{Description: "Database configuration diagnosis", Messages: messages}, nil
	}
}

func promptProbeWorkflow(deps tools.Dependencies) mcp.PromptHandler {
	return func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		var b strings.Builder
		b.WriteString("### 🔌 Connectivity Probe Workflow\n")
		b.WriteString("1) Validate the configuration first\n")
		b.WriteString("Run: `validate_config`\n\n")
		b.WriteString("2) Resolve and inspect the masked url\n")
		b.WriteString("```json\n{\n  \"for_sync\": false\n}\n```\nRun: `resolve_url`\n\n")
		b.WriteString("3) Probe (approval required outside development/test)\n")
		b.WriteString("```json\n{\n  \"approval_token\": \"<token>\"\n}\n```\nRun: `check_connectivity`\n\n")
		b.WriteString("Notes:\n- Obtain a token with `request_probe_token` for staging/production.\n- Probe results are cached briefly; re-run after config changes.\n")
		messages := []*mcp.PromptMessage{
			{Role: mcp.Role("system"), Content: &mcp.TextContent{Text: "You are a concise database operations assistant. Provide step-by-step guidance."}},
			{Role: mcp.Role("assistant"), Content: &mcp.TextContent{Text: b.String()}},
		}
		return &mcp.GetPromptResult{Description: "Connectivity probe workflow", Messages: messages}, nil
	}
}
