package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// anchorEntry describes one line a let binding could be placed after.
type anchorEntry struct {
	Line int    `json:"line"`
	Text string `json:"text"`
}

// addShowAnchorsTool adds the read-only show_anchors tool, listing the
// lines of a file matching the configured anchor pattern.
func addShowAnchorsTool(s *server.MCPServer, state *Server) {
	tool := mcp.NewTool("show_anchors",
		mcp.WithDescription("List the anchor lines (describe/context by default) of a file. New let bindings are placed after the anchor chosen by the placement mode."),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Path to the spec file"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		file, ok := args["file"].(string)
		if !ok {
			return mcp.NewToolResultError("file is required"), nil
		}

		path := state.resolveFile(file)
		doc, err := state.engine.Open(path)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error opening file: %v", err)), nil
		}

		anchorRe := state.engine.Config().AnchorPattern
		anchors := []anchorEntry{}
		for i, line := range doc.Buffer.Lines() {
			if anchorRe.MatchString(line) {
				anchors = append(anchors, anchorEntry{Line: i + 1, Text: strings.TrimSpace(line)})
			}
		}
		return jsonResult(map[string]any{
			"file":    path,
			"anchors": anchors,
		}), nil
	})
}

// addConfigResource exposes the effective configuration as a resource.
func addConfigResource(s *server.MCPServer, state *Server) {
	resource := mcp.NewResource("rubyfactor://config",
		"Effective Configuration",
		mcp.WithResourceDescription("The refactoring settings currently in effect"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		cfg := state.engine.Config()
		data, err := json.MarshalIndent(map[string]any{
			"add_parens":     cfg.AddParens,
			"trim_pattern":   cfg.TrimPattern.String(),
			"anchor_pattern": cfg.AnchorPattern.String(),
			"placement_mode": string(cfg.PlacementMode),
			"workspace":      state.root,
		}, "", "  ")
		if err != nil {
			return nil, err
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "rubyfactor://config",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
