package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"rubyfactor/pkg/types"
)

// addParameterTool adds the add_parameter tool to the MCP server.
func addParameterTool(s *server.MCPServer, state *Server) {
	tool := mcp.NewTool("add_parameter",
		mcp.WithDescription("Append a parameter to the method definition enclosing a given line. Adding an already-present parameter is a no-op."),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Path to the source file"),
		),
		mcp.WithNumber("line",
			mcp.Required(),
			mcp.Description("A line inside the method body (1-based)"),
		),
		mcp.WithString("parameter",
			mcp.Required(),
			mcp.Description("Name of the parameter to add"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		file, ok := args["file"].(string)
		if !ok {
			return mcp.NewToolResultError("file is required"), nil
		}
		line, ok := args["line"].(float64)
		if !ok {
			return mcp.NewToolResultError("line is required"), nil
		}
		parameter, ok := args["parameter"].(string)
		if !ok {
			return mcp.NewToolResultError("parameter is required"), nil
		}

		state.mu.Lock()
		defer state.mu.Unlock()

		path := state.resolveFile(file)
		doc, err := state.engine.Open(path)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error opening file: %v", err)), nil
		}
		res, err := state.engine.AddParameter(doc, types.AddParameterRequest{
			Line:      int(line),
			Parameter: parameter,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error adding parameter: %v", err)), nil
		}
		if !res.NoOp {
			if err := state.engine.Save(doc); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Error saving file: %v", err)), nil
			}
		}
		state.logger.Info("add_parameter", "file", path, "parameter", parameter, "no_op", res.NoOp)
		return editResult(path, res), nil
	})
}
