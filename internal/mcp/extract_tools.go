package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"rubyfactor/pkg/types"
)

// addExtractLetTool adds the extract_let tool to the MCP server.
func addExtractLetTool(s *server.MCPServer, state *Server) {
	tool := mcp.NewTool("extract_let",
		mcp.WithDescription("Extract an assignment into a let binding placed after the nearest anchor line (describe/context). With a region, the whole region becomes a let block."),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Path to the spec file (absolute or relative to the workspace root)"),
		),
		mcp.WithNumber("point",
			mcp.Description("Byte offset of the cursor; the enclosing line is extracted"),
		),
		mcp.WithNumber("region_start",
			mcp.Description("Byte offset where the region begins (overrides point)"),
		),
		mcp.WithNumber("region_end",
			mcp.Description("Byte offset where the region ends"),
		),
		mcp.WithBoolean("invert",
			mcp.Description("Use the opposite of the configured placement mode"),
			mcp.DefaultBool(false),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		file, ok := args["file"].(string)
		if !ok {
			return mcp.NewToolResultError("file is required"), nil
		}

		req := types.ExtractLetRequest{}
		if v, ok := args["point"].(float64); ok {
			req.Point = int(v)
		}
		if start, ok := args["region_start"].(float64); ok {
			end, ok := args["region_end"].(float64)
			if !ok {
				return mcp.NewToolResultError("region_end is required with region_start"), nil
			}
			req.Span = types.Span{Start: int(start), End: int(end)}
			req.HasRegion = true
		}
		if v, ok := args["invert"].(bool); ok {
			req.Invert = v
		}

		state.mu.Lock()
		defer state.mu.Unlock()

		path := state.resolveFile(file)
		doc, err := state.engine.Open(path)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error opening file: %v", err)), nil
		}
		res, err := state.engine.ExtractLet(doc, req)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error extracting let: %v", err)), nil
		}
		if !res.NoOp {
			if err := state.engine.Save(doc); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Error saving file: %v", err)), nil
			}
		}
		state.logger.Info("extract_let", "file", path, "variable", res.VariableName, "no_op", res.NoOp)
		return editResult(path, res), nil
	})
}

// addExtractMethodTool adds the extract_method tool to the MCP server.
func addExtractMethodTool(s *server.MCPServer, state *Server) {
	tool := mcp.NewTool("extract_method",
		mcp.WithDescription("Extract a range of lines into a new method inserted above the enclosing definition. The lines are replaced by a call."),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Path to the source file"),
		),
		mcp.WithNumber("start_line",
			mcp.Required(),
			mcp.Description("First line of the block to extract (1-based)"),
		),
		mcp.WithNumber("end_line",
			mcp.Required(),
			mcp.Description("Last line of the block to extract"),
		),
		mcp.WithString("new_method_name",
			mcp.Required(),
			mcp.Description("Name for the new method"),
		),
		mcp.WithString("arguments",
			mcp.Description("Comma-separated argument list for the new method"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		file, ok := args["file"].(string)
		if !ok {
			return mcp.NewToolResultError("file is required"), nil
		}
		startLine, ok := args["start_line"].(float64)
		if !ok {
			return mcp.NewToolResultError("start_line is required"), nil
		}
		endLine, ok := args["end_line"].(float64)
		if !ok {
			return mcp.NewToolResultError("end_line is required"), nil
		}
		name, ok := args["new_method_name"].(string)
		if !ok {
			return mcp.NewToolResultError("new_method_name is required"), nil
		}
		arguments, _ := args["arguments"].(string)

		state.mu.Lock()
		defer state.mu.Unlock()

		path := state.resolveFile(file)
		doc, err := state.engine.Open(path)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error opening file: %v", err)), nil
		}
		res, err := state.engine.ExtractMethod(doc, types.ExtractMethodRequest{
			StartLine:     int(startLine),
			EndLine:       int(endLine),
			NewMethodName: name,
			Arguments:     arguments,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error extracting method: %v", err)), nil
		}
		if err := state.engine.Save(doc); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error saving file: %v", err)), nil
		}
		state.logger.Info("extract_method", "file", path, "method", name)
		return editResult(path, res), nil
	})
}
