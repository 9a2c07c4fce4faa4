package mcp

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"rubyfactor/pkg/types"
)

// EditResult is the structured output returned by mutating tools.
type EditResult struct {
	Description  string `json:"description"`
	File         string `json:"file"`
	VariableName string `json:"variable_name,omitempty"`
	NoOp         bool   `json:"no_op"`
	Success      bool   `json:"success"`
}

func editResult(file string, res *types.Result) *mcp.CallToolResult {
	return jsonResult(&EditResult{
		Description:  res.Description,
		File:         file,
		VariableName: res.VariableName,
		NoOp:         res.NoOp,
		Success:      true,
	})
}

// jsonResult marshals v and wraps it in a single text content block.
func jsonResult(v any) *mcp.CallToolResult {
	b, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(b))
}
