package mcp

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"rubyfactor/pkg/config"
)

// dial starts the MCP server in-process and returns an initialized
// client session.
func dial(t *testing.T, root string) *client.Client {
	t.Helper()

	logger := charmlog.NewWithOptions(io.Discard, charmlog.Options{})
	s := NewServer(root, config.Default(), logger)

	c, err := client.NewInProcessClient(s)
	if err != nil {
		t.Fatalf("NewInProcessClient failed: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	if err := c.Start(ctx); err != nil {
		t.Fatalf("client start failed: %v", err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "test-client", Version: "1.0"}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	return c
}

func callTool(t *testing.T, c *client.Client, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := c.CallTool(context.Background(), req)
	if err != nil {
		t.Fatalf("CallTool %s failed: %v", name, err)
	}
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("Expected content in tool result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Expected text content, got %T", res.Content[0])
	}
	return tc.Text
}

func TestExtractLetTool(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "widget_spec.rb")
	content := "describe Widget do\n  it 'works' do\n    a = Widget.new\n  end\nend\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c := dial(t, root)
	res := callTool(t, c, "extract_let", map[string]any{
		"file":  "widget_spec.rb",
		"point": strings.Index(content, "a = Widget.new"),
	})
	if res.IsError {
		t.Fatalf("Expected success, got error: %v", res.Content)
	}

	var out EditResult
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatalf("Expected JSON result: %v", err)
	}
	if !out.Success || out.VariableName != "a" {
		t.Errorf("Expected successful extraction of 'a', got %+v", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "let(:a){ Widget.new }") {
		t.Errorf("Expected let binding written to file, got:\n%s", data)
	}
}

func TestExtractLetTool_MissingFile(t *testing.T) {
	c := dial(t, t.TempDir())
	res := callTool(t, c, "extract_let", map[string]any{
		"file":  "nope_spec.rb",
		"point": 0,
	})
	if !res.IsError {
		t.Error("Expected error result for missing file")
	}
}

func TestAddParameterTool(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "worker.rb")
	if err := os.WriteFile(path, []byte("def process(items)\n  items.map(&:to_s)\nend\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := dial(t, root)
	res := callTool(t, c, "add_parameter", map[string]any{
		"file":      "worker.rb",
		"line":      2,
		"parameter": "filter",
	})
	if res.IsError {
		t.Fatalf("Expected success, got error: %v", res.Content)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "def process(items, filter)") {
		t.Errorf("Expected new parameter in file, got:\n%s", data)
	}
}

func TestShowAnchorsTool(t *testing.T) {
	root := t.TempDir()
	content := "describe Widget do\n  context 'when empty' do\n    it 'works' do\n    end\n  end\nend\n"
	if err := os.WriteFile(filepath.Join(root, "widget_spec.rb"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c := dial(t, root)
	res := callTool(t, c, "show_anchors", map[string]any{"file": "widget_spec.rb"})
	if res.IsError {
		t.Fatalf("Expected success, got error: %v", res.Content)
	}

	var out struct {
		Anchors []anchorEntry `json:"anchors"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatalf("Expected JSON result: %v", err)
	}
	if len(out.Anchors) != 2 {
		t.Fatalf("Expected 2 anchors, got %d", len(out.Anchors))
	}
	if out.Anchors[0].Line != 1 || out.Anchors[1].Line != 2 {
		t.Errorf("Expected anchors on lines 1 and 2, got %+v", out.Anchors)
	}
}
