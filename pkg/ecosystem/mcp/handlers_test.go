package mcp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/vouchlabs/vouch/pkg/target"
)

type greeter struct{}

func (g greeter) Hello(name string) (string, error) {
	if name == "" {
		return "", errEmptyName
	}
	return "hello " + name, nil
}

var errEmptyName = errors.New("empty name")

func init() {
	target.Register(target.MustDefine("Greeter", greeter{}))
	target.RegisterError("EmptyName", errEmptyName)
}

func writeDoc(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const greeterDoc = `name: greeter
suite:
  target: Greeter
  method: Hello
scenarios:
  - name: greets by name
    args: [world]
    expect:
      return: hello world
  - name: empty name raises
    args: [""]
    expect:
      dies: true
      throws: EmptyName
`

func TestHandleValidateMissingPath(t *testing.T) {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{}

	result, err := HandleValidate(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("expected error for missing path")
	}
}

func TestHandleValidateGoodDocument(t *testing.T) {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"path": writeDoc(t, greeterDoc)}

	result, err := HandleValidate(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatalf("expected success, got %v", result.Content)
	}
	text := contentText(t, result)
	if !strings.Contains(text, "greeter is valid (2 scenarios)") {
		t.Errorf("unexpected text: %s", text)
	}
}

func TestHandleValidateBadDocument(t *testing.T) {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"path": writeDoc(t, "name: d\nscenarios:\n  - name: s\n    expect: {}\n"),
	}

	result, err := HandleValidate(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("expected error for invalid document")
	}
}

func TestHandleRun(t *testing.T) {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"path": writeDoc(t, greeterDoc)}

	result, err := HandleRun(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatalf("expected all checks to pass, got %s", contentText(t, result))
	}
	text := contentText(t, result)
	for _, want := range []string{`"batch": "greeter"`, "greets by name", "empty name raises"} {
		if !strings.Contains(text, want) {
			t.Errorf("response missing %q:\n%s", want, text)
		}
	}
}

func TestHandleRunReportsFailure(t *testing.T) {
	doc := strings.Replace(greeterDoc, "hello world", "goodbye world", 1)
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"path": writeDoc(t, doc)}

	result, err := HandleRun(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("expected IsError for failing checks")
	}
}

func TestHandleSchema(t *testing.T) {
	result, err := HandleSchema(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Error("expected success")
	}
	if !strings.Contains(contentText(t, result), "Vouch Scenario Document") {
		t.Error("expected schema content")
	}
}

func TestHandleTargets(t *testing.T) {
	result, err := HandleTargets(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(contentText(t, result), "Greeter") {
		t.Errorf("expected Greeter in target list, got %s", contentText(t, result))
	}
}

func contentText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("no content in result")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return tc.Text
}
