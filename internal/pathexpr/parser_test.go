package pathexpr_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-docmeta/internal/pathexpr"
)

func TestParse_StepShapes(t *testing.T) {
	expr, err := pathexpr.Parse("commands[0].name")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	want := pathexpr.Expression{
		{Kind: pathexpr.StepProperty, Name: "commands"},
		{Kind: pathexpr.StepIndex, Index: 0},
		{Kind: pathexpr.StepProperty, Name: "name"},
	}
	if len(expr) != len(want) {
		t.Fatalf("expected %d steps, got %d (%v)", len(want), len(expr), expr)
	}
	for i := range want {
		if expr[i] != want[i] {
			t.Fatalf("step %d: expected %+v, got %+v", i, want[i], expr[i])
		}
	}
}

func TestParse_MultipleBracketsPerSegment(t *testing.T) {
	expr, err := pathexpr.Parse("matrix[0][12].cell")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(expr) != 4 {
		t.Fatalf("expected 4 steps, got %d (%v)", len(expr), expr)
	}
	if expr[1].Kind != pathexpr.StepIndex || expr[1].Index != 0 {
		t.Fatalf("expected index 0, got %+v", expr[1])
	}
	if expr[2].Kind != pathexpr.StepIndex || expr[2].Index != 12 {
		t.Fatalf("expected index 12, got %+v", expr[2])
	}
}

func TestParse_IdentifierCharacters(t *testing.T) {
	expr, err := pathexpr.Parse("$env._private.v2")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(expr) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(expr))
	}
	if expr[0].Name != "$env" || expr[1].Name != "_private" || expr[2].Name != "v2" {
		t.Fatalf("unexpected identifiers: %v", expr)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	for _, path := range []string{"", "   ", "\t\n"} {
		if _, err := pathexpr.Parse(path); !errors.Is(err, pathexpr.ErrEmptyPath) {
			t.Fatalf("path %q: expected ErrEmptyPath, got %v", path, err)
		}
	}
}

func TestParse_TrailingDotTolerated(t *testing.T) {
	expr, err := pathexpr.Parse("tools.commands.")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(expr) != 2 {
		t.Fatalf("expected trailing empty segment to be ignored, got %v", expr)
	}
}

func TestParse_InvalidPaths(t *testing.T) {
	cases := []struct {
		name string
		path string
	}{
		{"leading dot", ".commands"},
		{"consecutive dots", "tools..commands"},
		{"double trailing dots", "tools.."},
		{"bare dot", "."},
		{"negative index", "commands[-1]"},
		{"non numeric index", "commands[one]"},
		{"unterminated bracket", "commands[0"},
		{"bracket before identifier", "[0].name"},
		{"identifier starts with digit", "1commands"},
		{"space in identifier", "com mands"},
		{"empty brackets in strict mode", "commands[].name"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := pathexpr.Parse(tc.path); !errors.Is(err, pathexpr.ErrInvalidPath) {
				t.Fatalf("path %q: expected ErrInvalidPath, got %v", tc.path, err)
			}
		})
	}
}

func TestParseQuery_WildcardSteps(t *testing.T) {
	expr, err := pathexpr.ParseQuery("commands[].c1")
	if err != nil {
		t.Fatalf("ParseQuery returned error: %v", err)
	}

	if len(expr) != 3 {
		t.Fatalf("expected 3 steps, got %d (%v)", len(expr), expr)
	}
	if expr[0].Kind != pathexpr.StepProperty || expr[0].Name != "commands" {
		t.Fatalf("unexpected first step: %+v", expr[0])
	}
	if expr[1].Kind != pathexpr.StepWildcard {
		t.Fatalf("expected wildcard step, got %+v", expr[1])
	}
	if expr[2].Kind != pathexpr.StepProperty || expr[2].Name != "c1" {
		t.Fatalf("unexpected last step: %+v", expr[2])
	}
	if !expr.HasWildcard() {
		t.Fatalf("expected HasWildcard to report true")
	}
}

func TestParseQuery_StillRejectsMalformedBrackets(t *testing.T) {
	for _, path := range []string{"commands[-2]", "commands[x]", "commands["} {
		if _, err := pathexpr.ParseQuery(path); !errors.Is(err, pathexpr.ErrInvalidPath) {
			t.Fatalf("path %q: expected ErrInvalidPath, got %v", path, err)
		}
	}
}

func TestExpressionString_RoundTrips(t *testing.T) {
	for _, path := range []string{"commands[0].name", "registry.tools.commands", "matrix[1][2]"} {
		expr, err := pathexpr.Parse(path)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", path, err)
		}
		if got := expr.String(); got != path {
			t.Fatalf("expected %q to round-trip, got %q", path, got)
		}
	}

	query, err := pathexpr.ParseQuery("commands[].c1")
	if err != nil {
		t.Fatalf("ParseQuery returned error: %v", err)
	}
	if got := query.String(); got != "commands[].c1" {
		t.Fatalf("expected wildcard round-trip, got %q", got)
	}
}
