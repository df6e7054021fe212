package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stjude-rust-labs/wdlcore/internal/config"
	"github.com/stjude-rust-labs/wdlcore/internal/cst"
)

func parseDoc(t *testing.T, src string) (*cst.Node, *Parser) {
	t.Helper()
	p := New(src, config.V1_2)
	tree := p.ParseDocument()
	require.NotNil(t, tree)
	return tree, p
}

func TestParseMinimalDocument(t *testing.T) {
	tree, p := parseDoc(t, `version 1.2

task greet {
  input {
    String name
  }
  command <<<
    echo "hello ~{name}"
  >>>
  output {
    String out = read_string(stdout())
  }
}
`)
	assert.Empty(t, p.Diags.All())
	assert.Equal(t, cst.Document, tree.Kind)
	tasks := tree.ChildNodes(cst.TaskDefinition)
	require.Len(t, tasks, 1)

	cmd, ok := tasks[0].FirstChildNode(cst.CommandSection)
	require.True(t, ok)
	placeholders := 0
	for _, c := range cmd.Children {
		if n, ok := c.(*cst.Node); ok && n.Kind == cst.PlaceholderExpr {
			placeholders++
		}
	}
	assert.Equal(t, 1, placeholders)
}

func TestParseBraceCommandWithPlaceholderCall(t *testing.T) {
	tree, p := parseDoc(t, `version 1.1

task t {
  command {
    echo ~{sep(",", ["a","b"])}
  }
}
`)
	assert.Empty(t, p.Diags.All())
	tasks := tree.ChildNodes(cst.TaskDefinition)
	require.Len(t, tasks, 1)
	_, ok := tasks[0].FirstChildNode(cst.CommandSection)
	assert.True(t, ok)
}

func TestParseStructAndWorkflowWithScatterAndCall(t *testing.T) {
	tree, p := parseDoc(t, `version 1.2

struct Sample {
  String name
  Int depth
}

task process {
  input {
    String name
  }
  command <<< echo ~{name} >>>
  output {
    String result = "done"
  }
}

workflow main {
  input {
    Array[String] names
  }
  scatter (n in names) {
    call process { input: name = n }
  }
  output {
    Array[String] results = process.result
  }
}
`)
	assert.Empty(t, p.Diags.All())
	require.Len(t, tree.ChildNodes(cst.StructDefinition), 1)
	require.Len(t, tree.ChildNodes(cst.TaskDefinition), 1)
	wfs := tree.ChildNodes(cst.WorkflowDefinition)
	require.Len(t, wfs, 1)

	scatters := wfs[0].ChildNodes(cst.ScatterStatement)
	require.Len(t, scatters, 1)
	calls := scatters[0].ChildNodes(cst.CallStatement)
	require.Len(t, calls, 1)
}

func TestParseMetaAndHintsSections(t *testing.T) {
	tree, p := parseDoc(t, `version 1.2

workflow w {
  meta {
    description: "a workflow"
  }
  hints {
    allow_nested_inputs: true
  }
}
`)
	assert.Empty(t, p.Diags.All())
	wfs := tree.ChildNodes(cst.WorkflowDefinition)
	require.Len(t, wfs, 1)
	_, ok := wfs[0].FirstChildNode(cst.MetaSection)
	assert.True(t, ok)
	_, ok = wfs[0].FirstChildNode(cst.HintsSection)
	assert.True(t, ok)
}

// An interpolated string splits into alternating literal runs and
// placeholders: leading text, the `~{name}` placeholder, trailing text.
func TestParseInterpolatedStringParts(t *testing.T) {
	p := New(`"hello, ~{name}!"`, config.V1_2)
	n := p.ParseExpr()
	require.Equal(t, cst.StringLiteralExpr, n.Kind)
	require.Len(t, n.Children, 3)

	first, ok := n.Children[0].(cst.Token)
	require.True(t, ok)
	assert.Equal(t, `"hello, `, first.Text)

	ph, ok := n.Children[1].(*cst.Node)
	require.True(t, ok)
	assert.Equal(t, cst.PlaceholderExpr, ph.Kind)
	ref, ok := ph.FirstChildNode(cst.NameRefExpr)
	require.True(t, ok)
	assert.Equal(t, "name", ref.Text(`"hello, ~{name}!"`))

	last, ok := n.Children[2].(cst.Token)
	require.True(t, ok)
	assert.Equal(t, `!"`, last.Text)
}

// `${` opens a placeholder in double quotes but stays literal text in
// single quotes.
func TestParseDollarPlaceholderOnlyInDoubleQuotes(t *testing.T) {
	p := New(`"${name}"`, config.V1_2)
	n := p.ParseExpr()
	require.Equal(t, cst.StringLiteralExpr, n.Kind)
	_, ok := n.FirstChildNode(cst.PlaceholderExpr)
	assert.True(t, ok)

	p = New(`'${name}'`, config.V1_2)
	n = p.ParseExpr()
	require.Equal(t, cst.StringLiteralExpr, n.Kind)
	_, ok = n.FirstChildNode(cst.PlaceholderExpr)
	assert.False(t, ok)
}

func TestParseImportWithAliases(t *testing.T) {
	tree, p := parseDoc(t, `version 1.1

import "other.wdl" as lib
  alias Foo as Bar
`)
	assert.Empty(t, p.Diags.All())
	imports := tree.ChildNodes(cst.ImportStatement)
	require.Len(t, imports, 1)
}
