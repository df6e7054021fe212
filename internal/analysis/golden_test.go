package analysis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/stjude-rust-labs/wdlcore/internal/analysis"
	"github.com/stjude-rust-labs/wdlcore/internal/pipeline"
)

// txtarImporter resolves an `import "name.wdl"` URI to the analysis
// result of the like-named file packed into the same txtar archive,
// analyzing it (and transitively anything it imports) on first
// reference and caching the result by URI. It stands in for the
// document-graph oracle the analyzer treats as external; the golden
// fixtures key that oracle off a txtar archive instead of a real
// filesystem/URI resolver.
type txtarImporter struct {
	files map[string]string
	cache map[string]*analysis.Result
}

func newTxtarImporter(files map[string]string) *txtarImporter {
	return &txtarImporter{files: files, cache: map[string]*analysis.Result{}}
}

func (im *txtarImporter) Resolve(uri string) (*analysis.Result, bool) {
	if res, ok := im.cache[uri]; ok {
		return res, true
	}
	src, ok := im.files[uri]
	if !ok {
		return nil, false
	}
	ctx := pipeline.NewContext(uri, src)
	ctx = pipeline.New(pipeline.DetectVersion, pipeline.Parse, pipeline.Analyze(im)).Run(ctx)
	im.cache[uri] = ctx.Analysis
	return ctx.Analysis, ctx.Analysis != nil
}

// loadArchive reads a txtar golden fixture and returns its files keyed
// by the name each was packed under (e.g. "main.wdl", "lib.wdl").
func loadArchive(t *testing.T, name string) map[string]string {
	t.Helper()
	path := filepath.Join("testdata", "golden", name)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	ar := txtar.Parse(data)
	files := make(map[string]string, len(ar.Files))
	for _, f := range ar.Files {
		files[f.Name] = string(f.Data)
	}
	return files
}

func analyzeMain(t *testing.T, files map[string]string) *analysis.Result {
	t.Helper()
	im := newTxtarImporter(files)
	res, ok := im.Resolve("main.wdl")
	require.True(t, ok)
	return res
}

// A call that leaves a required input unspecified, with the callee
// declared in a separately-imported document, reports the missing-input
// diagnostic against the importing document.
func TestGoldenMissingRequiredInputAcrossImport(t *testing.T) {
	files := loadArchive(t, "nested_inputs_missing.txtar")
	res := analyzeMain(t, files)
	var codes []string
	for _, d := range res.Diags.All() {
		codes = append(codes, d.Code)
	}
	assert.Contains(t, codes, "T133")
}

// A struct defined in one document, returned as a task output, and
// accessed through a call statement in an importing document resolves
// its member types across the import boundary with no diagnostics.
func TestGoldenStructOutputAcrossImport(t *testing.T) {
	files := loadArchive(t, "struct_cross_document.txtar")
	res := analyzeMain(t, files)
	assert.Empty(t, res.Diags.All())
}
