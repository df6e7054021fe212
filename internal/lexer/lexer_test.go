package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stjude-rust-labs/wdlcore/internal/token"
)

func TestTokenizeKeywordsAndPunctuation(t *testing.T) {
	toks := StripTrivia(Tokenize(`version 1.2
task foo {
  input {
    Int x = 1 + 2
  }
}`))
	require.NotEmpty(t, toks)
	assert.Equal(t, token.KwVersion, toks[0].Kind)
	assert.Equal(t, token.FloatLiteral, toks[1].Kind)
	assert.Equal(t, "1.2", toks[1].Text)
	assert.Equal(t, token.KwTask, toks[2].Kind)
}

func TestTokenizeFloatAndString(t *testing.T) {
	toks := StripTrivia(Tokenize(`1.2 "hello" 'world'`))
	require.Len(t, toks, 4) // float, string, string, EOF
	assert.Equal(t, token.FloatLiteral, toks[0].Kind)
	assert.Equal(t, token.StringText, toks[1].Kind)
	assert.Equal(t, `"hello"`, toks[1].Text)
	assert.Equal(t, token.StringText, toks[2].Kind)
}

func TestTokenizeOperators(t *testing.T) {
	toks := StripTrivia(Tokenize(`a == b != c && d || e`))
	kinds := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Contains(t, kinds, token.EqualEqual)
	assert.Contains(t, kinds, token.BangEqual)
	assert.Contains(t, kinds, token.AmpAmp)
	assert.Contains(t, kinds, token.PipePipe)
}
