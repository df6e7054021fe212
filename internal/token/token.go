// Package token defines the terminal vocabulary shared by the lexer, the
// CST, and the parser. Tokenization itself is treated as an
// external oracle: this package only fixes the Kind enum and the Token
// shape a stream of tokens takes, not byte-level scanning rules.
package token

import "github.com/stjude-rust-labs/wdlcore/internal/span"

// Kind classifies one token (or, reused by the CST, one tree node).
type Kind int

const (
	Error Kind = iota
	EOF
	Whitespace
	Comment

	// Literals and identifiers.
	Ident
	IntLiteral
	FloatLiteral
	BooleanLiteral
	StringStart // opening quote/heredoc delimiter
	StringText  // literal text run inside a string/command
	StringEnd   // closing quote/heredoc delimiter
	PlaceholderStart // `~{` or `${`
	PlaceholderEnd   // `}`
	HeredocOpen  // `<<<`
	HeredocClose // `>>>`

	// Punctuation.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Colon
	Dot
	Question
	Plus
	Minus
	Star
	StarStar
	Slash
	Percent
	Equal
	EqualEqual
	BangEqual
	Bang
	Less
	LessEqual
	Greater
	GreaterEqual
	AmpAmp
	PipePipe

	// Keywords.
	KwVersion
	KwImport
	KwAs
	KwAlias
	KwStruct
	KwTask
	KwWorkflow
	KwInput
	KwOutput
	KwCommand
	KwRuntime
	KwMeta
	KwParameterMeta
	KwHints
	KwCall
	KwScatter
	KwIf
	KwThen
	KwElse
	KwIn
	KwAfter
	KwNone
	KwObject

	// Primitive type keywords.
	KwBoolean
	KwInt
	KwFloat
	KwString
	KwFile
	KwDirectory
	KwArray
	KwMap
	KwPair
)

var names = map[Kind]string{
	Error: "Error", EOF: "EOF", Whitespace: "Whitespace", Comment: "Comment",
	Ident: "Ident", IntLiteral: "IntLiteral", FloatLiteral: "FloatLiteral", BooleanLiteral: "BooleanLiteral",
	StringStart: "StringStart", StringText: "StringText", StringEnd: "StringEnd",
	PlaceholderStart: "PlaceholderStart", PlaceholderEnd: "PlaceholderEnd",
	HeredocOpen: "<<<", HeredocClose: ">>>",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
	Comma: ",", Colon: ":", Dot: ".", Question: "?",
	Plus: "+", Minus: "-", Star: "*", StarStar: "**", Slash: "/", Percent: "%",
	Equal: "=", EqualEqual: "==", BangEqual: "!=", Bang: "!",
	Less: "<", LessEqual: "<=", Greater: ">", GreaterEqual: ">=",
	AmpAmp: "&&", PipePipe: "||",
	KwVersion: "version", KwImport: "import", KwAs: "as", KwAlias: "alias",
	KwStruct: "struct", KwTask: "task", KwWorkflow: "workflow",
	KwInput: "input", KwOutput: "output", KwCommand: "command", KwRuntime: "runtime",
	KwMeta: "meta", KwParameterMeta: "parameter_meta", KwHints: "hints",
	KwCall: "call", KwScatter: "scatter", KwIf: "if", KwThen: "then", KwElse: "else",
	KwIn: "in", KwAfter: "after", KwNone: "None", KwObject: "object",
	KwBoolean: "Boolean", KwInt: "Int", KwFloat: "Float", KwString: "String",
	KwFile: "File", KwDirectory: "Directory", KwArray: "Array", KwMap: "Map", KwPair: "Pair",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "Unknown"
}

// Keywords maps identifier text to its keyword Kind, for the lexer and
// for the parser's contextual-keyword checks.
var Keywords = map[string]Kind{
	"version": KwVersion, "import": KwImport, "as": KwAs, "alias": KwAlias,
	"struct": KwStruct, "task": KwTask, "workflow": KwWorkflow,
	"input": KwInput, "output": KwOutput, "command": KwCommand, "runtime": KwRuntime,
	"meta": KwMeta, "parameter_meta": KwParameterMeta, "hints": KwHints,
	"call": KwCall, "scatter": KwScatter, "if": KwIf, "then": KwThen, "else": KwElse,
	"in": KwIn, "after": KwAfter, "None": KwNone, "object": KwObject,
	"Boolean": KwBoolean, "Int": KwInt, "Float": KwFloat, "String": KwString,
	"File": KwFile, "Directory": KwDirectory, "Array": KwArray, "Map": KwMap, "Pair": KwPair,
	"true": BooleanLiteral, "false": BooleanLiteral,
}

// Token is one lexed terminal: its kind, its byte span, and (for
// literals/identifiers/string text) the source text it covers.
type Token struct {
	Kind Kind
	Span span.Span
	Text string
}

// IsTrivia reports whether the token is whitespace or a comment — carried
// by the CST for losslessness but skipped by the parser's lookahead.
func (t Token) IsTrivia() bool { return t.Kind == Whitespace || t.Kind == Comment }
