// Package cparse implements the Parser/Unparser pair for the restricted
// C grammar of §3: function definitions, scalar/array declarations,
// assignments, if/else, while, return, and the four recognized calls
// (Lap/assume/assert/havoc).
//
// Grounded on docscribe's frontmatter scanner for the overall shape of
// a hand-rolled, line/column-tracking scanner (docscribe/frontmatter.go
// pulls a delimited header out of a document body; this scanner pulls
// tokens out of a source file), generalized from a single delimiter
// search into a full tokenizer since a source file has far more lexical
// structure than a frontmatter block. There is no C parser anywhere in
// the retrieval pack — the original tool delegates lexing/parsing
// entirely to pycparser plus a real C preprocessor, which this Go port
// deliberately replaces with a small reference implementation so
// cmd/shadowdp runs standalone (see SPEC_FULL.md §6.1/§6.2).
package cparse

import "fmt"

type TokenKind int

const (
	TokEOF TokenKind = iota
	TokIdent
	TokInt
	TokFloat
	TokString
	TokPunct
	TokKeyword
)

// Token is one lexical unit with its source coordinate.
type Token struct {
	Kind TokenKind
	Text string
	Line int
	Col  int
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%d %q", t.Line, t.Col, t.Text)
}

var keywords = map[string]bool{
	"int": true, "float": true, "void": true,
	"if": true, "else": true, "while": true, "return": true,
}
