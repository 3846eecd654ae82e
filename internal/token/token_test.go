package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordsMapsEverySurfaceKeywordToItsKind(t *testing.T) {
	cases := map[string]Kind{
		"class": CLASS, "fn": FN, "let": LET, "const": CONST, "match": MATCH,
		"foreach": FOREACH, "return": RETURN, "unreachable": UNREACHABLE,
		"namespace": NAMESPACE, "import": IMPORT, "is": IS, "true": TRUE,
		"false": FALSE, "null": NULL, "i64": I64, "u8": U8, "f64": F64,
	}
	for kw, want := range cases {
		got, ok := Keywords[kw]
		assert.True(t, ok, "missing keyword %q", kw)
		assert.Equal(t, want, got, "keyword %q", kw)
	}
}

func TestKeywordsDoesNotClaimOrdinaryIdentifiers(t *testing.T) {
	for _, name := range []string{"x", "foo", "Bar", "myVariable"} {
		_, ok := Keywords[name]
		assert.False(t, ok, "%q should not be a keyword", name)
	}
}

func TestTokenStringUsesKnownKindName(t *testing.T) {
	tok := Token{Kind: STRING_LITERAL, Literal: "hi"}
	assert.Equal(t, `string_literal("hi")`, tok.String())
}

func TestTokenStringFallsBackToNumericKindWhenUnnamed(t *testing.T) {
	tok := Token{Kind: PLUS, Literal: "+"}
	assert.Contains(t, tok.String(), "+")
}

func TestPosStringFormatsFileLineColumn(t *testing.T) {
	p := Pos{File: "a.tc", Line: 3, Column: 7}
	assert.Equal(t, "a.tc:3:7", p.String())
}
