package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typec-go/tcheck/internal/token"
)

func TestAllEmitsKeywordsIdentsAndEOF(t *testing.T) {
	toks := All("let x = 1;", "<test>")
	var kinds []token.Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.LET, token.IDENT, token.ASSIGN, token.INT_LITERAL, token.SEMICOLON, token.EOF,
	}, kinds)
}

func TestAllRecognizesUnderscoreAsWildcard(t *testing.T) {
	toks := All("_", "<test>")
	require.Len(t, toks, 2) // wildcard + EOF
	assert.Equal(t, token.WILDCARD, toks[0].Kind)
}

func TestStringLiteralUnescapesBody(t *testing.T) {
	toks := All(`"hi\nthere"`, "<test>")
	require.NotEmpty(t, toks)
	assert.Equal(t, token.STRING_LITERAL, toks[0].Kind)
	assert.Equal(t, "hi\nthere", toks[0].Literal)
}

func TestLineCommentIsSkippedAsTrivia(t *testing.T) {
	toks := All("// a comment\nlet x = 1;", "<test>")
	assert.Equal(t, token.LET, toks[0].Kind)
}

func TestPlainBlockCommentIsSkippedWithoutDoc(t *testing.T) {
	toks := All("/* not a doc */ let x = 1;", "<test>")
	assert.Equal(t, token.LET, toks[0].Kind)
	assert.Nil(t, toks[0].Doc)
}

func TestDocCommentAttachesToNextToken(t *testing.T) {
	src := `/**
 * @brief Adds two numbers.
 * @param a the first operand
 * @param b the second operand
 * a trailing note
 */
fn add(a: i64, b: i64) -> i64 {
	return a + b;
}
`
	toks := All(src, "<test>")
	require.NotEmpty(t, toks)
	require.Equal(t, token.FN, toks[0].Kind)
	require.NotNil(t, toks[0].Doc)
	assert.Equal(t, "Adds two numbers.", toks[0].Doc.Brief)
	assert.Equal(t, "the first operand", toks[0].Doc.Params["a"])
	assert.Equal(t, "the second operand", toks[0].Doc.Params["b"])
	assert.Contains(t, toks[0].Doc.ExtraComments, "a trailing note")
}

func TestDocCommentPropTagsParsed(t *testing.T) {
	src := `/**
 * @prop name the user's display name
 */
class User {
}
`
	toks := All(src, "<test>")
	require.NotEmpty(t, toks)
	require.Equal(t, token.CLASS, toks[0].Kind)
	require.NotNil(t, toks[0].Doc)
	assert.Equal(t, "the user's display name", toks[0].Doc.Props["name"])
}

func TestHexAndOctAndBinaryIntLiterals(t *testing.T) {
	toks := All("0xFF", "<test>")
	require.NotEmpty(t, toks)
	assert.Equal(t, token.HEX_INT_LITERAL, toks[0].Kind)

	toks = All("0o17", "<test>")
	require.NotEmpty(t, toks)
	assert.Equal(t, token.OCT_INT_LITERAL, toks[0].Kind)

	toks = All("0b101", "<test>")
	require.NotEmpty(t, toks)
	assert.Equal(t, token.BINARY_INT_LITERAL, toks[0].Kind)
}
