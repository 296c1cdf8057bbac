package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens(t *testing.T) {
	tokens, err := Tokens("test", OpenTag+"\nif ($o->x !== 'a') { f($m[0]); } // done")
	require.NoError(t, err)

	var kinds, values []string
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
		values = append(values, tok.Value)
	}
	assert.Equal(t, []string{
		"OpenTag", "Ident", "Punct", "Variable", "Operator", "Ident", "Operator", "SQString", "Punct",
		"Punct", "Ident", "Punct", "Variable", "Punct", "Int", "Punct", "Punct", "Punct", "Punct", "Comment",
	}, kinds)
	assert.Equal(t, []string{
		"<?php", "if", "(", "$o", "->", "x", "!==", "'a'", ")",
		"{", "f", "(", "$m", "[", "0", "]", ")", ";", "}", "// done",
	}, values)

	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 2, tokens[1].Line)
	assert.Equal(t, 1, tokens[1].Column)
}

func TestTokensError(t *testing.T) {
	_, err := Tokens("test", OpenTag+"\n$a = @;")
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Pos.Line)
}
