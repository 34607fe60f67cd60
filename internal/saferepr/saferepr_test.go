package saferepr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepr_Primitives(t *testing.T) {
	assert.Equal(t, "None", Repr(nil))
	assert.Equal(t, "True", Repr(true))
	assert.Equal(t, "False", Repr(false))
	assert.Equal(t, "42", Repr(42))
	assert.Equal(t, "42", Repr(int64(42)))
	assert.Equal(t, "3.5", Repr(3.5))
}

func TestRepr_EscapesQuotesAndBackslashes(t *testing.T) {
	got := Repr(`foo'); os.system('rm -rf /')`)
	assert.Equal(t, `'foo\'); os.system(\'rm -rf /\')'`, got)
}

func TestRepr_EscapesControlCharacters(t *testing.T) {
	assert.Equal(t, `'line1\nline2'`, Repr("line1\nline2"))
	assert.Equal(t, `'a\tb'`, Repr("a\tb"))
	assert.Equal(t, `'a\rb'`, Repr("a\rb"))
}

func TestRepr_List(t *testing.T) {
	got := Repr([]any{1, "two", true, nil})
	assert.Equal(t, "[1, 'two', True, None]", got)
}

func TestRepr_StringSlice(t *testing.T) {
	got := Repr([]string{"a'b", "c"})
	assert.Equal(t, `['a\'b', 'c']`, got)
}

func TestRepr_DictIsSortedByKey(t *testing.T) {
	got := Repr(map[string]any{"z": 1, "a": 2, "m": "hi"})
	assert.Equal(t, `{'a': 2, 'm': 'hi', 'z': 1}`, got)
}

func TestRepr_NestedStructures(t *testing.T) {
	got := Repr(map[string]any{
		"points": []any{1.0, 2.0},
		"label":  "it's a test",
	})
	assert.Equal(t, `{'label': 'it\'s a test', 'points': [1, 2]}`, got)
}

func TestRepr_InjectionAttemptStaysOneLiteral(t *testing.T) {
	malicious := "'; import os; os.system('rm -rf /'); x = '"
	got := Repr(malicious)

	// The rendered literal must open with a single quote, contain no
	// unescaped quote that terminates it early, and close with exactly one
	// trailing quote.
	assert.True(t, len(got) >= 2)
	assert.Equal(t, byte('\''), got[0])
	assert.Equal(t, byte('\''), got[len(got)-1])
	assert.NotContains(t, strings.ReplaceAll(got[1:len(got)-1], `\'`, ""), "'")
}
