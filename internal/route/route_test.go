package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	key  string
	name string
}

func keyOf(i item) string { return i.key }

func TestParsePattern_Match(t *testing.T) {
	p, err := ParsePattern("accept:{id}")
	require.NoError(t, err)

	params, ok := p.Match("accept:42")
	require.True(t, ok)
	assert.Equal(t, Params{{Name: "id", Value: "42"}}, params)
	assert.Equal(t, "42", params.Get("id"))

	_, ok = p.Match("accept")
	assert.False(t, ok)

	_, ok = p.Match("accept:")
	assert.False(t, ok, "placeholders capture at least one character")

	_, ok = p.Match("xaccept:42")
	assert.False(t, ok, "static segments are anchored")
}

func TestParsePattern_MatchesAcrossNewlines(t *testing.T) {
	p, err := ParsePattern("note:{text}")
	require.NoError(t, err)

	params, ok := p.Match("note:line1\nline2")
	require.True(t, ok)
	assert.Equal(t, "line1\nline2", params.Get("text"))

	_, ok = p.Match("note:x\n")
	assert.True(t, ok, "trailing newline is part of the value")

	_, ok = p.Match("\nnote:x")
	assert.False(t, ok, "static segments are anchored")
}

func TestParsePattern_MultipleParamsKeepOrder(t *testing.T) {
	p, err := ParsePattern("vote:{poll}:{choice}")
	require.NoError(t, err)

	params, ok := p.Match("vote:7:yes:no")
	require.True(t, ok)
	assert.Equal(t, Params{
		{Name: "poll", Value: "7"},
		{Name: "choice", Value: "yes:no"},
	}, params)
	assert.Equal(t, map[string]string{"poll": "7", "choice": "yes:no"}, params.Map())
}

func TestParsePattern_QuotesStaticText(t *testing.T) {
	p, err := ParsePattern("a.b+{x}")
	require.NoError(t, err)

	_, ok := p.Match("aXb+1")
	assert.False(t, ok)

	params, ok := p.Match("a.b+1")
	require.True(t, ok)
	assert.Equal(t, "1", params.Get("x"))
}

func TestParsePattern_Invalid(t *testing.T) {
	for _, s := range []string{
		"accept:{",
		"accept:{}",
		"accept:}",
		"accept:{1d}",
		"{a}:{a}",
		"{a}{b}",
	} {
		t.Run(s, func(t *testing.T) {
			_, err := ParsePattern(s)
			assert.ErrorIs(t, err, ErrInvalidPattern)
		})
	}
}

func TestTable_ExactMatchIsCaseSensitive(t *testing.T) {
	table, err := New([]item{{key: "ping", name: "ping"}}, keyOf)
	require.NoError(t, err)

	got, params, ok := table.Find("ping")
	require.True(t, ok)
	assert.Equal(t, "ping", got.name)
	assert.Nil(t, params)

	_, _, ok = table.Find("Ping")
	assert.False(t, ok)
	_, _, ok = table.Find("pin")
	assert.False(t, ok)
}

func TestTable_ExactWinsOverPattern(t *testing.T) {
	table, err := New([]item{
		{key: "accept:{id}", name: "pattern"},
		{key: "accept:all", name: "exact"},
	}, keyOf, WithPatterns())
	require.NoError(t, err)

	got, params, ok := table.Find("accept:all")
	require.True(t, ok)
	assert.Equal(t, "exact", got.name)
	assert.Empty(t, params)

	got, params, ok = table.Find("accept:42")
	require.True(t, ok)
	assert.Equal(t, "pattern", got.name)
	assert.Equal(t, "42", params.Get("id"))
}

func TestTable_FirstPatternWins(t *testing.T) {
	table, err := New([]item{
		{key: "page:{n}", name: "first"},
		{key: "page:{n}:{size}", name: "second"},
	}, keyOf, WithPatterns())
	require.NoError(t, err)

	got, params, ok := table.Find("page:2:10")
	require.True(t, ok)
	assert.Equal(t, "first", got.name)
	assert.Equal(t, "2:10", params.Get("n"))
}

func TestTable_PatternsIgnoredWithoutOption(t *testing.T) {
	table, err := New([]item{{key: "accept:{id}", name: "literal"}}, keyOf)
	require.NoError(t, err)

	_, _, ok := table.Find("accept:42")
	assert.False(t, ok)

	_, _, ok = table.Find("accept:{id}")
	assert.True(t, ok)
}

func TestTable_NoMatch(t *testing.T) {
	table, err := New([]item{{key: "accept:{id}"}}, keyOf, WithPatterns())
	require.NoError(t, err)

	got, params, ok := table.Find("reject:1")
	assert.False(t, ok)
	assert.Nil(t, params)
	assert.Equal(t, item{}, got)
}

func TestNew_Duplicates(t *testing.T) {
	_, err := New([]item{{key: "ping"}, {key: "ping"}}, keyOf)
	assert.ErrorIs(t, err, ErrDuplicateKey)

	_, err = New([]item{{key: "a:{id}"}, {key: "a:{id}"}}, keyOf, WithPatterns())
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestNew_InvalidPattern(t *testing.T) {
	_, err := New([]item{{key: "a:{"}}, keyOf, WithPatterns())
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestTable_Len(t *testing.T) {
	table, err := New([]item{{key: "a"}, {key: "b:{x}"}}, keyOf, WithPatterns())
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}
