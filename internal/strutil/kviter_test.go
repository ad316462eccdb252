package strutil

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/require"
)

type strpair struct {
	K, V string
}

func collect(i iter.Seq2[string, string]) (pairs []strpair) {
	for k, v := range i {
		pairs = append(pairs, strpair{k, v})
	}

	return pairs
}

func TestWalkKV(t *testing.T) {
	t.Run("single value", func(t *testing.T) {
		values := collect(WalkKV("abc"))
		require.Equal(t, []strpair{{"abc", ""}}, values)
	})

	t.Run("single pair", func(t *testing.T) {
		values := collect(WalkKV("abc=cba"))
		require.Equal(t, []strpair{{"abc", "cba"}}, values)
	})

	t.Run("multiple pairs", func(t *testing.T) {
		values := collect(WalkKV("abc=cba;hello=world;"))
		require.Equal(t, []strpair{{"abc", "cba"}, {"hello", "world"}}, values)
	})

	t.Run("quoted values", func(t *testing.T) {
		values := collect(WalkKV(`name="file"; filename="my report; final.txt"`))
		require.Equal(t, []strpair{{"name", "file"}, {"filename", "my report; final.txt"}}, values)
	})

	t.Run("empty quoted value", func(t *testing.T) {
		values := collect(WalkKV(`name="file"; filename=""`))
		require.Equal(t, []strpair{{"name", "file"}, {"filename", ""}}, values)
	})

	t.Run("flag and spaces", func(t *testing.T) {
		values := collect(WalkKV(` form-data ; name = "x" ;boundary=AAA `))
		require.Equal(t, []strpair{{"form-data", ""}, {"name", "x"}, {"boundary", "AAA"}}, values)
	})

	t.Run("unterminated quote", func(t *testing.T) {
		values := collect(WalkKV(`filename="abc`))
		require.Equal(t, []strpair{{"filename", "abc"}}, values)
	})

	t.Run("early break", func(t *testing.T) {
		for k := range WalkKV("a=1; b=2; c=3") {
			require.Equal(t, "a", k)
			break
		}
	})
}

func TestCutHeader(t *testing.T) {
	value, params := CutHeader("multipart/form-data; boundary=AAAAAA")
	require.Equal(t, "multipart/form-data", value)
	require.Equal(t, "boundary=AAAAAA", params)

	value, params = CutHeader("text/plain ")
	require.Equal(t, "text/plain", value)
	require.Empty(t, params)
}

func TestCutHeaderLine(t *testing.T) {
	key, value, found := CutHeaderLine("Content-Type:\t text/html ")
	require.True(t, found)
	require.Equal(t, "Content-Type", key)
	require.Equal(t, "text/html", value)

	_, _, found = CutHeaderLine("garbage")
	require.False(t, found)
}
