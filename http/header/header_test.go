package header

import (
	"strings"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/stretchr/testify/require"
)

func classify(key string, fold bool) Type {
	return Classify([]byte(key), ScopeOf(key[0], fold), fold)
}

func TestClassify(t *testing.T) {
	t.Run("every known header", func(t *testing.T) {
		for i, e := range Table {
			require.Equal(t, Type(i), classify(e.Name, false), e.Name)
			require.Equal(t, len(e.Name), e.Length)
		}
	})

	t.Run("unknown headers", func(t *testing.T) {
		for _, key := range []string{"A1", "Accept-", "Acceptx", "Hos", "Hosts", "Z", "Zzz", "X-Forwarded-For"} {
			require.Equal(t, Unknown, classify(key, false), key)
		}

		for i := 0; i < 100; i++ {
			key := "X-" + uniuri.New()
			require.Equal(t, Unknown, classify(key, false), key)
		}
	})

	t.Run("case sensitive by default", func(t *testing.T) {
		require.Equal(t, Unknown, classify("content-length", false))
		require.Equal(t, Unknown, classify("Content-length", false))
		require.Equal(t, Unknown, classify("HOST", false))
	})

	t.Run("folded", func(t *testing.T) {
		for i, e := range Table {
			require.Equal(t, Type(i), classify(strings.ToLower(e.Name), true), e.Name)
			require.Equal(t, Type(i), classify(strings.ToUpper(e.Name), true), e.Name)
		}

		require.Equal(t, Unknown, classify("content-lengths", true))
	})

	t.Run("empty key", func(t *testing.T) {
		require.Equal(t, Unknown, Classify(nil, ScopeOf('A', false), false))
	})
}

func TestScopeOf(t *testing.T) {
	t.Run("known letters", func(t *testing.T) {
		require.Equal(t, Scope{Min: int(Accept), Max: int(Authorization)}, ScopeOf('A', false))
		require.Equal(t, Scope{Min: int(Cookie), Max: int(ContentType)}, ScopeOf('C', false))
		require.Equal(t, Scope{Min: int(Host), Max: int(Host)}, ScopeOf('H', false))
		require.Equal(t, Scope{Min: int(UserAgent), Max: int(UserAgent)}, ScopeOf('U', false))
	})

	t.Run("no known headers", func(t *testing.T) {
		for _, c := range []byte("BDEGJKMNOPQSVWXYZ0:-\r") {
			require.True(t, ScopeOf(c, false).Empty(), string(c))
		}

		require.True(t, ScopeOf('a', false).Empty())
	})

	t.Run("folded", func(t *testing.T) {
		require.Equal(t, ScopeOf('A', false), ScopeOf('a', true))
		require.Equal(t, ScopeOf('A', false), ScopeOf('A', true))
	})

	t.Run("every entry is in its letter scope", func(t *testing.T) {
		for i, e := range Table {
			scope := ScopeOf(e.Name[0], false)
			require.True(t, scope.Min <= i && i <= scope.Max, e.Name)
		}
	})
}

func TestType_String(t *testing.T) {
	require.Equal(t, "Content-Length", ContentLength.String())
	require.Equal(t, "unknown", Unknown.String())
}

func BenchmarkClassify(b *testing.B) {
	keys := [][]byte{[]byte("Content-Type"), []byte("User-Agent"), []byte("X-Request-Id")}
	var typ Type

	for i := 0; i < b.N; i++ {
		key := keys[i%len(keys)]
		typ = Classify(key, ScopeOf(key[0], false), false)
	}

	_ = typ
}
