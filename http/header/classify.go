package header

import (
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

// Scope is an inclusive range of indexes in Table, selected by the first character
// of a header key. NoScope means no known header may match.
type Scope struct {
	Min, Max int
}

var NoScope = Scope{Min: -1, Max: -1}

// Empty reports whether classification is going to end up with Unknown without
// comparing anything.
func (s Scope) Empty() bool {
	return s.Min < 0
}

var exactScopes, foldedScopes = buildScopes()

func buildScopes() (exact, folded [256]Scope) {
	for i := range exact {
		exact[i], folded[i] = NoScope, NoScope
	}

	for i, e := range Table {
		c := e.Name[0]
		extend(&exact[c], i)
		extend(&folded[c|0x20], i)
		extend(&folded[c&^0x20], i)
	}

	return exact, folded
}

func extend(s *Scope, i int) {
	if s.Empty() {
		s.Min = i
	} else if s.Max != i-1 {
		panic("BUG: header table entries starting with " + Table[i].Name[:1] + " are not contiguous")
	}

	s.Max = i
}

// ScopeOf narrows the lookup down by the first character of a key. When fold is set,
// both the upper and the lower case of a letter select the same scope.
func ScopeOf(c byte, fold bool) Scope {
	if fold {
		return foldedScopes[c]
	}

	return exactScopes[c]
}

// Classify resolves a header key to its type, scanning only the given scope. The first
// character of the key is expected to have already been checked by ScopeOf, so only the
// rest is compared. A key which matches nothing is reported as Unknown.
func Classify(key []byte, scope Scope, fold bool) Type {
	if scope.Empty() || len(key) == 0 {
		return Unknown
	}

	str := uf.B2S(key)

	for i := scope.Min; i <= scope.Max; i++ {
		if Table[i].Length != len(str) {
			continue
		}

		if fold {
			if strcomp.EqualFold(str[1:], Table[i].Name[1:]) {
				return Type(i)
			}
		} else if str[1:] == Table[i].Name[1:] {
			return Type(i)
		}
	}

	return Unknown
}
