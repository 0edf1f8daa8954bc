// Package columns resolves expected spreadsheet headers against the headers a
// file actually carries.
//
// Resolution tries an exact match first, then a normalized match that ignores
// case, punctuation and unit spelling ("Launch Mass (kg.)" matches
// "Launch Mass (kg)"), and otherwise reports the field as unavailable.
package columns

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Kind describes how an expected header was resolved.
type Kind string

const (
	// KindExact means the header was present verbatim.
	KindExact Kind = "exact"
	// KindNormalized means the header matched after normalization.
	KindNormalized Kind = "normalized"
	// KindUnavailable means no header matched.
	KindUnavailable Kind = "unavailable"
)

// Match is the outcome of resolving one expected header.
type Match struct {
	Expected string `json:"expected" yaml:"expected"`
	Header   string `json:"header,omitempty" yaml:"header,omitempty"`
	Index    int    `json:"index" yaml:"index"`
	Kind     Kind   `json:"kind" yaml:"kind"`
}

// Found reports whether the expected header resolved to a column.
func (m Match) Found() bool {
	return m.Kind != KindUnavailable
}

// Strategy attempts to locate expected among headers. It returns the index of
// the matching header or -1.
type Strategy interface {
	Kind() Kind
	Find(expected string, headers []string) int
}

// Resolver applies strategies in order and returns the first hit.
type Resolver struct {
	strategies []Strategy
}

// NewResolver returns a resolver using the given strategies, or exact then
// normalized matching when none are given.
func NewResolver(strategies ...Strategy) *Resolver {
	if len(strategies) == 0 {
		strategies = []Strategy{Exact{}, Normalized{}}
	}
	return &Resolver{strategies: strategies}
}

// Resolve locates one expected header.
func (r *Resolver) Resolve(expected string, headers []string) Match {
	for _, s := range r.strategies {
		if i := s.Find(expected, headers); i >= 0 {
			return Match{Expected: expected, Header: headers[i], Index: i, Kind: s.Kind()}
		}
	}
	return Match{Expected: expected, Index: -1, Kind: KindUnavailable}
}

// ResolveAll resolves every expected header, preserving order.
func (r *Resolver) ResolveAll(expected, headers []string) []Match {
	out := make([]Match, len(expected))
	for i, e := range expected {
		out[i] = r.Resolve(e, headers)
	}
	return out
}

// Exact matches headers verbatim.
type Exact struct{}

// Kind implements Strategy.
func (Exact) Kind() Kind { return KindExact }

// Find implements Strategy.
func (Exact) Find(expected string, headers []string) int {
	for i, h := range headers {
		if h == expected {
			return i
		}
	}
	return -1
}

// Normalized matches headers whose Key equals the expected header's Key.
type Normalized struct{}

// Kind implements Strategy.
func (Normalized) Kind() Kind { return KindNormalized }

// Find implements Strategy.
func (Normalized) Find(expected string, headers []string) int {
	want := Key(expected)
	if want == "" {
		return -1
	}
	for i, h := range headers {
		if Key(h) == want {
			return i
		}
	}
	return -1
}

// Key folds a header to lowercase ASCII letters and digits after NFKC
// normalization, so full-width and compatibility characters compare equal.
func Key(header string) string {
	folded := strings.ToLower(norm.NFKC.String(header))
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
