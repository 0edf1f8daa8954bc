package columns_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/orbitalguard/pkg/columns"
)

func TestResolve(t *testing.T) {
	r := columns.NewResolver()

	tests := []struct {
		name       string
		expected   string
		headers    []string
		wantKind   columns.Kind
		wantHeader string
		wantIndex  int
	}{
		{
			name:       "exact",
			expected:   "Launch Mass (kg.)",
			headers:    []string{"NORAD Number", "Launch Mass (kg.)"},
			wantKind:   columns.KindExact,
			wantHeader: "Launch Mass (kg.)",
			wantIndex:  1,
		},
		{
			name:       "unit punctuation differs",
			expected:   "Launch Mass (kg.)",
			headers:    []string{"Launch Mass (kg)"},
			wantKind:   columns.KindNormalized,
			wantHeader: "Launch Mass (kg)",
			wantIndex:  0,
		},
		{
			name:       "case and spacing differ",
			expected:   "Country of Operator/Owner",
			headers:    []string{"Purpose", "country of operator / owner"},
			wantKind:   columns.KindNormalized,
			wantHeader: "country of operator / owner",
			wantIndex:  1,
		},
		{
			name:       "full width characters",
			expected:   "Power (watts)",
			headers:    []string{"Ｐｏｗｅｒ（ｗａｔｔｓ）"},
			wantKind:   columns.KindNormalized,
			wantHeader: "Ｐｏｗｅｒ（ｗａｔｔｓ）",
			wantIndex:  0,
		},
		{
			name:       "exact preferred over earlier normalized",
			expected:   "Users",
			headers:    []string{"USERS", "Users"},
			wantKind:   columns.KindExact,
			wantHeader: "Users",
			wantIndex:  1,
		},
		{
			name:       "first normalized match wins",
			expected:   "Dry Mass (kg.)",
			headers:    []string{"Dry Mass kg", "DRY-MASS (KG)"},
			wantKind:   columns.KindNormalized,
			wantHeader: "Dry Mass kg",
			wantIndex:  0,
		},
		{
			name:      "unavailable",
			expected:  "Expected Lifetime (yrs.)",
			headers:   []string{"Lifetime"},
			wantKind:  columns.KindUnavailable,
			wantIndex: -1,
		},
		{
			name:      "punctuation only never matches",
			expected:  "()",
			headers:   []string{"[]"},
			wantKind:  columns.KindUnavailable,
			wantIndex: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := r.Resolve(tt.expected, tt.headers)
			assert.Equal(t, tt.wantKind, m.Kind)
			assert.Equal(t, tt.wantHeader, m.Header)
			assert.Equal(t, tt.wantIndex, m.Index)
			assert.Equal(t, tt.expected, m.Expected)
			assert.Equal(t, tt.wantKind != columns.KindUnavailable, m.Found())
		})
	}
}

func TestResolveAll(t *testing.T) {
	headers := []string{"NORAD Number", "Class of Orbit"}
	matches := columns.NewResolver().ResolveAll([]string{"NORAD Number", "Purpose", "Class of Orbit"}, headers)

	assert.Len(t, matches, 3)
	assert.True(t, matches[0].Found())
	assert.False(t, matches[1].Found())
	assert.Equal(t, 1, matches[2].Index)
}

func TestExactOnlyResolver(t *testing.T) {
	r := columns.NewResolver(columns.Exact{})
	m := r.Resolve("Launch Mass (kg.)", []string{"Launch Mass (kg)"})
	assert.Equal(t, columns.KindUnavailable, m.Kind)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "launchmasskg", columns.Key("Launch Mass (kg.)"))
	assert.Equal(t, "operatorowner", columns.Key(" Operator / Owner "))
	assert.Equal(t, "", columns.Key("---"))
}
