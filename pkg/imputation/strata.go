// Package imputation fills missing numeric values from per-category constants.
package imputation

import (
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/orbitalguard/pkg/errors"
)

// Strata maps a category to the value substituted when a row lacks one.
// Default serves both unknown categories and rows with no category.
type Strata struct {
	Values  map[string]float64 `json:"values" yaml:"values"`
	Default float64            `json:"default" yaml:"default"`
}

// DefaultLifetimeStrata returns the median expected lifetime, in years, per orbit class.
func DefaultLifetimeStrata() Strata {
	return Strata{
		Values: map[string]float64{
			"LEO":        4.0,
			"MEO":        10.0,
			"GEO":        15.0,
			"ELLIPTICAL": 7.0,
		},
		Default: 4.0,
	}
}

// Lookup returns the value for class. The class is expected in its normalized
// uppercase form; nil or unknown classes yield Default.
func (s Strata) Lookup(class *string) float64 {
	if class == nil {
		return s.Default
	}
	if v, ok := s.Values[*class]; ok {
		return v
	}
	return s.Default
}

// Classes returns the configured categories in sorted order.
func (s Strata) Classes() []string {
	out := make([]string, 0, len(s.Values))
	for k := range s.Values {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Validate checks that the strata can be used for imputation.
func (s Strata) Validate() error {
	if s.Default < 0 {
		return errors.NewValidationError("default", s.Default, "must not be negative")
	}
	for k, v := range s.Values {
		if strings.TrimSpace(k) == "" {
			return errors.NewValidationError("values", k, "class must not be empty")
		}
		if k != strings.ToUpper(strings.TrimSpace(k)) {
			return errors.NewValidationError("values", k, "class must be trimmed uppercase")
		}
		if v < 0 {
			return errors.NewValidationError("values."+k, v, "must not be negative")
		}
	}
	return nil
}

// LoadStrata reads strata from a YAML file of the form:
//
//	default: 4
//	values:
//	  LEO: 4
//	  GEO: 15
//
// Class keys are uppercased so the file may use any case.
func LoadStrata(path string) (Strata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Strata{}, errors.WrapIO("read", path, err)
	}
	return ParseStrata(path, data)
}

// ParseStrata decodes strata from YAML bytes. name is used in error messages.
func ParseStrata(name string, data []byte) (Strata, error) {
	var raw Strata
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Strata{}, errors.WrapParse("yaml", name, err)
	}

	s := Strata{Values: make(map[string]float64, len(raw.Values)), Default: raw.Default}
	for k, v := range raw.Values {
		s.Values[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	if err := s.Validate(); err != nil {
		return Strata{}, err
	}
	return s, nil
}
