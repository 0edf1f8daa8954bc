package sources

import "github.com/agentstation/orbitalguard/pkg/catalog"

// FieldPresence counts how a field appears across a set of records.
type FieldPresence struct {
	Field string `json:"field" yaml:"field"`
	// Present counts records carrying a non-empty value.
	Present int `json:"present" yaml:"present"`
	// Empty counts records carrying the key with a null or blank value.
	Empty   int `json:"empty" yaml:"empty"`
	Missing int `json:"missing" yaml:"missing"`
}

// Coverage is the share of records with a non-empty value.
func (p FieldPresence) Coverage() float64 {
	total := p.Present + p.Empty + p.Missing
	if total == 0 {
		return 0
	}
	return float64(p.Present) / float64(total)
}

// InspectFields reports the presence of each key across records, in key order.
func InspectFields(records []catalog.Record, keys []string) []FieldPresence {
	out := make([]FieldPresence, len(keys))
	for i, key := range keys {
		out[i].Field = key
		for _, r := range records {
			v, ok := r[key]
			switch {
			case !ok:
				out[i].Missing++
			case v == nil || v == "":
				out[i].Empty++
			default:
				out[i].Present++
			}
		}
	}
	return out
}
