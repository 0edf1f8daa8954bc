package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/agentstation/orbitalguard/pkg/catalog"
	"github.com/agentstation/orbitalguard/pkg/errors"
	"github.com/agentstation/orbitalguard/pkg/logging"
)

// ReadRecords decodes a file whose top-level value must be a JSON array of
// objects. Numbers are kept as json.Number so identifiers survive intact.
// Array elements that are not objects decode as empty records.
func ReadRecords(path string) ([]catalog.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return decodeRecords(path, data)
}

func decodeRecords(path string, data []byte) ([]catalog.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.WrapParse(string(KindJSON), path, err)
	}
	if err := dec.Decode(new(any)); err != io.EOF {
		return nil, errors.NewParseError(string(KindJSON), path, "unexpected data after top-level value", err)
	}

	items, ok := doc.([]any)
	if !ok {
		return nil, &errors.ValidationError{
			Field:   path,
			Message: "top-level value is not an array",
			Err:     errors.ErrNotArray,
		}
	}

	records := make([]catalog.Record, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			obj = catalog.Record{}
		}
		records = append(records, obj)
	}
	return records, nil
}

// SourceWarning describes an element-set source that was left out of a merge.
type SourceWarning struct {
	Path    string `json:"path" yaml:"path"`
	Message string `json:"message" yaml:"message"`
	Err     error  `json:"-" yaml:"-"`
}

// LoadElementSets concatenates the records of the active source and each
// debris source, in that order. A source that cannot be read or is not an
// array is skipped and reported as a warning; the rest are still merged.
func LoadElementSets(ctx context.Context, active string, debris []string) ([]catalog.Record, []SourceWarning) {
	logger := logging.FromContext(ctx)

	var (
		merged   []catalog.Record
		warnings []SourceWarning
	)
	for _, path := range append([]string{active}, debris...) {
		if path == "" {
			continue
		}
		records, err := ReadRecords(path)
		if err != nil {
			logger.Warn().Err(err).Str("source", path).Msg("Skipping element-set source")
			warnings = append(warnings, SourceWarning{Path: path, Message: err.Error(), Err: err})
			continue
		}
		logger.Debug().Str("source", path).Int("records", len(records)).Msg("Read element-set source")
		merged = append(merged, records...)
	}
	return merged, warnings
}
