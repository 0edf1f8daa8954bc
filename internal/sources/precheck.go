package sources

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/agentstation/orbitalguard/pkg/errors"
	"github.com/agentstation/orbitalguard/pkg/logging"
)

// FileStatus is the pre-flight outcome for one input file.
type FileStatus struct {
	Role    Role   `json:"role" yaml:"role"`
	Path    string `json:"path" yaml:"path"`
	Kind    Kind   `json:"kind" yaml:"kind"`
	OK      bool   `json:"ok" yaml:"ok"`
	Records int    `json:"records" yaml:"records"`
	Columns int    `json:"columns,omitempty" yaml:"columns,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// PrecheckResult collects the status of every input file.
type PrecheckResult struct {
	Files []FileStatus `json:"files" yaml:"files"`
}

// OK reports whether every file passed.
func (r *PrecheckResult) OK() bool {
	for _, f := range r.Files {
		if !f.OK {
			return false
		}
	}
	return true
}

// Failed returns the files that did not pass.
func (r *PrecheckResult) Failed() []FileStatus {
	var failed []FileStatus
	for _, f := range r.Files {
		if !f.OK {
			failed = append(failed, f)
		}
	}
	return failed
}

// Precheck verifies that every input exists, that JSON inputs parse as
// arrays and that the workbook has a readable first sheet. It checks every
// file before returning, so the result lists all problems at once. When any
// file fails the returned error matches errors.ErrPrecheckFailed.
func Precheck(ctx context.Context, in Inputs) (*PrecheckResult, error) {
	logger := logging.FromContext(ctx)
	result := &PrecheckResult{}

	for _, input := range in.Files() {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("%w: %w", errors.ErrCanceled, err)
		}

		status := checkFile(input)
		if status.OK {
			logger.Debug().Str("source", status.Path).Int("records", status.Records).Msg("Input ok")
		} else {
			logger.Error().Str("source", status.Path).Str("error", status.Error).Msg("Input failed pre-flight")
		}
		result.Files = append(result.Files, status)
	}

	if failed := result.Failed(); len(failed) > 0 {
		paths := make([]string, 0, len(failed))
		for _, f := range failed {
			if f.Path == "" {
				paths = append(paths, string(f.Role))
				continue
			}
			paths = append(paths, f.Path)
		}
		return result, &errors.ValidationError{
			Field:   "inputs",
			Value:   paths,
			Message: fmt.Sprintf("%d of %d input files failed: %s", len(failed), len(result.Files), strings.Join(paths, ", ")),
			Err:     errors.ErrPrecheckFailed,
		}
	}
	return result, nil
}

func checkFile(in Input) FileStatus {
	status := FileStatus{Role: in.Role, Path: in.Path, Kind: in.Kind}

	if in.Path == "" {
		status.Error = fmt.Sprintf("no path configured for %s", in.Role)
		return status
	}
	if _, err := os.Stat(in.Path); err != nil {
		status.Error = errors.WrapIO("stat", in.Path, err).Error()
		return status
	}

	switch in.Kind {
	case KindJSON:
		records, err := ReadRecords(in.Path)
		if err != nil {
			status.Error = err.Error()
			return status
		}
		status.Records = len(records)
	case KindXLSX:
		sheet, err := ReadSheet(in.Path)
		if err != nil {
			status.Error = err.Error()
			return status
		}
		status.Records = len(sheet.Rows)
		status.Columns = len(sheet.Headers)
	}

	status.OK = true
	return status
}
