package build

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/orbitalguard"
	"github.com/agentstation/orbitalguard/internal/cmd/application"
	"github.com/agentstation/orbitalguard/internal/testhelper"
	"github.com/agentstation/orbitalguard/pkg/logging"
)

func TestFlags_Options(t *testing.T) {
	t.Run("none set", func(t *testing.T) {
		opts, err := (&Flags{}).Options()
		require.NoError(t, err)
		assert.Empty(t, opts)
	})

	t.Run("all set", func(t *testing.T) {
		dir := t.TempDir()
		strata := testhelper.WriteFile(t, dir, "strata.yaml", []byte("values:\n  LEO: 5\ndefault: 4\n"))
		flags := &Flags{
			Strata:      strata,
			FKPolicy:    "report",
			TieBreak:    "most_frequent",
			MetricsFile: filepath.Join(dir, "m.prom"),
			Report:      filepath.Join(dir, "r.md"),
		}
		opts, err := flags.Options()
		require.NoError(t, err)
		assert.Len(t, opts, 5)
	})

	t.Run("unreadable strata", func(t *testing.T) {
		_, err := (&Flags{Strata: filepath.Join(t.TempDir(), "missing.yaml")}).Options()
		require.Error(t, err)
	})
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	hook := progress(&buf)

	hook(orbitalguard.StageEvent{Stage: "orbits", Duration: 1500 * time.Microsecond})
	hook(orbitalguard.StageEvent{Stage: "satellite_details", Err: context.Canceled})

	out := buf.String()
	assert.Contains(t, out, "orbits")
	assert.Contains(t, out, "done")
	assert.Contains(t, out, "failed")
}

func TestExecute(t *testing.T) {
	in := testhelper.Fixture(t)
	db := filepath.Join(t.TempDir(), "catalog.db")
	mock := &application.Mock{
		PipelineFunc: func(opts ...orbitalguard.Option) (orbitalguard.Pipeline, error) {
			base := []orbitalguard.Option{
				orbitalguard.WithInputs(in),
				orbitalguard.WithDatabasePath(db),
				orbitalguard.WithLogger(logging.NewNopLogger()),
			}
			return orbitalguard.New(append(base, opts...)...)
		},
		OutputFormatFunc: func() string { return "wide" },
	}

	var out, errOut bytes.Buffer
	require.NoError(t, Execute(context.Background(), mock, &Flags{FKPolicy: "report"}, &out, &errOut))

	assert.Contains(t, strings.ToUpper(out.String()), "UNAVAILABLE COLUMNS")
	assert.Contains(t, out.String(), "Integrity:")
	assert.Contains(t, errOut.String(), "launch_missions")
}
