package precheck

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/orbitalguard"
	"github.com/agentstation/orbitalguard/internal/cmd/application"
	"github.com/agentstation/orbitalguard/internal/testhelper"
	"github.com/agentstation/orbitalguard/pkg/errors"
	"github.com/agentstation/orbitalguard/pkg/logging"
)

func mockFor(in orbitalguard.Inputs, format string) *application.Mock {
	return &application.Mock{
		PipelineFunc: func(opts ...orbitalguard.Option) (orbitalguard.Pipeline, error) {
			return orbitalguard.New(append([]orbitalguard.Option{
				orbitalguard.WithInputs(in),
				orbitalguard.WithLogger(logging.NewNopLogger()),
			}, opts...)...)
		},
		OutputFormatFunc: func() string { return format },
	}
}

func TestExecute(t *testing.T) {
	t.Run("all files ok", func(t *testing.T) {
		in := testhelper.Fixture(t)
		var out bytes.Buffer

		require.NoError(t, Execute(context.Background(), mockFor(in, "json"), &out))
		assert.Contains(t, out.String(), `"ok": true`)
		assert.NotContains(t, out.String(), `"ok": false`)
	})

	t.Run("missing registry", func(t *testing.T) {
		in := testhelper.Fixture(t)
		in.Details = filepath.Join(t.TempDir(), "missing.xlsx")
		var out bytes.Buffer

		err := Execute(context.Background(), mockFor(in, "table"), &out)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrPrecheckFailed)
		assert.Contains(t, out.String(), "FAILED")
	})
}
