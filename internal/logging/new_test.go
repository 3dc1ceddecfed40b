package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{FormatText, "msg=hello"},
		{FormatJSON, `"msg":"hello"`},
		{FormatZap, `"msg":"hello"`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := New(tt.format, "info", &buf)
			require.NoError(t, err)

			log.Info(context.Background(), "hello", "k", "v")
			if z, ok := log.(*ZapLogger); ok {
				_ = z.Sync()
			}
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(FormatText, "warn", &buf)
	require.NoError(t, err)

	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_Errors(t *testing.T) {
	_, err := New("xml", "info", &bytes.Buffer{})
	require.Error(t, err)

	_, err = New(FormatText, "loud", &bytes.Buffer{})
	require.Error(t, err)

	_, err = New(FormatZap, "loud", &bytes.Buffer{})
	require.Error(t, err)
}

func TestNop_DoesNotPanic(t *testing.T) {
	var log Logger = Nop{}
	ctx := context.Background()
	log.With("a", 1).Info(ctx, "x")
	log.Debug(ctx, "x")
	log.Warn(ctx, "x")
	log.Error(ctx, "x")
}
