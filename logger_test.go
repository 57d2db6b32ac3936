package imgrotate

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	require.False(t, Logger().Enabled(context.Background(), slog.LevelError))

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	_, err := Rotate(makePatternImage(4, 3), 30, nil)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "src=4x3")
	require.Contains(t, buf.String(), "method=closed")

	SetLogger(nil)
	require.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
