package contextutil

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerFromContext(t *testing.T) {
	t.Run("falls back to default", func(t *testing.T) {
		if got := LoggerFromContext(context.Background()); got != slog.Default() {
			t.Error("LoggerFromContext() did not return the default logger")
		}
	})

	t.Run("returns injected logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		ctx := WithLogger(context.Background(), logger)

		LoggerFromContext(ctx).Info("hello", "k", "v")
		if !strings.Contains(buf.String(), "k=v") {
			t.Errorf("log output = %q, want it to contain k=v", buf.String())
		}
	})
}

func TestOwnerFromContext(t *testing.T) {
	if got := OwnerFromContext(context.Background()); got != "" {
		t.Errorf("OwnerFromContext() = %q, want empty", got)
	}
	ctx := WithOwner(context.Background(), "alice")
	if got := OwnerFromContext(ctx); got != "alice" {
		t.Errorf("OwnerFromContext() = %q, want alice", got)
	}
}
