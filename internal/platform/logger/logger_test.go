package logger

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/recallhq/recall-api/internal/config"
)

func TestSetupValidLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "Info"} {
		t.Run(level, func(t *testing.T) {
			logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: level})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if logger == nil {
				t.Fatal("expected a logger")
			}
		})
	}
}

func TestSetupInvalidLevelFallsBackToInfo(t *testing.T) {
	logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: "loud"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger == nil {
		t.Fatal("expected a logger despite invalid level")
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("fallback level should be info, but debug is enabled")
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	base := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := WithLogger(context.Background(), base)

	if got := FromContext(ctx); got != base {
		t.Error("expected the logger stored in the context")
	}
	if got := FromContext(context.Background()); got == nil {
		t.Error("expected the default logger for an empty context")
	}
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	stored := slog.New(slog.NewTextHandler(os.Stderr, nil))
	fallback := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if got := FromContextOrDefault(WithLogger(context.Background(), stored), fallback); got != stored {
		t.Error("context logger should win over the fallback")
	}
	if got := FromContextOrDefault(context.Background(), fallback); got != fallback {
		t.Error("fallback logger should be used for an empty context")
	}
	if got := FromContextOrDefault(context.Background(), nil); got == nil {
		t.Error("nil fallback should degrade to the default logger")
	}
}
