package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func newCaptureLogger(component string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:     slog.LevelDebug,
		Component: component,
		Handler:   slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	})
	return logger, &buf
}

func TestLoggerStampsComponent(t *testing.T) {
	logger, buf := newCaptureLogger(ComponentStore)

	logger.Info("State loaded", FieldCollection, 3)
	out := buf.String()
	if !strings.Contains(out, FieldComponent+"="+ComponentStore) {
		t.Fatalf("expected component attribute, got %q", out)
	}
	if !strings.Contains(out, FieldCollection+"=3") {
		t.Fatalf("expected collection field, got %q", out)
	}
}

func TestWithComponentStampsExactlyOnce(t *testing.T) {
	logger, buf := newCaptureLogger(ComponentApp)
	scoped := logger.WithComponent(ComponentHTTP)

	if scoped.Component() != ComponentHTTP {
		t.Fatalf("Component() = %q, want %q", scoped.Component(), ComponentHTTP)
	}

	scoped.InfoContext(context.Background(), "Request started", FieldMethod, "GET")
	out := buf.String()
	if got := strings.Count(out, FieldComponent+"="); got != 1 {
		t.Fatalf("expected one component attribute, found %d in %q", got, out)
	}
	if !strings.Contains(out, FieldComponent+"="+ComponentHTTP) {
		t.Fatalf("expected http component, got %q", out)
	}
}

func TestLoggerLevels(t *testing.T) {
	logger, buf := newCaptureLogger(ComponentApp)
	ctx := context.Background()

	logger.Debug("d")
	logger.Warn("w")
	logger.Error("e")
	logger.DebugContext(ctx, "dc")
	logger.WarnContext(ctx, "wc")
	logger.ErrorContext(ctx, "ec")

	out := buf.String()
	for _, msg := range []string{"msg=d", "msg=w", "msg=e", "msg=dc", "msg=wc", "msg=ec"} {
		if !strings.Contains(out, msg) {
			t.Fatalf("missing %q in %q", msg, out)
		}
	}
}

func TestContextRoundTrip(t *testing.T) {
	logger, _ := newCaptureLogger(ComponentHTTP)
	ctx := WithContext(context.Background(), logger.With(FieldRequestID, "req_1"))

	got := FromContext(ctx)
	if got.Component() != ComponentHTTP {
		t.Fatalf("expected injected logger, got component %q", got.Component())
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	got := FromContext(context.Background())
	if got == nil || got.Logger == nil {
		t.Fatalf("expected a usable fallback logger")
	}
	if got.Component() != ComponentApp {
		t.Fatalf("fallback component = %q, want %q", got.Component(), ComponentApp)
	}
}
