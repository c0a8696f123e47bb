package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLoggerInit(t *testing.T) {
	// Test development mode
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize development logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil after initialization")
	}

	// Test production mode
	err = Init()
	if err != nil {
		t.Fatalf("failed to initialize production logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	logger = Get()
	if logger == nil {
		t.Fatal("logger is nil after initialization")
	}
}

// Basic logging test (slog-backed; no Sugar)
func TestLoggerBasic(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil")
	}

	ctx := context.Background()
	logger.Info(ctx, "test message", String("k", "v"))
}

func TestLoggerNamed(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	namedLogger := Named("test")
	if namedLogger == nil {
		t.Fatal("named logger is nil")
	}

	ctx := context.Background()
	namedLogger.Info(ctx, "test message")
}

func TestLoggerFormats(t *testing.T) {
	ctx := context.Background()

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Init(WithFormat("JSON"), WithOutput(&buf)); err != nil {
			t.Fatalf("failed to initialize json logger: %v", err)
		}
		Named("resolver").Warn(ctx, "resolution failed", String("cik", "0000318154"), Bool("fallback", true))

		var rec map[string]any
		if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
			t.Fatalf("output is not json: %v: %q", err, buf.String())
		}
		if rec["msg"] != "resolution failed" || rec["logger"] != "resolver" || rec["cik"] != "0000318154" || rec["fallback"] != true {
			t.Errorf("unexpected record: %v", rec)
		}
	})

	t.Run("level", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Init(WithOutput(&buf)); err != nil {
			t.Fatalf("failed to initialize logger: %v", err)
		}
		if err := SetLevelString("warn"); err != nil {
			t.Fatal(err)
		}
		Get().Info(ctx, "hidden")
		Get().Warn(ctx, "shown", Duration("took", time.Second))
		out := buf.String()
		if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") || !strings.Contains(out, "took=1s") {
			t.Errorf("unexpected output: %q", out)
		}
		if err := SetLevelString("verbose"); err == nil {
			t.Error("expected error for unknown level")
		}
		_ = SetLevelString("info")
	})

	t.Run("unknown format", func(t *testing.T) {
		prev := global
		if err := Init(WithFormat("xml")); err == nil {
			t.Error("expected error for unknown format")
		}
		if global == nil || global != prev {
			t.Error("previous logger should remain installed")
		}
	})
}
