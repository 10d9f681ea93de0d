package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoggerCarriesContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: ParseLevel("debug"), Output: buf})

	ctx := context.Background()
	ctx = log.WithRequestID(ctx, "req-123")
	ctx = log.WithVendorID(ctx, "vendor-9")

	log.Error(ctx, "boom", errors.New("boom"))

	if !bytes.Contains(buf.Bytes(), []byte("\"request_id\":\"req-123\"")) {
		t.Fatalf("expected request_id in entry; entry=%s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("\"vendor_id\":\"vendor-9\"")) {
		t.Fatalf("expected vendor_id in entry; entry=%s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("\"stack\"")) {
		t.Fatalf("expected stack trace on error; entry=%s", buf.String())
	}
}

func TestLoggerWarnStackToggle(t *testing.T) {
	withStack := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Output: withStack, WarnStack: true})
	log.Warn(context.Background(), "warny")
	if !bytes.Contains(withStack.Bytes(), []byte("\"stack\"")) {
		t.Fatal("expected stack when warn stack enabled")
	}

	withoutStack := &bytes.Buffer{}
	log = New(Options{ServiceName: "test", Output: withoutStack})
	log.Warn(context.Background(), "warny")
	if bytes.Contains(withoutStack.Bytes(), []byte("\"stack\"")) {
		t.Fatal("did not expect stack when warn stack disabled")
	}
}

func TestParseLevel(t *testing.T) {
	if lvl := ParseLevel(""); lvl != zerolog.InfoLevel {
		t.Fatalf("expected info for empty level, got %v", lvl)
	}
	if lvl := ParseLevel("not-a-level"); lvl != zerolog.InfoLevel {
		t.Fatalf("expected info fallback for invalid level, got %v", lvl)
	}
	if lvl := ParseLevel(" DEBUG "); lvl != zerolog.DebugLevel {
		t.Fatalf("expected debug, got %v", lvl)
	}
}
