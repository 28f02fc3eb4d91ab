package svcctx

import (
	"context"
	"log/slog"
	"testing"

	"github.com/jackzampolin/draftcheck/internal/api"
	"github.com/jackzampolin/draftcheck/internal/home"
)

func TestServicesRoundTrip(t *testing.T) {
	dir, err := home.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.DiscardHandler)
	s := &Services{
		Client: api.NewClient("http://localhost:8000"),
		Logger: logger,
		Home:   dir,
	}
	ctx := WithServices(context.Background(), s)

	if ServicesFrom(ctx) != s {
		t.Error("ServicesFrom returned a different value")
	}
	if ClientFrom(ctx) != s.Client {
		t.Error("ClientFrom returned a different client")
	}
	if LoggerFrom(ctx) != logger {
		t.Error("LoggerFrom returned a different logger")
	}
	if HomeFrom(ctx) != dir {
		t.Error("HomeFrom returned a different dir")
	}
	if ConfigFrom(ctx) != nil {
		t.Error("ConfigFrom should be nil when unset")
	}
}

func TestEmptyContext(t *testing.T) {
	ctx := context.Background()
	if ServicesFrom(ctx) != nil || ClientFrom(ctx) != nil || HomeFrom(ctx) != nil {
		t.Error("expected nil services from empty context")
	}
	if LoggerFrom(ctx) != slog.Default() {
		t.Error("expected default logger from empty context")
	}
}
