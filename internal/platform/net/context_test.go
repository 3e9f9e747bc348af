package net

import (
	"context"
	"testing"
)

func TestWithRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	if got := RequestID(ctx); got != "req-1" {
		t.Fatalf("RequestID = %q", got)
	}
	if got := RequestID(WithRequestID(context.Background(), "")); got != "" {
		t.Fatalf("empty id should not be stored, got %q", got)
	}
	if got := RequestID(context.Background()); got != "" {
		t.Fatalf("background = %q", got)
	}
}
