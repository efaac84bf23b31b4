package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestRequestIDFromContext(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("expected empty request ID, got %q", got)
	}

	ctx = WithRequestID(ctx, "req-1")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("expected req-1, got %q", got)
	}
}

func TestWithNewRequestID(t *testing.T) {
	ctx := WithNewRequestID(context.Background())

	id := RequestIDFromContext(ctx)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("expected a UUID request ID, got %q: %v", id, err)
	}
}
