// Package testutil provides testing utilities for coltype
package testutil

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/ajitpratap0/coltype/pkg/block"
	"github.com/ajitpratap0/coltype/pkg/errors"
)

// TestLogger creates a test logger that writes to the test output.
// The logger is automatically cleaned up when the test completes.
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// TestContext creates a test context with a 30-second timeout, cancelled when
// the test completes.
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// BuildBlock appends values to b, a nil value as a null position, and builds it.
// A nil builder uses a default VariableWidthBlockBuilder.
func BuildBlock(t *testing.T, b block.Builder, values ...[]byte) block.Block {
	t.Helper()
	if b == nil {
		b = block.NewVariableWidthBlockBuilder(nil)
	}
	for _, v := range values {
		if v == nil {
			b.AppendNull()
			continue
		}
		b.WriteBytes(v, 0, len(v)).CloseEntry()
	}

	blk, err := b.Build()
	if err != nil {
		t.Fatalf("building block: %v", err)
	}
	if r, ok := blk.(interface{ Release() }); ok {
		t.Cleanup(r.Release)
	}
	return blk
}

// RequirePanicType fails the test unless fn panics with an error of errType.
// It returns the recovered error.
func RequirePanicType(t *testing.T, errType errors.ErrorType, fn func()) (err error) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected a %s panic, got none", errType)
		}
		var ok bool
		if err, ok = r.(error); !ok {
			t.Fatalf("expected a %s error panic, got %T: %v", errType, r, r)
		}
		if !errors.IsType(err, errType) {
			t.Fatalf("expected a %s panic, got %v", errType, err)
		}
	}()
	fn()
	return nil
}
