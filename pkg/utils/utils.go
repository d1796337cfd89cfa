package utils

import (
	"context"
	"log"
	"runtime/debug"

	"tradepulse/pkg/logger"
)

// GoSafe runs fn in a goroutine and recovers panics so a single failing
// task cannot take down the process.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("recovered from panic: %v\n%s", r, debug.Stack())
			}
		}()
		fn()
	}()
}

// ShouldContinue reports whether the context is still live, logging a
// warning when work is being abandoned.
func ShouldContinue(ctx context.Context, log *logger.Logger) bool {
	select {
	case <-ctx.Done():
		log.Warn("context canceled, stopping work", logger.ErrorField(ctx.Err()))
		return false
	default:
		return true
	}
}

// ToPointer returns a pointer to v.
func ToPointer[T any](v T) *T {
	return &v
}
