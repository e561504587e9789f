// Package logging defines the structured-logging interface the services
// and transports log through. The concrete implementation wraps slog, but
// nothing outside this package depends on that.
package logging

import "context"

// Logger is a context-aware, structured logger. The variadic args are
// alternating key-value pairs:
//
//	log.Info(ctx, "file uploaded", "filename", record.Filename, "size", record.Size)
type Logger interface {
	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs unusual but non-fatal conditions, such as a rejected
	// duplicate upload.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given
	// key-value pairs. Services use it to tag their module name once.
	With(args ...any) Logger
}
