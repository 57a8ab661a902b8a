package api_test

import (
	"io"
	"log/slog"
)

// testLogger returns a logger that discards output, keeping handler
// construction happy without polluting test logs.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
