package webm

import "log/slog"

func defaultLogger() *slog.Logger {
	return slog.Default().With("component", "webm.segment")
}
