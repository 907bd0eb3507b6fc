package logging

import (
	"log/slog"
	"os"

	"gorm.io/gorm"
)

func stdoutHandler(debug bool) slog.Handler {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
}

// Setup installs a JSON stdout logger. Used during startup before the
// database is available.
func Setup(debug bool) {
	slog.SetDefault(slog.New(stdoutHandler(debug)))
}

// SetupWithDB upgrades the global logger to also batch ERROR+ records into
// the system_logs table. The returned handler must be stopped on shutdown
// to drain its buffer.
func SetupWithDB(db *gorm.DB, debug bool) *PGHandler {
	pg := NewPGHandler(db)
	slog.SetDefault(slog.New(tee(stdoutHandler(debug), pg)))
	return pg
}
