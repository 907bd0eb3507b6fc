package logging

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countHandler struct {
	min   slog.Level
	count int
}

func (h *countHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.min
}

func (h *countHandler) Handle(_ context.Context, _ slog.Record) error {
	h.count++
	return nil
}

func (h *countHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *countHandler) WithGroup(_ string) slog.Handler      { return h }

func TestTee_RoutesByHandlerLevel(t *testing.T) {
	info := &countHandler{min: slog.LevelInfo}
	errOnly := &countHandler{min: slog.LevelError}
	logger := slog.New(tee(info, errOnly))

	logger.Info("routine")
	logger.Error("broken")

	assert.Equal(t, 2, info.count)
	assert.Equal(t, 1, errOnly.count)
}

func TestTee_EnabledWhenAnySinkIs(t *testing.T) {
	h := tee(&countHandler{min: slog.LevelWarn}, &countHandler{min: slog.LevelError})

	ctx := context.Background()
	assert.True(t, h.Enabled(ctx, slog.LevelWarn))
	assert.False(t, h.Enabled(ctx, slog.LevelInfo))
}

func TestTee_SkipsDisabledSink(t *testing.T) {
	errOnly := &countHandler{min: slog.LevelError}
	h := tee(errOnly)

	record := slog.NewRecord(time.Now(), slog.LevelInfo, "routine", 0)
	require.NoError(t, h.Handle(context.Background(), record))
	assert.Zero(t, errOnly.count)
}
