package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvvmkit/mvvmkit/pkg/logger"
)

func TestGroup(t *testing.T) {
	t.Parallel()
	attr := logger.Group("fault", slog.String("id", "1"), slog.Bool("panicked", true))
	require.Equal(t, "fault", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	assert.Len(t, attr.Value.Group(), 2)
}

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestErrors(t *testing.T) {
	t.Parallel()
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))
}

func TestTaskAttrs(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "task_id", logger.TaskID("abc").Key)
	assert.True(t, logger.TaskID("").Equal(slog.Attr{}))
	assert.Equal(t, "task_name", logger.TaskName("refresh").Key)
	assert.True(t, logger.TaskName("").Equal(slog.Attr{}))
	assert.Equal(t, "panicked", logger.Panicked(true).Key)
}

func TestTimingAttrs(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "duration", logger.Duration(time.Second).Key)
	assert.Equal(t, "elapsed", logger.Elapsed(time.Now()).Key)
}

func TestIdentityAttrs(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "component", logger.Component("taskwatch").Key)
	assert.Equal(t, "event", logger.Event("faulted").Key)
	assert.Equal(t, "k", logger.ID("k", 42).Key)
	assert.True(t, logger.ID("k", nil).Equal(slog.Attr{}))
}
