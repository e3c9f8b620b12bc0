package logger_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessreview/internal/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("WARNING"))
	assert.Equal(t, logger.ERROR, logger.ParseLevel("Error"))
	assert.Equal(t, logger.INFO, logger.ParseLevel("nonsense"))
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithColors(false))

	log.Info("hidden %d", 1)
	log.Warn("visible %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible 2")
	assert.Contains(t, out, "WARN")
}

func TestLogger_PrefixAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.DEBUG), logger.WithColors(false))

	log.WithPrefix("chesscom").WithField("username", "hikaru").Debug("fetching")

	out := buf.String()
	assert.Contains(t, out, "[chesscom]")
	assert.Contains(t, out, "fetching")
	assert.Contains(t, out, "hikaru")
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithJSON(true))

	log.WithFields(map[string]any{"game_id": "abc"}).Info("imported")

	out := buf.String()
	assert.Contains(t, out, `"msg":"imported"`)
	assert.Contains(t, out, `"game_id":"abc"`)
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))

	ctx := logger.NewContext(context.Background(), log)
	require.Same(t, log, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}

func TestLogger_WithPrefixReplaces(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false))

	log.WithPrefix("sync").WithField("game_id", "g1").WithPrefix("repo").Info("saved")

	out := buf.String()
	assert.Contains(t, out, "[repo]")
	assert.NotContains(t, out, "sync.repo")
	assert.Contains(t, out, "g1", "fields survive a prefix change")
}

func TestLogger_CallerIsLogSite(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithJSON(true))

	prev := logger.Default()
	logger.SetDefault(log)
	t.Cleanup(func() { logger.SetDefault(prev) })

	log.Info("from method")
	logger.Info("from package func")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, `"caller":"logger/logger_test.go:`)
	}
}
