package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mchmarny/markingmenu/pkg/gesture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, gesture.DefaultOptions(), cfg.GestureOptions())
	assert.Len(t, cfg.ServerOptions(), 3)
}

func TestLoadFromReader(t *testing.T) {
	content := `
gesture:
  pause_delay: 350ms
  move_threshold: 12
server:
  port: 8080
log:
  level: debug
  file: /tmp/markmenu.log
`
	cfg, err := LoadFromReader(strings.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, 350*time.Millisecond, cfg.Gesture.PauseDelay)
	assert.Equal(t, 12.0, cfg.Gesture.MoveThreshold)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/markmenu.log", cfg.Log.File)

	// untouched keys keep their defaults
	assert.Equal(t, gesture.DefaultNeutralRadius, cfg.Gesture.NeutralRadius)
	assert.Equal(t, DefaultAspectRatio, cfg.Terminal.AspectRatio)
}

func TestLoadFromReaderInvalid(t *testing.T) {
	tests := map[string]string{
		"threshold": "gesture:\n  move_threshold: 0\n",
		"pause":     "gesture:\n  pause_delay: -1s\n",
		"port":      "server:\n  port: 70000\n",
		"aspect":    "terminal:\n  aspect_ratio: 0\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFromReader(strings.NewReader(content))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadFromReaderMalformed(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader("gesture: [unclosed"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markmenu.yaml")
	require.NoError(t, os.WriteFile(path, []byte("terminal:\n  aspect_ratio: 2.2\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2.2, cfg.Terminal.AspectRatio)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
