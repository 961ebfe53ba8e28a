package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	t.Setenv("SPK_CONFIG_PATH", filepath.Join(t.TempDir(), "config.yaml"))
	t.Setenv("SPK_LOG_LEVEL", "warn")

	assert.Equal(t, 0, run([]string{"--help"}))
	assert.Equal(t, 0, run([]string{"project", "install-lifecycle-pipeline", "--help"}))
	assert.Equal(t, 1, run([]string{"deploy"}))
	assert.Equal(t, 1, run([]string{"hld", "install-manifest-pipeline", "--no-such-flag"}))
}
