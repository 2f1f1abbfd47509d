//go:build !tinygo

package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regis3d/demo"
)

func TestRunWithoutSceneIsUsageError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), demo.Usage)
	assert.Contains(t, stderr.String(), "need argument <1...4>")
	assert.Empty(t, stdout.String())
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-version"}, &stdout, &stderr))
	assert.NotEmpty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunBadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"-frames", "many", "1"}, &stdout, &stderr))
	assert.NotEmpty(t, stderr.String())
}

func TestRunSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-frames", "5", "-save-config", path}, &stdout, &stderr), stderr.String())
	assert.FileExists(t, path)
}
