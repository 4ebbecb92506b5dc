package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadEnvKeepsExistingValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GB_TEST_FROM_FILE=file\nGB_TEST_PRESET=file\n"), 0o600))
	t.Setenv("GB_TEST_PRESET", "env")
	t.Setenv("GB_TEST_FROM_FILE", "")
	os.Unsetenv("GB_TEST_FROM_FILE")

	LoadEnv(zap.NewNop(), path)

	assert.Equal(t, "file", os.Getenv("GB_TEST_FROM_FILE"))
	assert.Equal(t, "env", os.Getenv("GB_TEST_PRESET"))
}

func TestLoadEnvMissingFile(t *testing.T) {
	LoadEnv(zap.NewNop(), filepath.Join(t.TempDir(), "missing.env"))
}
