package repo

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/meshplus/txkernel/pkg/felt"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeAndUnmarshal(t *testing.T) {
	repoRoot, err := ioutil.TempDir("", "txkernel-repo")
	require.Nil(t, err)
	defer os.RemoveAll(repoRoot)

	assert.False(t, Initialized(repoRoot))
	require.Nil(t, Initialize(repoRoot))
	assert.True(t, Initialized(repoRoot))

	cfg, err := UnmarshalConfig(viper.New(), repoRoot, "")
	require.Nil(t, err)

	def, err := DefaultConfig()
	require.Nil(t, err)
	assert.Equal(t, repoRoot, cfg.RepoRoot)
	assert.Equal(t, def.Title, cfg.Title)
	assert.Equal(t, def.Port, cfg.Port)
	assert.Equal(t, def.Log, cfg.Log)
	assert.Equal(t, def.Gateway.AllowedOrigins, cfg.Gateway.AllowedOrigins)
	assert.Equal(t, felt.EmptyDigest.Hex(), cfg.Kernel.ProgramHash)
	assert.Equal(t, 200*time.Millisecond, cfg.Executor.RetryBackoff)
}

func TestUnmarshalConfigFromPath(t *testing.T) {
	repoRoot, err := ioutil.TempDir("", "txkernel-repo")
	require.Nil(t, err)
	defer os.RemoveAll(repoRoot)

	custom := filepath.Join(repoRoot, "custom.toml")
	content := `
title = "custom"

[port]
  gateway = 8080

[executor]
  retry_attempts = 2
  retry_backoff = "1s"

[kernel]
  program_hash = "0x01"
  procedures = ["0x02", "0x03"]
`
	require.Nil(t, ioutil.WriteFile(custom, []byte(content), 0644))

	cfg, err := UnmarshalConfig(viper.New(), repoRoot, custom)
	require.Nil(t, err)
	assert.Equal(t, "custom", cfg.Title)
	assert.Equal(t, int64(8080), cfg.Port.Gateway)
	assert.Equal(t, int64(40011), cfg.Port.Monitor)
	assert.Equal(t, uint(2), cfg.Executor.RetryAttempts)
	assert.Equal(t, time.Second, cfg.Executor.RetryBackoff)
	assert.Equal(t, []string{"0x02", "0x03"}, cfg.Kernel.Procedures)
	assert.True(t, Initialized(repoRoot))
}

func TestUnmarshalConfigMissing(t *testing.T) {
	repoRoot, err := ioutil.TempDir("", "txkernel-repo")
	require.Nil(t, err)
	defer os.RemoveAll(repoRoot)

	_, err = UnmarshalConfig(viper.New(), repoRoot, "")
	assert.NotNil(t, err)
}

func TestPathRoot(t *testing.T) {
	require.Nil(t, os.Setenv(envDir, "/tmp/txkernel"))
	defer os.Unsetenv(envDir)

	p, err := PathRoot()
	require.Nil(t, err)
	assert.Equal(t, "/tmp/txkernel", p)

	p, err = PathRootWithDefault("/data")
	require.Nil(t, err)
	assert.Equal(t, "/data", p)
}
