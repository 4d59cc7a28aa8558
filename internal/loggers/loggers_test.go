package loggers

import (
	"testing"

	"github.com/meshplus/txkernel/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	config, err := repo.DefaultConfig()
	require.Nil(t, err)
	Initialize(config)

	for _, name := range []string{Kernel, Executor, Storage, API, App, Profile} {
		assert.NotNil(t, Logger(name), name)
	}

	config.Log.Module.Executor = "debug"
	ReConfig(config)
	assert.NotNil(t, Logger(Executor))
}
