package repo

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStoragePath(t *testing.T) {
	p := GetStoragePath("/data", "tx")
	assert.Equal(t, "/data/storage/tx", p)
	p = GetStoragePath("/data")
	assert.Equal(t, "/data/storage", p)
}

func TestKernelSource(t *testing.T) {
	repoRoot, err := ioutil.TempDir("", "txkernel-repo")
	require.Nil(t, err)
	defer os.RemoveAll(repoRoot)
	require.Nil(t, Initialize(repoRoot))

	r, err := Load(viper.New(), repoRoot, "")
	require.Nil(t, err)

	source, err := r.KernelSource()
	require.Nil(t, err)
	assert.Empty(t, source)

	require.Nil(t, ioutil.WriteFile(filepath.Join(repoRoot, kernelSourceName), []byte("begin end"), 0644))
	source, err = r.KernelSource()
	require.Nil(t, err)
	assert.Equal(t, "begin end", source)
}
