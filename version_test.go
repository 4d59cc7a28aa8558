package txkernel

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildInfo(t *testing.T) {
	info := GetBuildInfo()
	assert.Equal(t, "0.0.0", info.String())
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)

	info.Branch = "master"
	info.Commit = "3f2a1c9"
	assert.Equal(t, "0.0.0-master-3f2a1c9", info.String())

	info.Branch = ""
	assert.Equal(t, "0.0.0-3f2a1c9", info.String())
	assert.Equal(t, "0.0.0-3f2a1c9", info.Fields()["version"])
}
