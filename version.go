package txkernel

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// Set through -ldflags "-X github.com/meshplus/txkernel.Version=..." at build time.
var (
	Version   = "0.0.0"
	Branch    = ""
	Commit    = ""
	BuildDate = ""
)

// BuildInfo describes the running txkernel binary.
type BuildInfo struct {
	Version   string `json:"version"`
	Branch    string `json:"branch,omitempty"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Branch:    Branch,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String joins version, branch and commit, skipping the parts a dev build
// leaves empty.
func (b BuildInfo) String() string {
	parts := []string{b.Version}
	for _, p := range []string{b.Branch, b.Commit} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "-")
}

func (b BuildInfo) Fields() logrus.Fields {
	return logrus.Fields{
		"version":  b.String(),
		"go":       b.GoVersion,
		"platform": b.Platform,
	}
}
