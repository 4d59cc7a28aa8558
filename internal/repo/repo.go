package repo

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Repo struct {
	Config *Config
}

// Load reads the config of an initialized repo. A non-empty configPath
// replaces the repo's config file first.
func Load(v *viper.Viper, repoRoot string, configPath string) (*Repo, error) {
	config, err := UnmarshalConfig(v, repoRoot, configPath)
	if err != nil {
		return nil, err
	}

	return &Repo{Config: config}, nil
}

// KernelSource reads the kernel source file named by the config. A missing
// file yields an empty source.
func (r *Repo) KernelSource() (string, error) {
	p := r.Config.Kernel.SourcePath
	if len(p) == 0 {
		return "", nil
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(r.Config.RepoRoot, p)
	}

	data, err := ioutil.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read kernel source: %w", err)
	}

	return string(data), nil
}

func GetStoragePath(repoRoot string, subPath ...string) string {
	p := filepath.Join(repoRoot, "storage")
	for _, s := range subPath {
		p = filepath.Join(p, s)
	}

	return p
}
