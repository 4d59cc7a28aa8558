package repo

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/meshplus/bitxhub-kit/fileutil"
	"github.com/pelletier/go-toml"
)

// Initialize writes the default config into repoRoot.
func Initialize(repoRoot string) error {
	if _, err := os.Stat(repoRoot); os.IsNotExist(err) {
		if err := os.MkdirAll(repoRoot, 0755); err != nil {
			return fmt.Errorf("create folder failed: %w", err)
		}
	}

	config, err := DefaultConfig()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(*config)
	if err != nil {
		return fmt.Errorf("marshal default config failed: %w", err)
	}

	return ioutil.WriteFile(filepath.Join(repoRoot, configName), data, 0644)
}

func Initialized(repoRoot string) bool {
	return fileutil.Exist(filepath.Join(repoRoot, configName))
}
