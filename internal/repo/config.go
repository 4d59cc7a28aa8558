package repo

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/fsnotify/fsnotify"
	"github.com/meshplus/txkernel/pkg/felt"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// defaultPathName is the default config dir name
	defaultPathName = ".txkernel"
	// defaultPathRoot is the path to the default config dir location.
	defaultPathRoot = "~/" + defaultPathName
	// envDir is the environment variable used to change the path root.
	envDir = "TXKERNEL_PATH"
	// envPrefix is prepended to every config key read from the environment.
	envPrefix = "TXKERNEL"
	// Config name
	configName = "txkernel.toml"
	// kernel source name
	kernelSourceName = "kernel.masm"
)

type Config struct {
	RepoRoot string   `toml:"-" json:"repo_root"`
	Title    string   `toml:"title" json:"title"`
	Port     Port     `toml:"port" json:"port"`
	Monitor  Monitor  `toml:"monitor" json:"monitor"`
	Limiter  Limiter  `toml:"limiter" json:"limiter"`
	Gateway  Gateway  `toml:"gateway" json:"gateway"`
	Log      Log      `toml:"log" json:"log"`
	Executor Executor `toml:"executor" json:"executor"`
	Storage  Storage  `toml:"storage" json:"storage"`
	Kernel   Kernel   `toml:"kernel" json:"kernel"`
}

type Port struct {
	Gateway int64 `toml:"gateway" json:"gateway"`
	Monitor int64 `toml:"monitor" json:"monitor"`
}

type Monitor struct {
	Enable bool `toml:"enable" json:"enable"`
}

type Limiter struct {
	Interval time.Duration `toml:"interval" json:"interval"`
	Quantum  int64         `toml:"quantum" json:"quantum"`
	Capacity int64         `toml:"capacity" json:"capacity"`
}

type Gateway struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" toml:"allowed_origins" json:"allowed_origins"`
}

type Log struct {
	Level        string    `toml:"level" json:"level"`
	Dir          string    `toml:"dir" json:"dir"`
	Filename     string    `toml:"filename" json:"filename"`
	ReportCaller bool      `mapstructure:"report_caller" toml:"report_caller" json:"report_caller"`
	Module       LogModule `toml:"module" json:"module"`
}

type LogModule struct {
	Kernel   string `toml:"kernel" json:"kernel"`
	Executor string `toml:"executor" json:"executor"`
	Storage  string `toml:"storage" json:"storage"`
	API      string `toml:"api" json:"api"`
	Profile  string `toml:"profile" json:"profile"`
}

// Executor controls how kernel runs are scheduled and retried.
type Executor struct {
	VMEndpoint    string        `mapstructure:"vm_endpoint" toml:"vm_endpoint" json:"vm_endpoint"`
	QueueSize     int           `mapstructure:"queue_size" toml:"queue_size" json:"queue_size"`
	RetryAttempts uint          `mapstructure:"retry_attempts" toml:"retry_attempts" json:"retry_attempts"`
	RetryBackoff  time.Duration `mapstructure:"retry_backoff" toml:"retry_backoff" json:"retry_backoff"`
	Timeout       time.Duration `toml:"timeout" json:"timeout"`
}

const (
	KVStorageTypeLeveldb = "leveldb"
	KVStorageTypeMemory  = "memory"
)

type Storage struct {
	Type      string `toml:"type" json:"type"`
	CacheSize int    `mapstructure:"cache_size" toml:"cache_size" json:"cache_size"`
}

// Kernel identifies the compiled transaction kernel the host drives. Digests
// are 0x-prefixed hex.
type Kernel struct {
	ProgramHash string   `mapstructure:"program_hash" toml:"program_hash" json:"program_hash"`
	Procedures  []string `toml:"procedures" json:"procedures"`
	SourcePath  string   `mapstructure:"source_path" toml:"source_path" json:"source_path"`
}

func (c *Config) Bytes() ([]byte, error) {
	ret, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}

	return ret, nil
}

func DefaultConfig() (*Config, error) {
	return &Config{
		Title: "txkernel configuration file",
		Port: Port{
			Gateway: 9091,
			Monitor: 40011,
		},
		Monitor: Monitor{Enable: false},
		Limiter: Limiter{
			Interval: 50 * time.Millisecond,
			Quantum:  500,
			Capacity: 10000,
		},
		Gateway: Gateway{AllowedOrigins: []string{"*"}},
		Log: Log{
			Level:    "info",
			Dir:      "logs",
			Filename: "txkernel.log",
			Module: LogModule{
				Kernel:   "info",
				Executor: "info",
				Storage:  "info",
				API:      "info",
				Profile:  "info",
			},
		},
		Executor: Executor{
			VMEndpoint:    "http://localhost:9092",
			QueueSize:     1024,
			RetryAttempts: 5,
			RetryBackoff:  200 * time.Millisecond,
			Timeout:       30 * time.Second,
		},
		Storage: Storage{
			Type:      KVStorageTypeLeveldb,
			CacheSize: 1024,
		},
		Kernel: Kernel{
			ProgramHash: felt.EmptyDigest.Hex(),
			Procedures:  []string{},
			SourcePath:  kernelSourceName,
		},
	}, nil
}

func UnmarshalConfig(viper *viper.Viper, repoRoot string, configPath string) (*Config, error) {
	if len(configPath) == 0 {
		viper.SetConfigFile(filepath.Join(repoRoot, configName))
	} else {
		viper.SetConfigFile(configPath)
		fileData, err := ioutil.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read txkernel config error: %w", err)
		}
		err = ioutil.WriteFile(filepath.Join(repoRoot, configName), fileData, 0644)
		if err != nil {
			return nil, fmt.Errorf("write txkernel config failed: %w", err)
		}
	}
	viper.SetConfigType("toml")
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("readInConfig error: %w", err)
	}

	config, err := DefaultConfig()
	if err != nil {
		return nil, err
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unmarshal config error: %w", err)
	}

	config.RepoRoot = repoRoot
	return config, nil
}

// WatchConfig sends a fresh Repo on feed every time the config file changes.
// Only the log levels and the rate limiter are reloaded by subscribers.
func WatchConfig(viper *viper.Viper, repoRoot string, feed *event.Feed) {
	viper.WatchConfig()
	viper.OnConfigChange(func(in fsnotify.Event) {
		fmt.Println("txkernel config file changed: ", in.String())

		config, err := DefaultConfig()
		if err != nil {
			fmt.Println("get default config: ", err)
			return
		}

		if err := viper.Unmarshal(config); err != nil {
			fmt.Println("unmarshal config: ", err)
			return
		}
		config.RepoRoot = repoRoot

		feed.Send(&Repo{Config: config})
	})
}

func PathRoot() (string, error) {
	dir := os.Getenv(envDir)
	var err error
	if len(dir) == 0 {
		dir, err = homedir.Expand(defaultPathRoot)
	}
	return dir, err
}

func PathRootWithDefault(path string) (string, error) {
	if len(path) == 0 {
		return PathRoot()
	}

	return path, nil
}
