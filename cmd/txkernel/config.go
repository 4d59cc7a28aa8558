package main

import (
	"encoding/json"
	"fmt"

	"github.com/hokaccha/go-prettyjson"
	"github.com/meshplus/txkernel/internal/repo"
	"github.com/spf13/viper"
	"github.com/urfave/cli"
)

func configCMD() cli.Command {
	return cli.Command{
		Name:      "config",
		Usage:     "Show TxKernel config",
		ArgsUsage: "[section]",
		Action:    showConfig,
	}
}

func showConfig(ctx *cli.Context) error {
	repoRoot, err := repo.PathRootWithDefault(ctx.GlobalString("repo"))
	if err != nil {
		return fmt.Errorf("pathRoot error: %w", err)
	}

	cfg, err := repo.UnmarshalConfig(viper.New(), repoRoot, "")
	if err != nil {
		return fmt.Errorf("unmarshal config error: %w", err)
	}

	if ctx.NArg() == 0 {
		s, err := prettyjson.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config error: %w", err)
		}

		fmt.Println(string(s))

		return nil
	}

	m := make(map[string]interface{})
	data, err := cfg.Bytes()
	if err != nil {
		return fmt.Errorf("convert config to bytes failed: %w", err)
	}

	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("unmarshal data error: %w", err)
	}

	v, ok := m[ctx.Args()[0]]
	if !ok {
		return fmt.Errorf("no config section named %s", ctx.Args()[0])
	}

	s, err := prettyjson.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal config error: %w", err)
	}

	fmt.Println(string(s))

	return nil
}
