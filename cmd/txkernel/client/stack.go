package client

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/fatih/color"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli"
)

func stackCMD() cli.Command {
	return cli.Command{
		Name:  "stack",
		Usage: "Build and parse kernel stacks",
		Subcommands: []cli.Command{
			{
				Name:  "input",
				Usage: "Build the input stack of a transaction",
				Flags: []cli.Flag{
					cli.StringFlag{
						Name:     "account",
						Usage:    "Account id, 0x-prefixed hex",
						Required: true,
					},
					cli.StringFlag{
						Name:  "init",
						Usage: "Initial account hash",
					},
					cli.StringFlag{
						Name:  "notes",
						Usage: "Input notes commitment",
					},
					cli.StringFlag{
						Name:  "block",
						Usage: "Reference block hash",
					},
				},
				Action: buildInputStack,
			},
			{
				Name:      "parse",
				Usage:     "Assemble transaction outputs from a stack, advice map and output notes",
				ArgsUsage: "<file>",
				Action:    parseOutputs,
			},
		},
	}
}

func buildInputStack(ctx *cli.Context) error {
	req := map[string]string{
		"account_id": ctx.String("account"),
	}
	for flag, field := range map[string]string{
		"init":  "initial_account_hash",
		"notes": "input_notes_commitment",
		"block": "block_hash",
	} {
		if v := ctx.String(flag); v != "" {
			req[field] = v
		}
	}

	data, err := json.Marshal(req)
	if err != nil {
		return err
	}

	ret, err := httpPost(ctx, getURL(ctx, "stack/input"), data)
	if err != nil {
		return fmt.Errorf("http post: %w", err)
	}

	if gjson.GetBytes(ret, "stack").IsArray() {
		color.Green("input stack of account %s\n", ctx.String("account"))
	}

	return printResult(ret)
}

func parseOutputs(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return fmt.Errorf("please input the outputs file")
	}

	data, err := ioutil.ReadFile(ctx.Args().Get(0))
	if err != nil {
		return fmt.Errorf("read outputs file: %w", err)
	}

	ret, err := httpPost(ctx, getURL(ctx, "outputs"), data)
	if err != nil {
		return fmt.Errorf("http post: %w", err)
	}

	return printResult(ret)
}
