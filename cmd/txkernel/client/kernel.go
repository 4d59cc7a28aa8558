package client

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/urfave/cli"
)

func kernelCMD() cli.Command {
	return cli.Command{
		Name:  "kernel",
		Usage: "Query the transaction kernel driven by the host",
		Flags: []cli.Flag{
			cli.BoolFlag{
				Name:  "source",
				Usage: "Print the kernel source instead of its procedure hashes",
			},
		},
		Action: getKernel,
	}
}

func getKernel(ctx *cli.Context) error {
	if ctx.Bool("source") {
		data, err := httpGet(ctx, getURL(ctx, "kernel/source"))
		if err != nil {
			return fmt.Errorf("http get: %w", err)
		}
		if msg := gjson.GetBytes(data, "error"); msg.Exists() {
			return fmt.Errorf("get kernel source: %s", msg.String())
		}
		fmt.Println(string(data))
		return nil
	}

	data, err := httpGet(ctx, getURL(ctx, "kernel"))
	if err != nil {
		return fmt.Errorf("http get: %w", err)
	}

	return printResult(data)
}
