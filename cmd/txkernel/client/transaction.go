package client

import (
	"fmt"
	"io/ioutil"

	"github.com/fatih/color"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli"
)

func txCMD() cli.Command {
	return cli.Command{
		Name:  "tx",
		Usage: "Execute and query transactions",
		Subcommands: []cli.Command{
			{
				Name:      "execute",
				Usage:     "Execute a transaction described by a json file",
				ArgsUsage: "<file>",
				Action:    executeTransaction,
			},
			{
				Name:      "submit",
				Usage:     "Queue a transaction described by a json file without waiting for it",
				ArgsUsage: "<file>",
				Action:    submitTransaction,
			},
			{
				Name:      "get",
				Usage:     "Query transaction by transaction id",
				ArgsUsage: "<id>",
				Action:    getTransaction,
			},
			{
				Name:      "list",
				Usage:     "List the transactions of an account",
				ArgsUsage: "<account>",
				Action:    listTransactions,
			},
		},
	}
}

func executeTransaction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return fmt.Errorf("please input the transaction file")
	}

	data, err := ioutil.ReadFile(ctx.Args().Get(0))
	if err != nil {
		return fmt.Errorf("read transaction file: %w", err)
	}

	ret, err := httpPost(ctx, getURL(ctx, "transactions"), data)
	if err != nil {
		return fmt.Errorf("http post: %w", err)
	}

	if id := gjson.GetBytes(ret, "id"); id.Exists() {
		color.Green("transaction id is %s\n", id.String())
		return nil
	}

	return printResult(ret)
}

func submitTransaction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return fmt.Errorf("please input the transaction file")
	}

	data, err := ioutil.ReadFile(ctx.Args().Get(0))
	if err != nil {
		return fmt.Errorf("read transaction file: %w", err)
	}

	ret, err := httpPost(ctx, getURL(ctx, "transactions?async=true"), data)
	if err != nil {
		return fmt.Errorf("http post: %w", err)
	}

	if gjson.GetBytes(ret, "status").String() == "queued" {
		color.Green("transaction of account %s queued\n", gjson.GetBytes(ret, "account_id").String())
		return nil
	}

	return printResult(ret)
}

func getTransaction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return fmt.Errorf("please input transaction id")
	}

	id := ctx.Args().Get(0)
	data, err := httpGet(ctx, getURL(ctx, "transactions/"+id))
	if err != nil {
		return fmt.Errorf("get transaction %s failed: %w", id, err)
	}

	return printResult(data)
}

func listTransactions(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return fmt.Errorf("please input account id")
	}

	acct := ctx.Args().Get(0)
	data, err := httpGet(ctx, getURL(ctx, "accounts/"+acct+"/transactions"))
	if err != nil {
		return fmt.Errorf("list transactions of %s failed: %w", acct, err)
	}

	return printResult(data)
}
