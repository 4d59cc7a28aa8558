package main

import (
	"fmt"
	"os"
	"time"

	"github.com/meshplus/txkernel/cmd/txkernel/client"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "TxKernel"
	app.Usage = "Host side of the transaction kernel"
	app.Compiled = time.Now()

	cli.VersionPrinter = func(c *cli.Context) {
		printVersion()
	}

	// global flags
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "repo",
			Usage: "TxKernel storage repo path",
		},
	}

	app.Commands = []cli.Command{
		configCMD(),
		initCMD(),
		startCMD(),
		versionCMD(),
		client.LoadClientCMD(),
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Println(err)
	}
}
