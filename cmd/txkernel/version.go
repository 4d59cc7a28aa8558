package main

import (
	"fmt"

	"github.com/meshplus/txkernel"
	"github.com/urfave/cli"
)

func versionCMD() cli.Command {
	return cli.Command{
		Name:   "version",
		Usage:  "TxKernel version",
		Action: version,
	}
}

func version(ctx *cli.Context) error {
	printVersion()

	return nil
}

func printVersion() {
	info := txkernel.GetBuildInfo()
	fmt.Printf("TxKernel version: %s\n", info)
	if info.BuildDate != "" {
		fmt.Printf("App build date: %s\n", info.BuildDate)
	}
	fmt.Printf("System version: %s\n", info.Platform)
	fmt.Printf("Golang version: %s\n", info.GoVersion)
	fmt.Println()
}
