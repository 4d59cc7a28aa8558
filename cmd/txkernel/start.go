package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/meshplus/bitxhub-kit/log"
	"github.com/meshplus/txkernel/api/gateway"
	"github.com/meshplus/txkernel/internal/app"
	"github.com/meshplus/txkernel/internal/loggers"
	"github.com/meshplus/txkernel/internal/profile"
	"github.com/meshplus/txkernel/internal/repo"
	"github.com/meshplus/txkernel/pkg/vm/remote"
	"github.com/spf13/viper"
	"github.com/urfave/cli"
)

func startCMD() cli.Command {
	return cli.Command{
		Name:  "start",
		Usage: "Start a long-running transaction kernel host",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "config",
				Usage: "txkernel config path",
			},
			cli.StringFlag{
				Name:  "vm",
				Usage: "VM service endpoint, overrides executor.vm_endpoint",
			},
		},
		Action: start,
	}
}

func start(ctx *cli.Context) error {
	repoRoot, err := repo.PathRootWithDefault(ctx.GlobalString("repo"))
	if err != nil {
		return fmt.Errorf("get repo path: %w", err)
	}

	v := viper.New()
	rep, err := repo.Load(v, repoRoot, ctx.String("config"))
	if err != nil {
		return fmt.Errorf("repo load: %w", err)
	}

	err = log.Initialize(
		log.WithReportCaller(rep.Config.Log.ReportCaller),
		log.WithPersist(true),
		log.WithFilePath(filepath.Join(repoRoot, rep.Config.Log.Dir)),
		log.WithFileName(rep.Config.Log.Filename),
		log.WithMaxAge(90*24*time.Hour),
		log.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return fmt.Errorf("log initialize: %w", err)
	}

	loggers.Initialize(rep.Config)

	printVersion()

	endpoint := rep.Config.Executor.VMEndpoint
	if ctx.IsSet("vm") {
		endpoint = ctx.String("vm")
	}

	node, err := app.NewTxKernel(rep, remote.New(endpoint, rep.Config.Executor.Timeout))
	if err != nil {
		return err
	}

	monitor, err := profile.NewMonitor(rep.Config)
	if err != nil {
		return err
	}
	if err := monitor.Start(); err != nil {
		return err
	}

	gw, err := gateway.NewGateway(rep.Config, node.Provider, node.Executor, node.Store)
	if err != nil {
		return err
	}
	if err := gw.Start(); err != nil {
		fmt.Println(err)
	}

	node.Monitor = monitor
	node.Gateway = gw

	repo.WatchConfig(v, repoRoot, &node.ConfigFeed)

	var wg sync.WaitGroup
	wg.Add(1)
	handleShutdown(node, &wg)

	if err := node.Start(); err != nil {
		return err
	}

	wg.Wait()

	return nil
}

func handleShutdown(node *app.TxKernel, wg *sync.WaitGroup) {
	var stop = make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM)
	signal.Notify(stop, syscall.SIGINT)

	go func() {
		<-stop
		fmt.Println("received interrupt signal, shutting down...")
		if err := node.Stop(); err != nil {
			panic(err)
		}
		wg.Done()
		os.Exit(0)
	}()
}
