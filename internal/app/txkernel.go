package app

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/ethereum/go-ethereum/event"
	"github.com/meshplus/txkernel"
	"github.com/meshplus/txkernel/api/gateway"
	"github.com/meshplus/txkernel/internal/executor"
	"github.com/meshplus/txkernel/internal/kernel"
	"github.com/meshplus/txkernel/internal/loggers"
	"github.com/meshplus/txkernel/internal/profile"
	"github.com/meshplus/txkernel/internal/repo"
	"github.com/meshplus/txkernel/internal/storagemgr"
	"github.com/meshplus/txkernel/internal/store"
	"github.com/meshplus/txkernel/pkg/vm"
	"github.com/sirupsen/logrus"
)

type TxKernel struct {
	Executor executor.Executor
	Store    *store.TransactionStore
	Provider kernel.ProgramProvider

	Monitor *profile.Monitor
	Gateway *gateway.Gateway

	// ConfigFeed carries a fresh *repo.Repo every time the config file changes.
	ConfigFeed event.Feed

	repo   *repo.Repo
	logger logrus.FieldLogger

	Ctx    context.Context
	Cancel context.CancelFunc
}

func NewTxKernel(rep *repo.Repo, machine vm.Executor) (*TxKernel, error) {
	config := rep.Config
	logger := loggers.Logger(loggers.App)

	source, err := rep.KernelSource()
	if err != nil {
		return nil, err
	}

	provider, err := kernel.NewProviderFromHex(source, config.Kernel.ProgramHash, config.Kernel.Procedures)
	if err != nil {
		return nil, fmt.Errorf("load transaction kernel: %w", err)
	}
	loggers.Logger(loggers.Kernel).WithFields(logrus.Fields{
		"program": provider.ProgramInfo().ProgramHash(),
		"kernel":  provider.ProgramInfo().Kernel().Hash(),
		"procs":   provider.ProgramInfo().Kernel().ProcCount(),
		"source":  len(source),
	}).Info("Loaded transaction kernel")

	if err := storagemgr.Initialize(config.RepoRoot, config.Storage.Type); err != nil {
		return nil, fmt.Errorf("storagemgr initialize: %w", err)
	}

	db, err := storagemgr.Open(storagemgr.Transactions)
	if err != nil {
		return nil, fmt.Errorf("open transaction storage: %w", err)
	}

	txStore, err := store.NewTransactionStore(db, config.Storage.CacheSize, loggers.Logger(loggers.Storage))
	if err != nil {
		return nil, fmt.Errorf("create transaction store: %w", err)
	}

	txExec, err := executor.New(machine, provider, txStore, config.Executor, loggers.Logger(loggers.Executor))
	if err != nil {
		return nil, fmt.Errorf("create TransactionExecutor: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &TxKernel{
		Executor: txExec,
		Store:    txStore,
		Provider: provider,
		repo:     rep,
		logger:   logger,
		Ctx:      ctx,
		Cancel:   cancel,
	}, nil
}

func (k *TxKernel) Start() error {
	if k.repo.Config.Storage.Type == repo.KVStorageTypeLeveldb {
		if err := k.raiseUlimit(2048); err != nil {
			return fmt.Errorf("raise ulimit: %w", err)
		}
	}

	if err := k.Executor.Start(); err != nil {
		return fmt.Errorf("transaction executor start: %w", err)
	}

	go k.listenEvent()

	k.printLogo()

	return nil
}

func (k *TxKernel) Stop() error {
	if err := k.Executor.Stop(); err != nil {
		return fmt.Errorf("transaction executor stop: %w", err)
	}

	if k.Gateway != nil {
		if err := k.Gateway.Stop(); err != nil {
			return fmt.Errorf("gateway stop: %w", err)
		}
	}

	if k.Monitor != nil {
		if err := k.Monitor.Stop(); err != nil {
			return fmt.Errorf("monitor stop: %w", err)
		}
	}

	k.Cancel()

	if err := storagemgr.CloseAll(); err != nil {
		return fmt.Errorf("close storages: %w", err)
	}

	k.logger.Info("TxKernel stopped")

	return nil
}

func (k *TxKernel) ReConfig(repo *repo.Repo) {
	if repo.Config == nil {
		return
	}
	config := repo.Config
	loggers.ReConfig(config)

	if k.Gateway != nil {
		if err := k.Gateway.ReConfig(config); err != nil {
			k.logger.Errorf("reconfig gateway failed: %v", err)
		}
	}

	if k.Monitor != nil {
		if err := k.Monitor.ReConfig(config); err != nil {
			k.logger.Errorf("reconfig Monitor failed: %v", err)
		}
	}
}

func (k *TxKernel) printLogo() {
	k.logger.WithFields(txkernel.GetBuildInfo().Fields()).WithFields(logrus.Fields{
		"program": k.Provider.ProgramInfo().ProgramHash(),
		"procs":   k.Provider.ProgramInfo().Kernel().ProcCount(),
	}).Info("Transaction kernel is ready")
	fmt.Println()
	fmt.Println("=======================================================")
	fig := figure.NewFigure("TxKernel", "slant", true)
	fig.Print()
	fmt.Println()
	fmt.Println("=======================================================")
	fmt.Println()
}

func (k *TxKernel) raiseUlimit(limitNew uint64) error {
	_, err := fdlimit.Raise(limitNew)
	if err != nil {
		return fmt.Errorf("set limit failed: %w", err)
	}

	var limit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &limit); err != nil {
		return fmt.Errorf("getrlimit error: %w", err)
	}

	if limit.Cur != limitNew && limit.Cur != limit.Max {
		return errors.New("failed to raise ulimit")
	}

	k.logger.WithFields(logrus.Fields{
		"ulimit": limit.Cur,
	}).Infof("Ulimit raised")

	return nil
}
