package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/Rican7/retry"
	"github.com/Rican7/retry/backoff"
	"github.com/Rican7/retry/strategy"
	"github.com/ethereum/go-ethereum/event"
	"github.com/meshplus/txkernel/internal/kernel"
	"github.com/meshplus/txkernel/internal/repo"
	"github.com/meshplus/txkernel/pkg/model"
	"github.com/meshplus/txkernel/pkg/model/events"
	"github.com/meshplus/txkernel/pkg/vm"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrExecutorStopped = errors.New("executor stopped")
	ErrQueueFull       = errors.New("executor queue is full")

	// ErrPersistTransaction wraps store failures after a successful execution.
	ErrPersistTransaction = errors.New("persist executed transaction")
)

var _ Executor = (*TransactionExecutor)(nil)

// TransactionExecutor drives the transaction kernel on a VM and turns what the
// kernel leaves behind into executed transactions.
type TransactionExecutor struct {
	vm           vm.Executor
	provider     kernel.ProgramProvider
	store        Store
	logger       logrus.FieldLogger
	config       repo.Executor
	txC          chan *TransactionContext
	executedFeed event.Feed
	failedFeed   event.Feed
	ctx          context.Context
	cancel       context.CancelFunc
}

// New creates executor instance
func New(machine vm.Executor, provider kernel.ProgramProvider, store Store, config repo.Executor, logger logrus.FieldLogger) (*TransactionExecutor, error) {
	if machine == nil || provider == nil || store == nil {
		return nil, fmt.Errorf("vm, program provider and store are required")
	}
	if config.RetryAttempts == 0 {
		config.RetryAttempts = 1
	}
	if config.QueueSize == 0 {
		config.QueueSize = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &TransactionExecutor{
		vm:       machine,
		provider: provider,
		store:    store,
		logger:   logger,
		config:   config,
		txC:      make(chan *TransactionContext, config.QueueSize),
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start starts executor
func (exec *TransactionExecutor) Start() error {
	go exec.listenSubmitEvent()

	exec.logger.WithFields(logrus.Fields{
		"program": exec.provider.ProgramInfo().ProgramHash(),
		"kernel":  exec.provider.ProgramInfo().Kernel().Hash(),
	}).Info("TransactionExecutor started")

	return nil
}

// Stop stops executor
func (exec *TransactionExecutor) Stop() error {
	exec.cancel()

	exec.logger.Info("TransactionExecutor stopped")

	return nil
}

// Submit queues txCtx without waiting. The outcome is published on the
// executed or failed feed.
func (exec *TransactionExecutor) Submit(txCtx *TransactionContext) error {
	select {
	case <-exec.ctx.Done():
		return ErrExecutorStopped
	default:
	}

	select {
	case exec.txC <- txCtx:
		return nil
	default:
		return ErrQueueFull
	}
}

// SubscribeExecutedEvent registers a subscription of ExecutedEvent.
func (exec *TransactionExecutor) SubscribeExecutedEvent(ch chan<- events.ExecutedEvent) event.Subscription {
	return exec.executedFeed.Subscribe(ch)
}

// SubscribeFailedEvent registers a subscription of FailedEvent.
func (exec *TransactionExecutor) SubscribeFailedEvent(ch chan<- events.FailedEvent) event.Subscription {
	return exec.failedFeed.Subscribe(ch)
}

func (exec *TransactionExecutor) listenSubmitEvent() {
	for {
		select {
		case txCtx := <-exec.txC:
			if _, err := exec.Execute(exec.ctx, txCtx); err != nil {
				exec.failedFeed.Send(events.FailedEvent{AccountID: txCtx.AccountID, Err: err})
			}
		case <-exec.ctx.Done():
			return
		}
	}
}

// Execute runs the kernel once for txCtx. VM failures marked transient are
// retried; any other failure, and any output that does not pass validation,
// is returned as is and nothing is persisted.
func (exec *TransactionExecutor) Execute(ctx context.Context, txCtx *TransactionContext) (*model.ExecutedTransaction, error) {
	current := time.Now()
	if exec.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, exec.config.Timeout)
		defer cancel()
	}

	tx, err := exec.execute(ctx, txCtx)
	if err != nil {
		executeTxCounter.WithLabelValues("failed").Inc()
		exec.logger.WithFields(logrus.Fields{
			"account": txCtx.AccountID,
			"err":     err,
		}).Warn("Execute transaction failed")
		return nil, err
	}

	executeTxCounter.WithLabelValues("executed").Inc()
	executeTxDuration.Observe(float64(time.Since(current)) / float64(time.Second))
	exec.executedFeed.Send(events.ExecutedEvent{Transaction: tx})

	exec.logger.WithFields(logrus.Fields{
		"id":      tx.ID,
		"account": tx.AccountID,
		"notes":   tx.Outputs.OutputNotes.Len(),
		"elapse":  time.Since(current),
	}).Info("Executed transaction")

	return tx, nil
}

func (exec *TransactionExecutor) execute(ctx context.Context, txCtx *TransactionContext) (*model.ExecutedTransaction, error) {
	program := exec.provider.ProgramInfo()
	stack := kernel.BuildInputStackForProgram(program, txCtx.AccountID,
		txCtx.InitialAccountHash, txCtx.InputNotesCommitment, txCtx.BlockHash)

	result, err := exec.runVM(ctx, program, stack, txCtx.adviceInputs())
	if err != nil {
		return nil, err
	}
	vmCycles.Observe(float64(result.Cycles))
	outputNotesCount.Observe(float64(len(result.OutputNotes)))

	if err := exec.observeKernel(result); err != nil {
		return nil, err
	}

	outputs, err := kernel.FromTransactionParts(result.Stack, result.AdviceMap, result.OutputNotes)
	if err != nil {
		return nil, err
	}

	tx := &model.ExecutedTransaction{
		ID: model.NewTransactionID(
			txCtx.InitialAccountHash,
			outputs.FinalAccountHash,
			txCtx.InputNotesCommitment,
			outputs.OutputNotes.Commitment(),
		),
		AccountID:            txCtx.AccountID,
		InitialAccountHash:   txCtx.InitialAccountHash,
		InputNotesCommitment: txCtx.InputNotesCommitment,
		BlockHash:            txCtx.BlockHash,
		ProgramHash:          program.ProgramHash(),
		Outputs:              outputs,
	}

	if err := exec.store.Put(tx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistTransaction, err)
	}

	return tx, nil
}

// observeKernel logs the phase traces and counts the events the kernel
// emitted. Ids outside the kernel's space belong to other libraries and are
// skipped; an id inside it that names no event fails the transaction.
func (exec *TransactionExecutor) observeKernel(result *vm.ExecutionResult) error {
	for _, id := range result.Traces {
		trace, err := kernel.ParseTransactionTrace(id)
		if err != nil {
			continue
		}
		exec.logger.WithField("trace", trace).Debug("Kernel trace")
	}

	for _, id := range result.Events {
		ev, err := kernel.ParseTransactionEvent(id)
		if err != nil {
			var foreign *kernel.NotTransactionEventError
			if errors.As(err, &foreign) {
				kernelEventCounter.WithLabelValues("foreign").Inc()
				continue
			}
			return err
		}
		kernelEventCounter.WithLabelValues(ev.String()).Inc()
	}

	return nil
}

func (exec *TransactionExecutor) runVM(ctx context.Context, program *vm.ProgramInfo, stack *vm.StackInputs, advice *vm.AdviceInputs) (*vm.ExecutionResult, error) {
	var (
		result    *vm.ExecutionResult
		permanent error
	)

	err := retry.Retry(func(attempt uint) error {
		if err := ctx.Err(); err != nil {
			permanent = err
			return nil
		}

		res, err := exec.vm.Execute(ctx, program, stack, advice)
		if err != nil {
			if errors.Is(err, vm.ErrTransient) {
				exec.logger.WithFields(logrus.Fields{
					"attempt": attempt,
					"err":     err,
				}).Warn("Retry kernel execution")
				return err
			}
			permanent = err
			return nil
		}

		result = res
		return nil
	}, strategy.Limit(exec.config.RetryAttempts), strategy.Backoff(backoff.Fibonacci(exec.config.RetryBackoff)))
	if err != nil {
		return nil, fmt.Errorf("execute kernel after %d attempts: %w", exec.config.RetryAttempts, err)
	}
	if permanent != nil {
		return nil, fmt.Errorf("execute kernel: %w", permanent)
	}
	if result == nil || result.Stack == nil {
		return nil, errors.Wrap(model.ErrOutputStackInvalid, "vm returned no output stack")
	}

	return result, nil
}
