package executor

import (
	"context"

	"github.com/ethereum/go-ethereum/event"
	"github.com/meshplus/txkernel/pkg/model"
	"github.com/meshplus/txkernel/pkg/model/events"
)

type Executor interface {
	// Start
	Start() error

	// Stop
	Stop() error

	// Execute runs the kernel for txCtx and returns the validated result.
	Execute(ctx context.Context, txCtx *TransactionContext) (*model.ExecutedTransaction, error)

	// Submit queues txCtx for asynchronous execution.
	Submit(txCtx *TransactionContext) error

	// SubscribeExecutedEvent
	SubscribeExecutedEvent(chan<- events.ExecutedEvent) event.Subscription

	// SubscribeFailedEvent
	SubscribeFailedEvent(chan<- events.FailedEvent) event.Subscription
}

// Store persists executed transactions.
type Store interface {
	Put(tx *model.ExecutedTransaction) error
}
