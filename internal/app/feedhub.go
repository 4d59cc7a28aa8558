package app

import (
	"github.com/meshplus/txkernel/internal/repo"
	"github.com/meshplus/txkernel/pkg/model/events"
	"github.com/sirupsen/logrus"
)

func (k *TxKernel) listenEvent() {
	executedCh := make(chan events.ExecutedEvent)
	failedCh := make(chan events.FailedEvent)
	configCh := make(chan *repo.Repo)

	executedSub := k.Executor.SubscribeExecutedEvent(executedCh)
	failedSub := k.Executor.SubscribeFailedEvent(failedCh)
	configSub := k.ConfigFeed.Subscribe(configCh)

	defer executedSub.Unsubscribe()
	defer failedSub.Unsubscribe()
	defer configSub.Unsubscribe()

	for {
		select {
		case ev := <-executedCh:
			k.logger.WithFields(logrus.Fields{
				"id":      ev.Transaction.ID,
				"account": ev.Transaction.AccountID,
				"notes":   ev.Transaction.Outputs.OutputNotes.Len(),
			}).Debug("Transaction committed")
		case ev := <-failedCh:
			k.logger.WithFields(logrus.Fields{
				"account": ev.AccountID,
				"err":     ev.Err,
			}).Warn("Submitted transaction failed")
		case config := <-configCh:
			k.ReConfig(config)
		case <-k.Ctx.Done():
			return
		}
	}
}
