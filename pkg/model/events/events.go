package events

import (
	"github.com/meshplus/txkernel/pkg/model"
)

type ExecutedEvent struct {
	Transaction *model.ExecutedTransaction
}

type FailedEvent struct {
	AccountID model.AccountID
	Err       error
}
