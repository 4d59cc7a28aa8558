package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/meshplus/txkernel/internal/executor"
	"github.com/meshplus/txkernel/internal/kernel"
	"github.com/meshplus/txkernel/internal/profile"
	"github.com/meshplus/txkernel/internal/repo"
	"github.com/meshplus/txkernel/pkg/felt"
	"github.com/meshplus/txkernel/pkg/model"
	"github.com/meshplus/txkernel/pkg/model/events"
	"github.com/meshplus/txkernel/pkg/vm"
	"github.com/meshplus/txkernel/pkg/vm/mock_vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRepo(t *testing.T) *repo.Repo {
	config, err := repo.DefaultConfig()
	require.Nil(t, err)
	config.RepoRoot = t.TempDir()
	config.Storage.Type = repo.KVStorageTypeMemory
	config.Kernel.ProgramHash = felt.Digest{9}.Hex()
	config.Kernel.Procedures = []string{felt.Digest{1}.Hex(), felt.Digest{2}.Hex()}
	return &repo.Repo{Config: config}
}

func TestNewTxKernel_BadKernel(t *testing.T) {
	rep := testRepo(t)
	rep.Config.Kernel.Procedures = []string{felt.Digest{1}.Hex(), felt.Digest{1}.Hex()}

	_, err := NewTxKernel(rep, mock_vm.NewMockExecutor(gomock.NewController(t)))
	assert.NotNil(t, err)

	rep = testRepo(t)
	rep.Config.Storage.Type = "rocksdb"
	_, err = NewTxKernel(rep, mock_vm.NewMockExecutor(gomock.NewController(t)))
	assert.NotNil(t, err)
}

func TestTxKernel(t *testing.T) {
	ctrl := gomock.NewController(t)
	machine := mock_vm.NewMockExecutor(ctrl)
	rep := testRepo(t)

	node, err := NewTxKernel(rep, machine)
	require.Nil(t, err)
	assert.Equal(t, uint16(2), node.Provider.ProgramInfo().Kernel().ProcCount())

	monitor, err := profile.NewMonitor(rep.Config)
	require.Nil(t, err)
	node.Monitor = monitor

	stub := &model.AccountStub{
		ID:          7,
		Nonce:       1,
		VaultRoot:   felt.Digest{4},
		StorageRoot: felt.Digest{5},
		CodeRoot:    felt.Digest{6},
	}
	notes, err := model.NewOutputNotes(nil)
	require.Nil(t, err)
	adviceMap := vm.NewAdviceMap()
	adviceMap.Insert(stub.Hash(), felt.FlattenWords(stub.Words()))

	machine.EXPECT().Execute(gomock.Any(), node.Provider.ProgramInfo(), gomock.Any(), gomock.Any()).
		Return(&vm.ExecutionResult{
			Stack:     kernel.BuildOutputStack(stub.Hash(), notes.Commitment()),
			AdviceMap: adviceMap,
		}, nil)

	require.Nil(t, node.Start())

	tx, err := node.Executor.Execute(context.Background(), &executor.TransactionContext{
		AccountID:          7,
		InitialAccountHash: felt.Digest{3},
	})
	require.Nil(t, err)

	stored, err := node.Store.Get(tx.ID)
	require.Nil(t, err)
	assert.Equal(t, *stub, stored.Outputs.Account)

	failedC := make(chan events.FailedEvent, 1)
	sub := node.Executor.SubscribeFailedEvent(failedC)
	defer sub.Unsubscribe()

	machine.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("kernel assertion failed"))
	require.Nil(t, node.Executor.Submit(&executor.TransactionContext{AccountID: 8}))
	select {
	case ev := <-failedC:
		assert.Equal(t, model.AccountID(8), ev.AccountID)
	case <-time.After(5 * time.Second):
		t.Fatal("no failed event")
	}

	node.ReConfig(rep)
	require.Nil(t, node.Stop())
}
