package store

import (
	"testing"

	"github.com/meshplus/bitxhub-kit/log"
	"github.com/meshplus/txkernel/pkg/felt"
	"github.com/meshplus/txkernel/pkg/model"
	"github.com/meshplus/txkernel/pkg/storage/leveldb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockTransaction(t *testing.T, acct model.AccountID, seed uint64) *model.ExecutedTransaction {
	public := &model.Note{
		Recipient: felt.Digest{felt.New(seed), 1, 2, 3},
		Assets:    []felt.Word{{felt.New(seed), 5, 6, 7}},
		Metadata:  model.NoteMetadata{Sender: acct, Tag: 9},
	}
	private := model.NewPrivateOutputNote(felt.Digest{felt.New(seed), 9, 9, 9}, model.NoteMetadata{Sender: acct, Aux: 1})

	notes, err := model.NewOutputNotes([]model.OutputNote{model.NewPublicOutputNote(public), private})
	require.Nil(t, err)

	outputs := &model.TransactionOutputs{
		FinalAccountHash: felt.Digest{felt.New(seed), 6},
		Account: model.AccountStub{
			ID:        acct,
			Nonce:     felt.New(seed),
			VaultRoot: felt.Digest{1},
			CodeRoot:  felt.Digest{2},
		},
		OutputNotes: notes,
	}
	initial := felt.Digest{felt.New(seed), 4}
	inputNotes := felt.Digest{felt.New(seed), 5}

	return &model.ExecutedTransaction{
		ID:                   model.NewTransactionID(initial, outputs.FinalAccountHash, inputNotes, notes.Commitment()),
		AccountID:            acct,
		InitialAccountHash:   initial,
		InputNotesCommitment: inputNotes,
		BlockHash:            felt.Digest{7},
		ProgramHash:          felt.Digest{8},
		Outputs:              outputs,
	}
}

func newStore(t *testing.T) *TransactionStore {
	db, err := leveldb.NewMemory()
	require.Nil(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := NewTransactionStore(db, 16, log.NewWithModule("store_test"))
	require.Nil(t, err)
	return s
}

func TestTransactionStore_PutGet(t *testing.T) {
	s := newStore(t)
	tx := mockTransaction(t, 7, 1)

	ok, err := s.Has(tx.ID)
	require.Nil(t, err)
	assert.False(t, ok)

	require.Nil(t, s.Put(tx))

	ok, err = s.Has(tx.ID)
	require.Nil(t, err)
	assert.True(t, ok)

	got, err := s.Get(tx.ID)
	require.Nil(t, err)
	assert.Equal(t, tx.ID, got.ID)
	assert.Equal(t, tx.FinalAccountHash(), got.FinalAccountHash())
}

func TestTransactionStore_GetFromDisk(t *testing.T) {
	s := newStore(t)
	tx := mockTransaction(t, 7, 2)
	require.Nil(t, s.Put(tx))
	s.cache.Purge()

	got, err := s.Get(tx.ID)
	require.Nil(t, err)
	assert.Equal(t, tx.AccountID, got.AccountID)
	assert.Equal(t, tx.InitialAccountHash, got.InitialAccountHash)
	assert.Equal(t, tx.InputNotesCommitment, got.InputNotesCommitment)
	assert.Equal(t, tx.BlockHash, got.BlockHash)
	assert.Equal(t, tx.ProgramHash, got.ProgramHash)
	assert.Equal(t, felt.Digest{2, 6}, got.FinalAccountHash())
	assert.Equal(t, tx.Outputs.Account, got.Outputs.Account)
	assert.Equal(t, tx.Outputs.OutputNotes.Commitment(), got.Outputs.OutputNotes.Commitment())
	assert.Equal(t, tx.Outputs.OutputNotes.Notes(), got.Outputs.OutputNotes.Notes())
	assert.True(t, got.Outputs.OutputNotes.Get(0).IsPublic())
	assert.False(t, got.Outputs.OutputNotes.Get(1).IsPublic())
}

func TestTransactionStore_NotFound(t *testing.T) {
	s := newStore(t)

	_, err := s.Get(felt.Digest{1, 2, 3, 4})
	assert.True(t, errors.Is(err, ErrTransactionNotFound))
}

func TestTransactionStore_ListByAccount(t *testing.T) {
	s := newStore(t)

	a1 := mockTransaction(t, 7, 1)
	a2 := mockTransaction(t, 7, 2)
	b1 := mockTransaction(t, 70, 3)
	for _, tx := range []*model.ExecutedTransaction{a1, a2, b1} {
		require.Nil(t, s.Put(tx))
	}

	ids, err := s.ListByAccount(7)
	require.Nil(t, err)
	assert.ElementsMatch(t, []model.TransactionID{a1.ID, a2.ID}, ids)

	ids, err = s.ListByAccount(70)
	require.Nil(t, err)
	assert.Equal(t, []model.TransactionID{b1.ID}, ids)

	ids, err = s.ListByAccount(8)
	require.Nil(t, err)
	assert.Empty(t, ids)
}

func TestTransactionStore_PutIncomplete(t *testing.T) {
	s := newStore(t)
	assert.NotNil(t, s.Put(&model.ExecutedTransaction{}))
}
