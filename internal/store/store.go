// Package store persists executed transactions.
package store

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"
	"github.com/meshplus/txkernel/pkg/felt"
	"github.com/meshplus/txkernel/pkg/model"
	"github.com/meshplus/txkernel/pkg/storage"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	txKeyPrefix      = "tx-"
	accountKeyPrefix = "acct-"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// record is the persisted form of an executed transaction. The output notes
// are stored flat and revalidated on load.
type record struct {
	ID                   model.TransactionID
	AccountID            model.AccountID
	InitialAccountHash   felt.Digest
	InputNotesCommitment felt.Digest
	BlockHash            felt.Digest
	ProgramHash          felt.Digest
	FinalAccountHash     felt.Digest
	Account              model.AccountStub
	OutputNotes          []model.OutputNote
}

type TransactionStore struct {
	db     storage.Storage
	cache  *lru.Cache
	logger logrus.FieldLogger
}

func NewTransactionStore(db storage.Storage, cacheSize int, logger logrus.FieldLogger) (*TransactionStore, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create transaction cache: %w", err)
	}

	return &TransactionStore{
		db:     db,
		cache:  cache,
		logger: logger,
	}, nil
}

func compositeTxKey(id model.TransactionID) []byte {
	return []byte(txKeyPrefix + id.Hex())
}

func accountPrefix(acct model.AccountID) string {
	return accountKeyPrefix + acct.String() + "-"
}

func compositeAccountKey(acct model.AccountID, id model.TransactionID) []byte {
	return []byte(accountPrefix(acct) + id.Hex())
}

// Put writes tx and its account index entry in one batch.
func (s *TransactionStore) Put(tx *model.ExecutedTransaction) error {
	if tx == nil || tx.Outputs == nil || tx.Outputs.OutputNotes == nil {
		return fmt.Errorf("incomplete executed transaction")
	}

	data, err := rlp.EncodeToBytes(&record{
		ID:                   tx.ID,
		AccountID:            tx.AccountID,
		InitialAccountHash:   tx.InitialAccountHash,
		InputNotesCommitment: tx.InputNotesCommitment,
		BlockHash:            tx.BlockHash,
		ProgramHash:          tx.ProgramHash,
		FinalAccountHash:     tx.Outputs.FinalAccountHash,
		Account:              tx.Outputs.Account,
		OutputNotes:          tx.Outputs.OutputNotes.Notes(),
	})
	if err != nil {
		return fmt.Errorf("encode transaction %s: %w", tx.ID, err)
	}

	batch := s.db.NewBatch()
	batch.Put(compositeTxKey(tx.ID), data)
	batch.Put(compositeAccountKey(tx.AccountID, tx.ID), nil)
	if err := batch.Commit(); err != nil {
		return fmt.Errorf("persist transaction %s: %w", tx.ID, err)
	}

	s.cache.Add(tx.ID, tx)
	s.logger.WithFields(logrus.Fields{
		"id":      tx.ID,
		"account": tx.AccountID,
		"notes":   tx.Outputs.OutputNotes.Len(),
	}).Debug("Persist executed transaction")

	return nil
}

func (s *TransactionStore) Get(id model.TransactionID) (*model.ExecutedTransaction, error) {
	if v, ok := s.cache.Get(id); ok {
		return v.(*model.ExecutedTransaction), nil
	}

	data, err := s.db.Get(compositeTxKey(id))
	if err != nil {
		if errors.Is(err, storage.ErrorNotFound) {
			return nil, errors.Wrapf(ErrTransactionNotFound, "id %s", id)
		}
		return nil, err
	}

	var r record
	if err := rlp.DecodeBytes(data, &r); err != nil {
		return nil, fmt.Errorf("decode transaction %s: %w", id, err)
	}

	notes, err := model.NewOutputNotes(r.OutputNotes)
	if err != nil {
		return nil, fmt.Errorf("stored output notes of %s: %w", id, err)
	}

	tx := &model.ExecutedTransaction{
		ID:                   r.ID,
		AccountID:            r.AccountID,
		InitialAccountHash:   r.InitialAccountHash,
		InputNotesCommitment: r.InputNotesCommitment,
		BlockHash:            r.BlockHash,
		ProgramHash:          r.ProgramHash,
		Outputs: &model.TransactionOutputs{
			FinalAccountHash: r.FinalAccountHash,
			Account:          r.Account,
			OutputNotes:      notes,
		},
	}
	s.cache.Add(id, tx)

	return tx, nil
}

func (s *TransactionStore) Has(id model.TransactionID) (bool, error) {
	if s.cache.Contains(id) {
		return true, nil
	}
	return s.db.Has(compositeTxKey(id))
}

// ListByAccount returns the ids of the transactions executed against acct,
// in key order.
func (s *TransactionStore) ListByAccount(acct model.AccountID) ([]model.TransactionID, error) {
	prefix := accountPrefix(acct)
	it := s.db.Prefix([]byte(prefix))
	defer it.Release()

	var ids []model.TransactionID
	for it.Next() {
		id, err := felt.DigestFromHex(strings.TrimPrefix(string(it.Key()), prefix))
		if err != nil {
			return nil, fmt.Errorf("malformed account index key %q: %w", it.Key(), err)
		}
		ids = append(ids, id)
	}
	if err := it.Error(); err != nil {
		return nil, err
	}

	return ids, nil
}
