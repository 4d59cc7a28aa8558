package leveldb

import (
	"github.com/meshplus/txkernel/pkg/storage"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	lstorage "github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

type ldb struct {
	db *leveldb.DB
}

var _ storage.Storage = (*ldb)(nil)

func New(path string) (storage.Storage, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}

	return &ldb{
		db: db,
	}, nil
}

// NewMemory returns a storage that lives only in memory.
func NewMemory() (storage.Storage, error) {
	db, err := leveldb.Open(lstorage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}

	return &ldb{
		db: db,
	}, nil
}

func (l *ldb) Put(key, value []byte) error {
	return l.db.Put(key, value, nil)
}

func (l *ldb) Delete(key []byte) error {
	return l.db.Delete(key, nil)
}

func (l *ldb) Get(key []byte) ([]byte, error) {
	val, err := l.db.Get(key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, storage.ErrorNotFound
		}
		return nil, err
	}
	return val, nil
}

func (l *ldb) Has(key []byte) (bool, error) {
	return l.db.Has(key, nil)
}

func (l *ldb) Prefix(prefix []byte) storage.Iterator {
	rg := util.BytesPrefix(prefix)

	return &iter{iter: l.db.NewIterator(rg, nil)}
}

func (l *ldb) NewBatch() storage.Batch {
	return &ldbBatch{
		ldb:   l.db,
		batch: &leveldb.Batch{},
	}
}

func (l *ldb) Close() error {
	return l.db.Close()
}

type ldbBatch struct {
	ldb   *leveldb.DB
	batch *leveldb.Batch
}

func (l *ldbBatch) Put(key, value []byte) {
	l.batch.Put(key, value)
}

func (l *ldbBatch) Delete(key []byte) {
	l.batch.Delete(key)
}

func (l *ldbBatch) Commit() error {
	return l.ldb.Write(l.batch, nil)
}
