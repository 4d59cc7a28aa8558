package storagemgr

import (
	"fmt"
	"sync"

	"github.com/meshplus/txkernel/internal/repo"
	"github.com/meshplus/txkernel/pkg/storage"
	"github.com/meshplus/txkernel/pkg/storage/leveldb"
)

const (
	Transactions = "transactions"
)

var globalStorageMgr = &storageMgr{
	storages: make(map[string]storage.Storage),
	lock:     new(sync.Mutex),
}

type storageMgr struct {
	storageBuilder func(name string) (storage.Storage, error)
	storages       map[string]storage.Storage
	lock           *sync.Mutex
}

func Initialize(repoRoot string, typ string) error {
	globalStorageMgr.lock.Lock()
	defer globalStorageMgr.lock.Unlock()

	switch typ {
	case repo.KVStorageTypeLeveldb:
		globalStorageMgr.storageBuilder = func(name string) (storage.Storage, error) {
			return leveldb.New(repo.GetStoragePath(repoRoot, name))
		}
	case repo.KVStorageTypeMemory:
		globalStorageMgr.storageBuilder = func(string) (storage.Storage, error) {
			return leveldb.NewMemory()
		}
	default:
		return fmt.Errorf("unknow kv type %s, expect leveldb or memory", typ)
	}
	globalStorageMgr.storages = make(map[string]storage.Storage)
	return nil
}

// Open returns the storage registered under name, creating it on first use.
func Open(name string) (storage.Storage, error) {
	globalStorageMgr.lock.Lock()
	defer globalStorageMgr.lock.Unlock()
	if globalStorageMgr.storageBuilder == nil {
		return nil, fmt.Errorf("storage manager is not initialized")
	}
	s, ok := globalStorageMgr.storages[name]
	if !ok {
		var err error
		s, err = globalStorageMgr.storageBuilder(name)
		if err != nil {
			return nil, err
		}
		globalStorageMgr.storages[name] = s
	}
	return s, nil
}

// CloseAll closes every opened storage.
func CloseAll() error {
	globalStorageMgr.lock.Lock()
	defer globalStorageMgr.lock.Unlock()
	for name, s := range globalStorageMgr.storages {
		if err := s.Close(); err != nil {
			return fmt.Errorf("close storage %s: %w", name, err)
		}
		delete(globalStorageMgr.storages, name)
	}
	return nil
}
