package leveldb

import "github.com/syndtr/goleveldb/leveldb/iterator"

type iter struct {
	iter iterator.Iterator
}

func (it *iter) Next() bool {
	return it.iter.Next()
}

// Key and Value copy, since leveldb reuses its buffers between steps.
func (it *iter) Key() []byte {
	return append([]byte(nil), it.iter.Key()...)
}

func (it *iter) Value() []byte {
	return append([]byte(nil), it.iter.Value()...)
}

func (it *iter) Release() {
	it.iter.Release()
}

func (it *iter) Error() error {
	return it.iter.Error()
}
