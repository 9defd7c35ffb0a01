package storage

import (
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	leveldbIterator "github.com/syndtr/goleveldb/leveldb/iterator"
	leveldbOpt "github.com/syndtr/goleveldb/leveldb/opt"
	leveldbStorage "github.com/syndtr/goleveldb/leveldb/storage"
	leveldbUtil "github.com/syndtr/goleveldb/leveldb/util"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/errors"
)

type LevelDBCore interface {
	Has([]byte, *leveldbOpt.ReadOptions) (bool, error)
	Get([]byte, *leveldbOpt.ReadOptions) ([]byte, error)
	NewIterator(*leveldbUtil.Range, *leveldbOpt.ReadOptions) leveldbIterator.Iterator
	Put([]byte, []byte, *leveldbOpt.WriteOptions) error
	Write(*leveldb.Batch, *leveldbOpt.WriteOptions) error
	Delete([]byte, *leveldbOpt.WriteOptions) error
}

type LevelDBBackend struct {
	DB *leveldb.DB

	Core LevelDBCore
}

func setLevelDBCoreError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := err.(*errors.Error); ok {
		return err
	}

	return errors.NewError(
		errors.StorageCoreError.Code,
		fmt.Sprintf("%s: %s", errors.StorageCoreError.Message, err.Error()),
	)
}

// Init opens the leveldb of `config`; `memory` scheme is for the tests and
// the throwaway nodes.
func (st *LevelDBBackend) Init(config *Config) error {
	var db *leveldb.DB
	var err error

	switch config.Scheme {
	case "file":
		db, err = leveldb.OpenFile(config.Path, nil)
	case "memory":
		db, err = leveldb.Open(leveldbStorage.NewMemStorage(), nil)
	default:
		err = fmt.Errorf("unknown storage scheme, %q", config.Scheme)
	}
	if err != nil {
		return setLevelDBCoreError(err)
	}

	st.DB = db
	st.Core = db

	log.Debug("storage opened", "config", config)

	return nil
}

func (st *LevelDBBackend) Close() error {
	if st.IsTransaction() {
		return nil
	}
	return st.DB.Close()
}

func (st *LevelDBBackend) IsTransaction() bool {
	_, ok := st.Core.(*leveldb.Transaction)
	return ok
}

// OpenTransaction returns new `LevelDBBackend` which writes into a leveldb
// transaction; nothing is visible to the other readers until `Commit()`.
func (st *LevelDBBackend) OpenTransaction() (*LevelDBBackend, error) {
	if st.IsTransaction() {
		return nil, setLevelDBCoreError(fmt.Errorf("this is already *leveldb.Transaction"))
	}

	transaction, err := st.DB.OpenTransaction()
	if err != nil {
		err = setLevelDBCoreError(err)
		return nil, err
	}

	return &LevelDBBackend{
		DB:   st.DB,
		Core: transaction,
	}, nil
}

func (st *LevelDBBackend) Discard() error {
	ts, ok := st.Core.(*leveldb.Transaction)
	if !ok {
		return setLevelDBCoreError(fmt.Errorf("this is not *leveldb.Transaction"))
	}

	ts.Discard()
	return nil
}

func (st *LevelDBBackend) Commit() error {
	ts, ok := st.Core.(*leveldb.Transaction)
	if !ok {
		return setLevelDBCoreError(fmt.Errorf("this is not *leveldb.Transaction"))
	}

	return setLevelDBCoreError(ts.Commit())
}

func (st *LevelDBBackend) makeKey(key string) []byte {
	return []byte(key)
}

func (st *LevelDBBackend) encode(v interface{}) ([]byte, error) {
	var encoded []byte
	var err error
	switch t := v.(type) {
	case common.Serializable:
		encoded, err = t.Serialize()
	default:
		encoded, err = common.EncodeJSONValue(v)
	}

	return encoded, setLevelDBCoreError(err)
}

func (st *LevelDBBackend) Has(k string) (bool, error) {
	ok, err := st.Core.Has(st.makeKey(k), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return false, nil
		}
		return false, setLevelDBCoreError(err)
	}

	return ok, nil
}

func (st *LevelDBBackend) GetRaw(k string) ([]byte, error) {
	b, err := st.Core.Get(st.makeKey(k), nil)
	if err == leveldb.ErrNotFound {
		return nil, errors.StorageRecordDoesNotExist
	}

	return b, setLevelDBCoreError(err)
}

// Get decodes the json record of `k` into `i`.
func (st *LevelDBBackend) Get(k string, i interface{}) error {
	b, err := st.GetRaw(k)
	if err != nil {
		return err
	}

	return setLevelDBCoreError(common.DecodeJSONValue(b, i))
}

// checkExistence fails with `StorageRecordAlreadyExists` or
// `StorageRecordDoesNotExist` unless every key is in the expected state.
func (st *LevelDBBackend) checkExistence(mustExist bool, keys ...string) error {
	for _, k := range keys {
		exists, err := st.Has(k)
		switch {
		case err != nil:
			return err
		case exists && !mustExist:
			return errors.StorageRecordAlreadyExists
		case !exists && mustExist:
			return errors.StorageRecordDoesNotExist
		}
	}
	return nil
}

// put writes all the items in one batch; nothing is written if any of the
// keys is not in the expected state.
func (st *LevelDBBackend) put(mustExist bool, items []Item) error {
	if len(items) < 1 {
		return setLevelDBCoreError(fmt.Errorf("empty values"))
	}

	keys := make([]string, len(items))
	for i, item := range items {
		keys[i] = item.Key
	}
	if err := st.checkExistence(mustExist, keys...); err != nil {
		return err
	}

	batch := new(leveldb.Batch)
	for _, item := range items {
		encoded, err := st.encode(item.Value)
		if err != nil {
			return err
		}
		batch.Put(st.makeKey(item.Key), encoded)
	}

	return setLevelDBCoreError(st.Core.Write(batch, nil))
}

// New stores new record; an existing key fails.
func (st *LevelDBBackend) New(k string, v interface{}) error {
	return st.put(false, []Item{{Key: k, Value: v}})
}

func (st *LevelDBBackend) News(vs ...Item) error {
	return st.put(false, vs)
}

// Set overwrites the existing record; a missing key fails.
func (st *LevelDBBackend) Set(k string, v interface{}) error {
	return st.put(true, []Item{{Key: k, Value: v}})
}

func (st *LevelDBBackend) Sets(vs ...Item) error {
	return st.put(true, vs)
}

func (st *LevelDBBackend) Remove(k string) error {
	if err := st.checkExistence(true, k); err != nil {
		return err
	}

	return setLevelDBCoreError(st.Core.Delete(st.makeKey(k), nil))
}

// GetIterator walks the records under `prefix`. The first returned function
// yields the next item and false once exhausted; the second releases the
// iterator early.
func (st *LevelDBBackend) GetIterator(prefix string, option ListOptions) (func() (IterItem, bool), func()) {
	var reverse = false
	var cursor []byte
	var limit uint64 = 0
	if option != nil {
		reverse = option.Reverse()
		cursor = option.Cursor()
		limit = option.Limit()
	}

	var dbRange *leveldbUtil.Range
	if len(prefix) > 0 {
		dbRange = leveldbUtil.BytesPrefix(st.makeKey(prefix))
	}

	iter := st.Core.NewIterator(dbRange, nil)

	var funcNext func() bool
	var hasUnsent bool
	if len(cursor) > 0 {
		// NOTE the cursor itself is included
		found := iter.Seek(cursor)
		switch {
		case !reverse:
			hasUnsent = found
		case !found:
			hasUnsent = iter.Last()
		case string(iter.Key()) == string(cursor):
			hasUnsent = true
		default:
			hasUnsent = iter.Prev()
		}

		if reverse {
			funcNext = iter.Prev
		} else {
			funcNext = iter.Next
		}

		if !hasUnsent {
			iter.Release()
			return func() (IterItem, bool) { return IterItem{}, false }, func() {}
		}
	} else if reverse {
		if !iter.Last() {
			iter.Release()
			return func() (IterItem, bool) { return IterItem{}, false }, func() {}
		}
		funcNext = iter.Prev
		hasUnsent = true
	} else {
		funcNext = iter.Next
	}

	var released bool
	release := func() {
		if !released {
			released = true
			iter.Release()
		}
	}

	var n uint64
	return func() (IterItem, bool) {
			if released || (limit != 0 && n >= limit) {
				release()
				return IterItem{}, false
			}

			if hasUnsent {
				hasUnsent = false
			} else if !funcNext() {
				release()
				return IterItem{}, false
			}

			n++
			return IterItem{N: n, Key: iter.Key(), Value: iter.Value()}, true
		},
		release
}
