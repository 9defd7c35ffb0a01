package storage

import "os"

// CleanDB removes the leveldb directory of the tests.
func CleanDB(path string) {
	_ = os.RemoveAll(path)
}

// NewTestStorage opens in-memory leveldb and panics on failure.
func NewTestStorage() *LevelDBBackend {
	st := &LevelDBBackend{}
	if err := st.Init(&Config{Scheme: "memory"}); err != nil {
		panic(err)
	}
	return st
}
