package rpc

import (
	"net/http"

	"boscoin.io/minidao/lib/storage"
)

// DBMaxIteratorLimit caps `DB.GetIterator`; zero or bigger limit is
// replaced by it.
const DBMaxIteratorLimit uint64 = 10000

type (
	DBHasArgs   string
	DBHasResult bool
	DBGetArgs   string
	DBGetResult storage.IterItem
)

type GetIteratorOptions struct {
	Reverse bool
	Cursor  []byte
	Limit   uint64
}

type DBGetIteratorArgs struct {
	Prefix  string
	Options GetIteratorOptions
}

// DBGetIteratorResult.Next is the cursor of the next page; it is empty at
// the end of the records.
type DBGetIteratorResult struct {
	Limit uint64
	Items []storage.IterItem
	Next  []byte
}

// DBService exposes the raw records of the storage, read-only.
type DBService struct {
	st *storage.LevelDBBackend
}

func (s *DBService) Has(r *http.Request, args *DBHasArgs, result *DBHasResult) error {
	found, err := s.st.Has(string(*args))
	*result = DBHasResult(found)
	return err
}

func (s *DBService) Get(r *http.Request, args *DBGetArgs, result *DBGetResult) error {
	b, err := s.st.GetRaw(string(*args))
	if err != nil {
		return err
	}

	*result = DBGetResult{Key: []byte(*args), Value: b}
	return nil
}

func (s *DBService) GetIterator(r *http.Request, args *DBGetIteratorArgs, result *DBGetIteratorResult) error {
	limit := args.Options.Limit
	if limit < 1 || limit > DBMaxIteratorLimit {
		limit = DBMaxIteratorLimit
	}

	// one more item tells the cursor of the next page
	options := storage.NewDefaultListOptions(args.Options.Reverse, args.Options.Cursor, limit+1)
	next, release := s.st.GetIterator(args.Prefix, options)
	defer release()

	result.Limit = limit
	result.Items = []storage.IterItem{}
	for {
		item, ok := next()
		if !ok {
			break
		}
		if uint64(len(result.Items)) == limit {
			result.Next = append([]byte{}, item.Key...)
			break
		}
		result.Items = append(result.Items, item.Clone())
	}

	return nil
}
