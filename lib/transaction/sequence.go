package transaction

import (
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/storage"
)

const SequenceIDPrefix = "seq-"

func GetSequenceIDKey(address string) string {
	return SequenceIDPrefix + address
}

// GetSequenceID returns the sequence id the next transaction of `address`
// must carry; an unknown address starts from 0.
func GetSequenceID(st *storage.LevelDBBackend, address string) (sequenceID uint64, err error) {
	if err = st.Get(GetSequenceIDKey(address), &sequenceID); err != nil {
		if errors.StorageRecordDoesNotExist.Is(err) {
			return 0, nil
		}
		return 0, err
	}

	return
}

// CheckSequenceID fails with `InvalidSequenceID` unless `tx` carries the
// current sequence id of its source.
func CheckSequenceID(st *storage.LevelDBBackend, tx Transaction) error {
	current, err := GetSequenceID(st, tx.Source())
	if err != nil {
		return err
	}

	if !tx.IsValidSequenceID(current) {
		return errors.InvalidSequenceID.Clone().
			SetData("expected", current).
			SetData("sequence_id", tx.B.SequenceID)
	}

	return nil
}

// IncreaseSequenceID bumps the sequence id of `address` by one.
func IncreaseSequenceID(st *storage.LevelDBBackend, address string) (uint64, error) {
	key := GetSequenceIDKey(address)

	exists, err := st.Has(key)
	if err != nil {
		return 0, err
	}

	var current uint64
	if exists {
		if err = st.Get(key, &current); err != nil {
			return 0, err
		}
		err = st.Set(key, current+1)
	} else {
		err = st.New(key, current+1)
	}

	return current + 1, err
}
