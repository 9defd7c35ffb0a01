package storage

type IterItem struct {
	N     uint64
	Key   []byte
	Value []byte
}

func (i IterItem) Clone() IterItem {
	n := IterItem{N: i.N}
	n.Key = append([]byte{}, i.Key...)
	n.Value = append([]byte{}, i.Value...)

	return n
}

type Item struct {
	Key   string
	Value interface{}
}
