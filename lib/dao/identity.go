package dao

// Identity is the caller of an operation. The host verifies it, usually as
// the source address of a signed transaction, before handing it over.
type Identity string

func (i Identity) String() string {
	return string(i)
}
