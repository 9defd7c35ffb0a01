package native

import (
	"sort"
	"sync"

	"boscoin.io/minidao/lib/contract/context"
	"boscoin.io/minidao/lib/contract/payload"
	"boscoin.io/minidao/lib/contract/value"
)

type (
	// Constructor initializes the state of a newly deployed contract.
	Constructor func(ctx *context.Context, code *payload.DeployCode) (*value.Value, error)
	// Register adds the entry points of a contract kind to the executor.
	Register func(executor *NativeExecutor)
)

type contract struct {
	constructor Constructor
	register    Register
}

var (
	contractsLock sync.RWMutex
	contracts     = make(map[string]contract)
)

func AddContract(kind string, c Constructor, r Register) {
	contractsLock.Lock()
	defer contractsLock.Unlock()

	contracts[kind] = contract{constructor: c, register: r}
}

func HasContract(kind string) bool {
	contractsLock.RLock()
	defer contractsLock.RUnlock()

	_, ok := contracts[kind]
	return ok
}

func Kinds() []string {
	contractsLock.RLock()
	defer contractsLock.RUnlock()

	var kinds []string
	for k := range contracts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	return kinds
}

func getContract(kind string) (contract, bool) {
	contractsLock.RLock()
	defer contractsLock.RUnlock()

	c, ok := contracts[kind]
	return c, ok
}
