package errors

// governance
var (
	VoterAlreadyRegistered = NewError(100, "voter is already registered")
	VoterNotRegistered     = NewError(101, "voter is not registered")
	ProposalDoesNotExist   = NewError(102, "proposal does not exist")
)

// contract host
var (
	ContractAlreadyExists        = NewError(110, "contract already exists")
	ContractNotFound             = NewError(111, "contract not found")
	ContractMethodNotFound       = NewError(112, "contract method not found")
	ContractInvalidArguments     = NewError(113, "invalid contract arguments")
	ContractNotSupportedCodeType = NewError(114, "contract code type is not supported")
)

// transaction
var (
	BadPublicAddress  = NewError(120, "failed to parse public address")
	InvalidSignature  = NewError(121, "invalid signature")
	InvalidHash       = NewError(122, "hash does not match")
	InvalidSequenceID = NewError(123, "invalid sequence id")
	InvalidOperation  = NewError(124, "invalid operation")
	InvalidMessage    = NewError(125, "invalid message")
)

// storage
var (
	StorageRecordDoesNotExist  = NewError(130, "record does not exist")
	StorageRecordAlreadyExists = NewError(131, "record already exists")
	StorageCoreError           = NewError(132, "storage error")
)

// http
var (
	BadRequestParameter = NewError(140, "bad request parameter")
	NotFound            = NewError(141, "not found")
)
