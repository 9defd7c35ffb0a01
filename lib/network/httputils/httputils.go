package httputils

import (
	"net/http"

	"boscoin.io/minidao/lib/errors"
)

var ErrorsToStatus = map[uint]int{
	errors.VoterAlreadyRegistered.Code: http.StatusConflict,
	errors.VoterNotRegistered.Code:     http.StatusForbidden,
	errors.ProposalDoesNotExist.Code:   http.StatusNotFound,

	errors.ContractAlreadyExists.Code:        http.StatusConflict,
	errors.ContractNotFound.Code:             http.StatusNotFound,
	errors.ContractMethodNotFound.Code:       http.StatusBadRequest,
	errors.ContractInvalidArguments.Code:     http.StatusBadRequest,
	errors.ContractNotSupportedCodeType.Code: http.StatusBadRequest,

	errors.BadPublicAddress.Code:  http.StatusBadRequest,
	errors.InvalidSignature.Code:  http.StatusUnauthorized,
	errors.InvalidHash.Code:       http.StatusBadRequest,
	errors.InvalidSequenceID.Code: http.StatusConflict,
	errors.InvalidOperation.Code:  http.StatusBadRequest,
	errors.InvalidMessage.Code:    http.StatusBadRequest,

	errors.StorageRecordDoesNotExist.Code:  http.StatusNotFound,
	errors.StorageRecordAlreadyExists.Code: http.StatusConflict,
	errors.StorageCoreError.Code:           http.StatusInternalServerError,

	errors.BadRequestParameter.Code: http.StatusBadRequest,
	errors.NotFound.Code:            http.StatusNotFound,
}

// StatusCode is 500 for the errors without a known code.
func StatusCode(err error) int {
	if e, ok := err.(*errors.Error); ok {
		if status, found := ErrorsToStatus[e.Code]; found {
			return status
		}
	}
	return http.StatusInternalServerError
}
