package httputils

import (
	"encoding/json"
	"net/http"

	"github.com/nvellon/hal"
)

type HALResource interface {
	Resource() *hal.Resource
}

// WriteJSON writes `v` as json; a HAL resource is written as
// `application/hal+json` and an error as `Problem`.
func WriteJSON(w http.ResponseWriter, code int, v interface{}) error {
	contentType := "application/json"
	switch t := v.(type) {
	case HALResource:
		contentType = "application/hal+json"
		v = t.Resource()
	case error:
		contentType = "application/problem+json"
		v = NewErrorProblem(t, code)
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)
	_, err = w.Write(b)

	return err
}

// WriteError writes the error with the status of its code.
func WriteError(w http.ResponseWriter, err error) error {
	return WriteJSON(w, StatusCode(err), err)
}

func MustWriteJSON(w http.ResponseWriter, code int, v interface{}) {
	if err := WriteJSON(w, code, v); err != nil {
		panic(err)
	}
}
