package httputils

import (
	"fmt"
	"net/http"

	"boscoin.io/minidao/lib/errors"
)

const ProblemTypePrefix = "https://boscoin.io/minidao/problems/"

// Problem follows RFC 7807 (https://tools.ietf.org/html/rfc7807).
type Problem struct {
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Status   int                    `json:"status,omitempty"`
	Detail   string                 `json:"detail,omitempty"`
	Instance string                 `json:"instance,omitempty"`
	Code     uint                   `json:"code,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

func NewStatusProblem(status int) Problem {
	return Problem{Type: "about:blank", Title: http.StatusText(status), Status: status}
}

func NewDetailedStatusProblem(status int, detail string) Problem {
	p := NewStatusProblem(status)
	p.Detail = detail
	return p
}

// NewErrorProblem makes `Problem` from `*errors.Error`, the other errors
// become a plain status problem with the error message as detail.
func NewErrorProblem(err error, status int) Problem {
	e, ok := err.(*errors.Error)
	if !ok {
		return NewDetailedStatusProblem(status, err.Error())
	}

	p := Problem{
		Type:   fmt.Sprintf("%s%d", ProblemTypePrefix, e.Code),
		Title:  e.Message,
		Status: status,
		Code:   e.Code,
	}
	if len(e.Data) > 0 {
		p.Data = e.Data
	}

	return p
}
