package runner

import (
	stdlog "log"
	"strings"
)

type serverErrorLogWriter struct{}

func (serverErrorLogWriter) Write(b []byte) (int, error) {
	log.Error("http server error", "error", strings.TrimSpace(string(b)))
	return len(b), nil
}

func newServerErrorLog() *stdlog.Logger {
	return stdlog.New(serverErrorLogWriter{}, "", 0)
}
