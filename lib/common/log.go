package common

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"time"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/minidao/lib/errors"
)

var (
	DefaultLogLevel   logging.Lvl     = logging.LvlInfo
	DefaultLogHandler logging.Handler = logging.StreamHandler(os.Stdout, logging.TerminalFormat())
)

// SetLogging sets the level and the handler of the package logger.
func SetLogging(logger logging.Logger, level logging.Lvl, handler logging.Handler) {
	logger.SetHandler(logging.LvlFilterHandler(level, handler))
}

const errorKey = "LOG15_ERROR"

// jsonLogValue makes the value of log context to be json friendly; the
// typed nil pointer becomes "nil".
func jsonLogValue(value interface{}) (result interface{}) {
	defer func() {
		if r := recover(); r != nil {
			v := reflect.ValueOf(value)
			if v.Kind() != reflect.Ptr || !v.IsNil() {
				panic(r)
			}
			result = "nil"
		}
	}()

	switch v := value.(type) {
	case time.Time:
		return FormatISO8601(v)
	case *errors.Error, json.Marshaler:
		return v
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	}

	return value
}

func jsonLogRecord(r *logging.Record) map[string]interface{} {
	props := map[string]interface{}{
		r.KeyNames.Time: r.Time,
		r.KeyNames.Lvl:  r.Lvl.String(),
		r.KeyNames.Msg:  r.Msg,
	}

	for i := 0; i+1 < len(r.Ctx); i += 2 {
		k, ok := r.Ctx[i].(string)
		if !ok {
			props[errorKey] = fmt.Sprintf("%+v is not a string key", r.Ctx[i])
			continue
		}
		props[k] = jsonLogValue(r.Ctx[i+1])
	}

	return props
}

// JsonFormatEx is `log15.JsonFormatEx`, but `*errors.Error` keeps its code
// and data in the output.
func JsonFormatEx(pretty, lineSeparated bool) logging.Format {
	marshal := json.Marshal
	if pretty {
		marshal = func(v interface{}) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}

	return logging.FormatFunc(func(r *logging.Record) []byte {
		b, err := marshal(jsonLogRecord(r))
		if err != nil {
			b, _ = marshal(map[string]string{errorKey: err.Error()})
		}

		if lineSeparated {
			b = append(b, '\n')
		}
		return b
	})
}

func NopLogger() logging.Logger {
	l := logging.New()
	l.SetHandler(logging.DiscardHandler())
	return l
}
