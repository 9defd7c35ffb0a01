package common

import (
	"strings"

	"boscoin.io/minidao/lib/errors"
)

// ParseBoolQueryString reads boolean query values: `true`, `yes`, `1` or
// `false`, `no`, `0`, case-insensitive.
func ParseBoolQueryString(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "true", "yes", "1":
		return true, nil
	case "false", "no", "0":
		return false, nil
	}

	return false, errors.BadRequestParameter.Clone().SetData("value", v)
}
