package common

import (
	"os"

	"github.com/google/uuid"
)

// GenerateUUID is used as request id.
func GenerateUUID() string {
	return uuid.New().String()
}

// GetENVValue is the default value of the command flags.
func GetENVValue(key, defaultValue string) string {
	if v, found := os.LookupEnv(key); found {
		return v
	}
	return defaultValue
}

func InStringArray(a []string, s string) (int, bool) {
	for i := range a {
		if a[i] == s {
			return i, true
		}
	}
	return -1, false
}
