package mdbenv

import "os"

// Variables read into Settings.
var Variables = []string{
	"MONGODB_HOST",
	"MONGODB_PORT",
	"MONGODB_USERNAME",
	"MONGODB_PASSWORD",
	"MONGODB_DATABASE",
	"MONGODB_LOG_LEVEL",
	"MONGODB_DRIVER_LOG",
}

// Defaulted returns the Variables that are unset or empty,
// whose Settings fields therefore carry their default or zero value.
func Defaulted() []string {
	names := make([]string, 0, len(Variables))
	for _, name := range Variables {
		if _, found := Lookup(name); !found {
			names = append(names, name)
		}
	}

	return names
}

// Lookup returns the value of the named environment variable
// and whether it is set to a non-empty value.
func Lookup(name string) (string, bool) {
	value, found := os.LookupEnv(name)
	if !found || value == "" {
		return "", false
	}

	return value, true
}

// Read returns the value of the named environment variable.
// If the variable is unset or empty the first fallback is returned,
// or the empty string if there is no fallback.
func Read(name string, fallback ...string) string {
	if value, found := Lookup(name); found {
		return value
	}

	if len(fallback) > 0 {
		return fallback[0]
	}

	return ""
}
