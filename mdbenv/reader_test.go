package mdbenv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVariable = "MDBENV_TEST_VARIABLE"

func TestLookup(t *testing.T) {
	t.Setenv(testVariable, "value")
	value, found := Lookup(testVariable)
	assert.True(t, found)
	assert.Equal(t, "value", value)
}

func TestLookupEmpty(t *testing.T) {
	t.Setenv(testVariable, "")
	value, found := Lookup(testVariable)
	assert.False(t, found)
	assert.Empty(t, value)
}

func TestLookupMissing(t *testing.T) {
	value, found := Lookup("MDBENV_NO_SUCH_VARIABLE")
	assert.False(t, found)
	assert.Empty(t, value)
}

func TestRead(t *testing.T) {
	t.Setenv(testVariable, "value")
	assert.Equal(t, "value", Read(testVariable))
	assert.Equal(t, "value", Read(testVariable, "fallback"))
}

func TestReadFallback(t *testing.T) {
	assert.Equal(t, "fallback", Read("MDBENV_NO_SUCH_VARIABLE", "fallback"))
	assert.Equal(t, "first", Read("MDBENV_NO_SUCH_VARIABLE", "first", "second"))
	t.Setenv(testVariable, "")
	assert.Equal(t, "fallback", Read(testVariable, "fallback"))
}

func TestReadNoFallback(t *testing.T) {
	assert.Equal(t, "", Read("MDBENV_NO_SUCH_VARIABLE"))
}

func TestDefaulted(t *testing.T) {
	for _, name := range Variables {
		t.Setenv(name, "")
	}
	assert.Equal(t, Variables, Defaulted())

	t.Setenv("MONGODB_HOST", "db.example.com")
	t.Setenv("MONGODB_PASSWORD", "secret")
	defaulted := Defaulted()
	assert.Len(t, defaulted, len(Variables)-2)
	assert.NotContains(t, defaulted, "MONGODB_HOST")
	assert.NotContains(t, defaulted, "MONGODB_PASSWORD")
	assert.Contains(t, defaulted, "MONGODB_PORT")
}

func TestVariablesMatchSettings(t *testing.T) {
	for _, name := range Variables {
		t.Setenv(name, "")
	}
	t.Setenv("MONGODB_HOST", "h")
	t.Setenv("MONGODB_PORT", "2")
	t.Setenv("MONGODB_USERNAME", "u")
	t.Setenv("MONGODB_PASSWORD", "p")
	t.Setenv("MONGODB_DATABASE", "d")
	t.Setenv("MONGODB_LOG_LEVEL", "warn")
	t.Setenv("MONGODB_DRIVER_LOG", "true")
	require.Empty(t, Defaulted())
	settings, err := Load()
	require.NoError(t, err)
	assert.Equal(t, &Settings{
		Host: "h", Port: "2", Username: "u", Password: "p",
		Database: "d", LogLevel: "warn", DriverLog: true,
	}, settings)
}
