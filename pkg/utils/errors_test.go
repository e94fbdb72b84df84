package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigurationError(t *testing.T) {
	cause := errors.New("bad indent")
	err := NewConfigurationError("states.red", "invalid entry").WithCause(cause)

	assert.Equal(t, "states.red: invalid entry: cause: bad indent", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsConfigurationError(fmt.Errorf("load: %w", err)))
	assert.False(t, IsConfigurationError(cause))

	assert.Equal(t, "missing", NewConfigurationError("", "missing").Error())
}

func TestErrorCollector(t *testing.T) {
	ec := NewErrorCollector()
	ec.Add(nil)
	assert.False(t, ec.HasErrors())
	assert.NoError(t, ec.Err())
	assert.Equal(t, "no errors", ec.Error())

	first := NewConfigurationError("initial", "missing")
	ec.Add(first)
	require.Error(t, ec.Err())
	assert.Equal(t, "initial: missing", ec.Error())

	second := errors.New("second")
	ec.Add(second)
	assert.Len(t, ec.GetErrors(), 2)
	assert.Equal(t, "2 errors occurred:\n  1: initial: missing\n  2: second\n", ec.Error())

	err := ec.Err()
	assert.ErrorIs(t, err, second)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "initial", cfgErr.Path)
}
