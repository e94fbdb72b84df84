package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type record struct{ Name string }

func TestIsCallable(t *testing.T) {
	var nilFunc func()

	assert.True(t, IsCallable(func() {}))
	assert.True(t, IsCallable(TestIsCallable))
	assert.False(t, IsCallable(nil))
	assert.False(t, IsCallable(nilFunc))
	assert.False(t, IsCallable("func"))
	assert.False(t, IsCallable(map[string]any{}))
}

func TestIsStructured(t *testing.T) {
	var nilMap map[string]any
	var nilRecord *record

	assert.True(t, IsStructured(map[string]any{}))
	assert.True(t, IsStructured(record{}))
	assert.True(t, IsStructured(&record{}))
	assert.False(t, IsStructured(nil))
	assert.False(t, IsStructured(nilMap))
	assert.False(t, IsStructured(nilRecord))
	assert.False(t, IsStructured("state"))
	assert.False(t, IsStructured([]string{"a"}))
	assert.False(t, IsStructured(func() {}))
}
