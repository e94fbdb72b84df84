package stately

import (
	"encoding/json"
	"sync"
)

// Context is the structured value owned by a machine instance. It is handed by
// reference to every transition procedure and state handler.
type Context struct {
	data  map[string]any
	mutex sync.RWMutex
}

// NewContext creates an empty context
func NewContext() *Context {
	return &Context{data: make(map[string]any)}
}

// NewContextFrom creates a context holding a copy of values
func NewContextFrom(values map[string]any) *Context {
	ctx := NewContext()
	for k, v := range values {
		ctx.data[k] = v
	}
	return ctx
}

// Get retrieves a value from the context
func (ctx *Context) Get(key string) (any, bool) {
	ctx.mutex.RLock()
	defer ctx.mutex.RUnlock()
	value, exists := ctx.data[key]
	return value, exists
}

// Set stores a value in the context
func (ctx *Context) Set(key string, value any) {
	ctx.mutex.Lock()
	defer ctx.mutex.Unlock()
	ctx.data[key] = value
}

// Delete removes a key from the context
func (ctx *Context) Delete(key string) {
	ctx.mutex.Lock()
	defer ctx.mutex.Unlock()
	delete(ctx.data, key)
}

// Len returns the number of stored keys
func (ctx *Context) Len() int {
	ctx.mutex.RLock()
	defer ctx.mutex.RUnlock()
	return len(ctx.data)
}

// GetAll returns a copy of all context data
func (ctx *Context) GetAll() map[string]any {
	ctx.mutex.RLock()
	defer ctx.mutex.RUnlock()
	result := make(map[string]any, len(ctx.data))
	for k, v := range ctx.data {
		result[k] = v
	}
	return result
}

// GetString returns the value under key if it is a string
func (ctx *Context) GetString(key string) (string, bool) {
	value, ok := ctx.Get(key)
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// GetInt returns the value under key as an int. Whole float64 values are
// accepted since that is what JSON and YAML decoding produce.
func (ctx *Context) GetInt(key string) (int, bool) {
	value, ok := ctx.Get(key)
	if !ok {
		return 0, false
	}
	return toInt(value)
}

// Update replaces the value under key with fn(old) while holding the lock.
func (ctx *Context) Update(key string, fn func(old any, exists bool) any) any {
	ctx.mutex.Lock()
	defer ctx.mutex.Unlock()
	old, exists := ctx.data[key]
	next := fn(old, exists)
	ctx.data[key] = next
	return next
}

// Fork creates a new context with copied data
func (ctx *Context) Fork() *Context {
	return NewContextFrom(ctx.GetAll())
}

// MarshalJSON encodes the context data as a JSON object
func (ctx *Context) MarshalJSON() ([]byte, error) {
	return json.Marshal(ctx.GetAll())
}

// UnmarshalJSON replaces the context data with a decoded JSON object
func (ctx *Context) UnmarshalJSON(data []byte) error {
	values := make(map[string]any)
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}

	ctx.mutex.Lock()
	defer ctx.mutex.Unlock()
	ctx.data = values
	return nil
}

func toInt(value any) (int, bool) {
	switch n := value.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
	}
	return 0, false
}
