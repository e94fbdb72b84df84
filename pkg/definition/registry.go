package definition

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/anggasct/stately"
)

// ProcedureFactory builds a procedure from the args of a {call, args} entry
type ProcedureFactory func(args map[string]any) (stately.Procedure, error)

// Registry maps procedure names used in definitions to their factories
type Registry map[string]ProcedureFactory

// Merge returns a new registry with the entries of r overridden by other
func (r Registry) Merge(other Registry) Registry {
	out := make(Registry, len(r)+len(other))
	for k, v := range r {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Names returns the registered names sorted
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Static wraps a fixed procedure as a factory that ignores its args
func Static(procedure stately.Procedure) ProcedureFactory {
	return func(map[string]any) (stately.Procedure, error) {
		return procedure, nil
	}
}

// ErrLimitReached is returned by the counter procedure once its limit is hit
var ErrLimitReached = errors.New("limit reached")

// Builtins returns the procedures available to every definition:
//
//	counter: increments args.key; fails once the value reaches args.limit; returns args.next
//	switch:  returns args.cases[context[args.key]], or args.default
//	fail:    always fails with args.message
func Builtins() Registry {
	return Registry{
		"counter": counterProcedure,
		"switch":  switchProcedure,
		"fail":    failProcedure,
	}
}

func counterProcedure(args map[string]any) (stately.Procedure, error) {
	key, err := stringArg(args, "key", true)
	if err != nil {
		return nil, err
	}
	next, err := stringArg(args, "next", true)
	if err != nil {
		return nil, err
	}
	limit := -1
	if raw, ok := args["limit"]; ok {
		n, ok := raw.(int)
		if !ok {
			return nil, fmt.Errorf("counter: limit must be an integer, got %T", raw)
		}
		limit = n
	}

	return func(_ context.Context, data *stately.Context, _ any) (string, error) {
		current, _ := data.GetInt(key)
		if limit >= 0 && current >= limit {
			return "", fmt.Errorf("%w: %s=%d", ErrLimitReached, key, current)
		}
		data.Set(key, current+1)
		return next, nil
	}, nil
}

func switchProcedure(args map[string]any) (stately.Procedure, error) {
	key, err := stringArg(args, "key", true)
	if err != nil {
		return nil, err
	}
	fallback, err := stringArg(args, "default", false)
	if err != nil {
		return nil, err
	}
	cases := make(map[string]string)
	if raw, ok := args["cases"]; ok {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("switch: cases must be a mapping, got %T", raw)
		}
		for k, v := range m {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("switch: case %q must map to a state name", k)
			}
			cases[k] = s
		}
	}

	return func(_ context.Context, data *stately.Context, _ any) (string, error) {
		value, ok := data.Get(key)
		if ok {
			if target, found := cases[fmt.Sprint(value)]; found {
				return target, nil
			}
		}
		if fallback == "" {
			return "", fmt.Errorf("switch: no case for %s=%v", key, value)
		}
		return fallback, nil
	}, nil
}

func failProcedure(args map[string]any) (stately.Procedure, error) {
	message, err := stringArg(args, "message", false)
	if err != nil {
		return nil, err
	}
	if message == "" {
		message = "transition failed"
	}
	return func(context.Context, *stately.Context, any) (string, error) {
		return "", errors.New(message)
	}, nil
}

func stringArg(args map[string]any, name string, required bool) (string, error) {
	raw, ok := args[name]
	if !ok {
		if required {
			return "", fmt.Errorf("missing required argument %q", name)
		}
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string, got %T", name, raw)
	}
	return s, nil
}
