package definition

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anggasct/stately"
	"github.com/anggasct/stately/pkg/utils"
)

func TestLoadFile_KeepsDeclarationOrder(t *testing.T) {
	cfg, err := LoadFile("testdata/light.yaml", Builtins())
	require.NoError(t, err)

	assert.Equal(t, "light", cfg.Name)
	assert.Equal(t, "green", cfg.Initial)
	assert.Equal(t, []string{"green", "yellow", "red", "done"}, cfg.StateNames())

	done, _ := cfg.State("done")
	assert.True(t, done.IsTerminal())

	red, _ := cfg.State("red")
	require.Len(t, red.Transitions, 1)
	assert.True(t, red.Transitions[0].Value.IsComputed())
}

func TestLoadFile_RunsLikeTheBuiltMachine(t *testing.T) {
	cfg, err := LoadFile("testdata/light.yaml", Builtins())
	require.NoError(t, err)
	require.NoError(t, Lint(cfg))

	m := stately.NewMachine(cfg)
	data := stately.NewContextFrom(map[string]any{"count": 0})
	_, err = m.Start(data)
	require.NoError(t, err)

	for _, want := range []string{"yellow", "red", "green", "yellow", "red"} {
		result, err := m.Invoke("timer", nil)
		require.NoError(t, err)
		require.True(t, result.Success(), "%v", result.Error)
		assert.Equal(t, want, result.CurrentState)
	}

	result, err := m.Invoke("timer", nil)
	require.NoError(t, err)
	require.NotNil(t, result.Error)
	assert.Equal(t, stately.KindMachineError, result.Error.Kind)
	assert.ErrorIs(t, result.Error, ErrLimitReached)
	assert.Equal(t, "red", m.CurrentState())
}

func TestLoadFile_SwitchAndFail(t *testing.T) {
	cfg, err := LoadFile("testdata/order.yaml", Builtins())
	require.NoError(t, err)

	invoiced, _ := cfg.State("invoiced")
	assert.Equal(t, "shipped", invoiced.Next)

	m := stately.NewMachine(cfg, stately.WithThrows(true))
	_, err = m.Start(stately.NewContextFrom(map[string]any{"payment": "card"}))
	require.NoError(t, err)

	result, err := m.Transition("checkout", nil)
	require.NoError(t, err)
	assert.Equal(t, "paying", result.CurrentState)

	_, err = m.Transition("decline", nil)
	require.Error(t, err)
	assert.Equal(t, "MACHINE_ERROR: card declined", err.Error())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		path string
	}{
		{name: "invalid yaml", yaml: "states: [", path: "definition"},
		{name: "missing states", yaml: "name: x", path: "states"},
		{name: "states not a mapping", yaml: "states: [a, b]", path: "states"},
		{name: "state is a list", yaml: "states:\n  a: [b]", path: "states.a"},
		{name: "transition is a list", yaml: "states:\n  a:\n    go: [b]", path: "states.a.go"},
		{name: "call without name", yaml: "states:\n  a:\n    go:\n      args: {}", path: "states.a.go"},
		{name: "unknown procedure", yaml: "states:\n  a:\n    go:\n      call: teleport", path: "states.a.go"},
		{name: "bad args", yaml: "states:\n  a:\n    go:\n      call: counter", path: "states.a.go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.yaml), Builtins())
			require.Error(t, err)

			var cfgErr *utils.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.path, cfgErr.Path)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("testdata/missing.yaml", Builtins())
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	custom := Registry{
		"fail": Static(func(context.Context, *stately.Context, any) (string, error) {
			return "recovered", nil
		}),
		"noop": Static(func(context.Context, *stately.Context, any) (string, error) {
			return "", nil
		}),
	}
	merged := Builtins().Merge(custom)

	assert.Equal(t, []string{"counter", "fail", "noop", "switch"}, merged.Names())
	assert.Equal(t, []string{"counter", "fail", "switch"}, Builtins().Names())

	procedure, err := merged["fail"](nil)
	require.NoError(t, err)
	state, err := procedure(context.Background(), stately.NewContext(), nil)
	require.NoError(t, err)
	assert.Equal(t, "recovered", state)
}

func TestBuiltins(t *testing.T) {
	ctx := context.Background()

	t.Run("counter without limit", func(t *testing.T) {
		procedure, err := Builtins()["counter"](map[string]any{"key": "n", "next": "a"})
		require.NoError(t, err)

		data := stately.NewContext()
		for i := 0; i < 3; i++ {
			state, err := procedure(ctx, data, nil)
			require.NoError(t, err)
			assert.Equal(t, "a", state)
		}
		n, _ := data.GetInt("n")
		assert.Equal(t, 3, n)
	})

	t.Run("counter argument errors", func(t *testing.T) {
		_, err := Builtins()["counter"](map[string]any{"key": "n"})
		assert.EqualError(t, err, `missing required argument "next"`)

		_, err = Builtins()["counter"](map[string]any{"key": "n", "next": "a", "limit": "two"})
		assert.EqualError(t, err, "counter: limit must be an integer, got string")

		_, err = Builtins()["counter"](map[string]any{"key": 1, "next": "a"})
		assert.EqualError(t, err, `argument "key" must be a string, got int`)
	})

	t.Run("switch", func(t *testing.T) {
		procedure, err := Builtins()["switch"](map[string]any{
			"key":   "code",
			"cases": map[string]any{"1": "one"},
		})
		require.NoError(t, err)

		state, err := procedure(ctx, stately.NewContextFrom(map[string]any{"code": 1}), nil)
		require.NoError(t, err)
		assert.Equal(t, "one", state)

		_, err = procedure(ctx, stately.NewContextFrom(map[string]any{"code": 2}), nil)
		assert.EqualError(t, err, "switch: no case for code=2")

		_, err = Builtins()["switch"](map[string]any{"key": "code", "cases": map[string]any{"1": 1}})
		assert.EqualError(t, err, `switch: case "1" must map to a state name`)
	})

	t.Run("fail default message", func(t *testing.T) {
		procedure, err := Builtins()["fail"](nil)
		require.NoError(t, err)
		_, err = procedure(ctx, stately.NewContext(), nil)
		assert.EqualError(t, err, "transition failed")
	})
}
