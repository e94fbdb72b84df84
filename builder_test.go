package stately

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_FirstStateIsInitial(t *testing.T) {
	cfg := Define("door").
		State("closed").On("open").To("opened").
		State("opened").On("close").To("closed").
		Build()

	assert.Equal(t, "door", cfg.Name)
	assert.Equal(t, "closed", cfg.Initial)
	assert.Equal(t, []string{"closed", "opened"}, cfg.StateNames())
}

func TestBuilder_Initial(t *testing.T) {
	cfg := Define("door").
		State("closed").On("open").To("opened").
		State("opened").Initial().On("close").To("closed").
		Build()

	assert.Equal(t, "opened", cfg.Initial)
}

func TestBuilder_StateShapes(t *testing.T) {
	proc := func(context.Context, *Context, any) (string, error) { return "b", nil }

	cfg := Define("shapes").
		State("a").On("go").Do(proc).On("skip").To("c").
		State("b").Next("c").
		State("c").Final().
		Build()

	a, ok := cfg.State("a")
	require.True(t, ok)
	require.Len(t, a.Transitions, 2)
	assert.True(t, a.Transitions[0].Value.IsComputed())
	assert.Equal(t, "c", a.Transitions[1].Value.Target())

	b, _ := cfg.State("b")
	assert.Equal(t, "c", b.Next)
	assert.False(t, b.HasTransitions())

	c, _ := cfg.State("c")
	assert.True(t, c.IsTerminal())
}

func TestBuilder_RedeclaringTransitionReplacesIt(t *testing.T) {
	cfg := Define("m").
		State("a").On("go").To("b").On("go").To("c").
		State("b").Final().
		State("c").Final().
		Build()

	a, _ := cfg.State("a")
	require.Len(t, a.Transitions, 1)
	assert.Equal(t, "c", a.Transitions[0].Value.Target())
}

func TestBuilder_ResumingStateAppends(t *testing.T) {
	builder := Define("m")
	builder.State("a").On("x").To("b")
	builder.State("b").Final()
	cfg := builder.State("a").On("y").To("a").Build()

	a, _ := cfg.State("a")
	require.Len(t, a.Transitions, 2)
	assert.Equal(t, []string{"a", "b"}, cfg.StateNames())
}

func TestBuilder_BuildCopies(t *testing.T) {
	builder := Define("m")
	builder.State("a").On("x").To("b")
	first := builder.State("b").Final().Build()

	builder.State("a").On("y").To("b")
	second := builder.Build()

	a1, _ := first.State("a")
	a2, _ := second.State("a")
	assert.Len(t, a1.Transitions, 1)
	assert.Len(t, a2.Transitions, 2)
}

func TestConfig_Shapes(t *testing.T) {
	assert.True(t, Terminal("x").IsTerminal())
	assert.False(t, Bare("x", "y").IsTerminal())
	assert.False(t, Branch("x").IsTerminal(), "an empty transition map is not terminal")
	assert.True(t, Branch("x").HasTransitions())

	cfg := Config{States: []StateDef{Terminal("a"), Terminal("b"), Bare("a", "b")}}
	assert.Equal(t, []string{"a", "b"}, cfg.StateNames())

	_, ok := cfg.State("z")
	assert.False(t, ok)
}

func TestRegistry_LaterStateDefinitionWins(t *testing.T) {
	cfg := Config{
		Initial: "a",
		States: []StateDef{
			Branch("a", On("go", Literal("b"))),
			Terminal("b"),
			Bare("a", "b"),
		},
	}
	machine := NewMachine(cfg)
	_, err := machine.Start(nil)
	require.NoError(t, err)

	result, err := machine.Transition("go", nil)
	AssertMachineError(t, result, err, KindInvalidTransition)
}

func TestRegistry_ZeroTransitionNeverResolves(t *testing.T) {
	machine := NewMachine(Config{
		Initial: "a",
		States:  []StateDef{Branch("a", On("nothing", Transition{}), On("empty", Literal("")))},
	})
	_, err := machine.Start(nil)
	require.NoError(t, err)

	for _, name := range []string{"nothing", "empty"} {
		result, err := machine.Transition(name, nil)
		AssertMachineError(t, result, err, KindInvalidTransition)
	}
}
