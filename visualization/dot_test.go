package visualization_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anggasct/stately"
	"github.com/anggasct/stately/visualization"
)

func trafficLight() stately.Config {
	cycle := func(context.Context, *stately.Context, any) (string, error) {
		return "green", nil
	}

	return stately.Define("light").
		State("green").On("timer").To("yellow").
		State("yellow").On("timer").To("red").
		State("red").On("timer").Do(cycle).
		State("done").Final().
		Build()
}

func TestDOTGeneration(t *testing.T) {
	generator := visualization.NewDOTGenerator(trafficLight())

	dotContent, err := generator.Generate()
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "light", []byte(dotContent))
}

func TestDOTGeneration_HidesComputed(t *testing.T) {
	options := visualization.DefaultDOTOptions()
	options.ShowComputed = false

	dotContent, err := visualization.NewDOTGenerator(trafficLight(), options).Generate()
	require.NoError(t, err)

	assert.NotContains(t, dotContent, "__computed__")
	assert.Contains(t, dotContent, `"green" -> "yellow" [label="timer"];`)
}

func TestDOTGeneration_BareLabels(t *testing.T) {
	cfg := stately.Config{
		Name:    "collisions",
		Initial: "begin",
		States: []stately.StateDef{
			stately.Bare("begin", "state"),
			stately.Terminal("state"),
		},
	}

	dotContent, err := visualization.NewDOTGenerator(cfg).Generate()
	require.NoError(t, err)
	assert.Contains(t, dotContent, `"begin" -> "state" [style=dotted];`)

	options := visualization.DefaultDOTOptions()
	options.ShowBareLabels = false
	dotContent, err = visualization.NewDOTGenerator(cfg, options).Generate()
	require.NoError(t, err)
	assert.NotContains(t, dotContent, "dotted")
}

func TestDOTGeneration_InitialTerminal(t *testing.T) {
	cfg := stately.Config{Name: "single", Initial: "only", States: []stately.StateDef{stately.Terminal("only")}}

	dotContent, err := visualization.NewDOTGenerator(cfg).Generate()
	require.NoError(t, err)
	assert.Contains(t, dotContent, `"only" [label="only", shape=doublecircle, style=filled, fillcolor=lightgreen];`)
}

func TestDOTGeneration_NoStates(t *testing.T) {
	_, err := visualization.NewDOTGenerator(stately.Config{Name: "empty"}).Generate()
	assert.Error(t, err)
}

func TestDOTGenerator_SaveToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "light.dot")

	require.NoError(t, visualization.NewDOTGenerator(trafficLight()).SaveToFile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), `digraph "light" {`))
}
