package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDot(t *testing.T) {
	stdout, _, err := execute(t, "dot", "testdata/light.yaml")
	require.NoError(t, err)
	assertGolden(t, "dot_light", stdout)
}

func TestDotFlags(t *testing.T) {
	stdout, _, err := execute(t, "dot", "--rankdir", "TB", "--hide-computed", "testdata/light.yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "rankdir=TB;")
	assert.NotContains(t, stdout, "__computed__")
}

func TestDotToFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "light.dot")

	stdout, _, err := execute(t, "dot", "-o", output, "testdata/light.yaml")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	golden, err := os.ReadFile("testdata/golden/dot_light.golden")
	require.NoError(t, err)
	assert.Equal(t, string(golden), string(content))
}

func TestDotJSON(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "dot", "testdata/light.yaml")
	require.NoError(t, err)

	var resp struct {
		Status string            `json:"status"`
		Data   map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Contains(t, resp.Data["dot"], `digraph "light"`)
}
