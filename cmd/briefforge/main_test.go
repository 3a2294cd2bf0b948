package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"briefforge/internal/artifact"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GOOGLE_CLOUD_PROJECT", "GCP_PROJECT_ID", "GOOGLE_CLOUD_LOCATION", "GOOGLE_APPLICATION_CREDENTIALS",
		"BRIEFFORGE_DEFAULT_MODEL", "BRIEFFORGE_CACHE_TTL", "BRIEFFORGE_CACHE_SWEEP", "BRIEFFORGE_RETRY_DELAY",
		"BRIEFFORGE_PROBE_ON_INIT", "BRIEFFORGE_SINGLE_FLIGHT", "BRIEFFORGE_CONFIG",
	} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
}

func execute(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func TestStructuredInputs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inputs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"budget": "$1k", "features": ["cart", "blog"]}`), 0o644))

	o := &rootOptions{
		inputsFile: path,
		inputs:     map[string]string{"budget": "$2k", "techStack": "React, Go"},
	}
	in, err := o.structuredInputs()
	require.NoError(t, err)
	assert.Equal(t, "$2k", in.String(artifact.InputBudget))
	assert.Equal(t, "cart, blog", in.String(artifact.InputFeatures))
	assert.Equal(t, []string{"React", "Go"}, in[artifact.InputTechStack])
}

func TestReadText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brief.txt")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0o644))

	got, err := readText(strings.NewReader("from stdin"), "-")
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)

	got, err = readText(nil, "@"+path)
	require.NoError(t, err)
	assert.Equal(t, "from file", got)

	got, err = readText(nil, "literal")
	require.NoError(t, err)
	assert.Equal(t, "literal", got)
}

func TestCombinedCommand_Fake(t *testing.T) {
	isolateEnv(t)

	out := execute(t, "", "--fake", "combined", "A bakery website", "-i", "timeline=4 weeks")

	var res artifact.CombinedResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.IsMock)
	assert.Contains(t, res.Result.Code, "export default App;")
	_, ok := res.Result.Document()
	assert.True(t, ok)
}

func TestWebsiteCommand_NotConfiguredFallsBack(t *testing.T) {
	isolateEnv(t)

	out := execute(t, "I need an ecommerce store for selling handmade jewelry", "website", "-")

	var res artifact.WebsiteResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.IsMock)
	assert.Contains(t, res.HTMLCode, `"handmade jewelry"`)
}

func TestStatusCommand(t *testing.T) {
	isolateEnv(t)

	out := execute(t, "", "--fake", "status")
	assert.Contains(t, out, `"initialized": true`)
}
