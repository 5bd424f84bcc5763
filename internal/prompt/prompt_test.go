package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePrompt(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadPrompt(t *testing.T) {
	dir := t.TempDir()
	writePrompt(t, dir, "study.toml", `
system = "You are a patient teacher."
user = "Explain this passage:\n{{input}}"
model = "anthropic:claude-3-5-haiku-latest"
`)

	p, err := LoadPrompt(filepath.Join(dir, "study.toml"))
	require.NoError(t, err)
	assert.Equal(t, "You are a patient teacher.", p.System)
	assert.Contains(t, p.User, "{{input}}")
	require.NotNil(t, p.Model)
	assert.Equal(t, "anthropic:claude-3-5-haiku-latest", *p.Model)
}

func TestLoadPromptOptionalModel(t *testing.T) {
	dir := t.TempDir()
	writePrompt(t, dir, "plain.toml", `system = "Be brief."`)

	p, err := LoadPrompt(filepath.Join(dir, "plain.toml"))
	require.NoError(t, err)
	assert.Nil(t, p.Model)
}

func TestFindLaterDirWins(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writePrompt(t, first, "study.toml", `system = "from first"`)
	writePrompt(t, second, "study.toml", `system = "from second"`)

	p, err := Find("study", []string{first, second})
	require.NoError(t, err)
	assert.Equal(t, "from second", p.System)

	// The .toml suffix is optional on the name.
	p, err = Find("study.toml", []string{first})
	require.NoError(t, err)
	assert.Equal(t, "from first", p.System)
}

func TestFindMissing(t *testing.T) {
	_, err := Find("absent", []string{t.TempDir()})
	assert.Error(t, err)
}

func TestExpand(t *testing.T) {
	assert.Equal(t, "Explain: John 3:16", Expand("Explain: {{input}}", "John 3:16"))
	assert.Equal(t, "no placeholder", Expand("no placeholder", "x"))
	assert.Equal(t, "a b a b", Expand("{{input}} {{input}}", "a b"))
}
