package yuzu

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "yuzu.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadConfigDefaultsWhenFileMissing(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "text", config.Output.Format)
	assert.Equal(t, "auto", config.Output.Color)
	assert.Equal(t, []string{".yz"}, config.Watch.Extensions)
	assert.Equal(t, 200*time.Millisecond, config.Watch.Debounce)
	assert.False(t, config.Scope.InstanceContext)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
scope:
  locals:
    - table
    - row
  promoted_types:
    row: Row
  instance_context: true
  members:
    holder: Counter
    fields:
      - count
    getters:
      - max
output:
  format: tree
  color: never
eval:
  variables:
    limit: 10
  trace: true
watch:
  extensions:
    - .yz
    - .yuzu
  debounce: 50ms
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"table", "row"}, config.Scope.Locals)
	assert.Equal(t, "Row", config.Scope.PromotedTypes["row"])
	assert.True(t, config.Scope.InstanceContext)
	assert.Equal(t, "Counter", config.Scope.Members.Holder)
	assert.True(t, config.Scope.Members.HasMembers())
	assert.False(t, config.Scope.SuperMembers.HasMembers())
	assert.Equal(t, "tree", config.Output.Format)
	assert.Equal(t, "never", config.Output.Color)
	assert.True(t, config.Eval.Trace)
	assert.Equal(t, []string{".yz", ".yuzu"}, config.Watch.Extensions)
	assert.Equal(t, 50*time.Millisecond, config.Watch.Debounce)
}

func TestLoadConfigAppliesDefaultsToPartialFiles(t *testing.T) {
	path := writeConfig(t, `
scope:
  locals:
    - x
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "text", config.Output.Format)
	assert.Equal(t, "auto", config.Output.Color)
	assert.Equal(t, []string{".yz"}, config.Watch.Extensions)
	assert.NotNil(t, config.Eval.Variables)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "invalid output format",
			content: `
output:
  format: xml
`,
		},
		{
			name: "invalid color mode",
			content: `
output:
  color: sometimes
`,
		},
		{
			name: "promoted type for undeclared local",
			content: `
scope:
  promoted_types:
    ghost: Ghost
`,
		},
		{
			name: "negative debounce",
			content: `
watch:
  debounce: -1s
`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, test.content))
			assert.ErrorIs(t, err, ErrConfigValidation)
		})
	}
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, `
scope:
  locals: []
  typo_field: true
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("YUZU_HOLDER", "Counter")

	assert.Equal(t, "Counter", expandEnvVars("${YUZU_HOLDER}"))
	assert.Equal(t, "Counter", expandEnvVars("$YUZU_HOLDER"))
	assert.Equal(t, "plain", expandEnvVars("plain"))
}

func TestLoadConfigExpandsEnvVars(t *testing.T) {
	t.Setenv("YUZU_HOLDER", "Counter")
	t.Setenv("YUZU_TITLE", "untitled")

	path := writeConfig(t, `
scope:
  members:
    holder: ${YUZU_HOLDER}
    fields:
      - count
eval:
  variables:
    title: $YUZU_TITLE
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Counter", config.Scope.Members.Holder)
	assert.Equal(t, "untitled", config.Eval.Variables["title"].(string))
}
