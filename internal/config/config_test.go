package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateHome points HOME at a temp dir so tests never touch the real
// config file.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("QUICKNOTES_DIR", "")
	t.Setenv("QUICKNOTES_AI_AUTO_TAG", "")
	t.Setenv("QUICKNOTES_AUTO_TAG_LIMIT", "")
	t.Setenv("QUICKNOTES_AI_MODEL", "")
	return home
}

func writeConfigFile(t *testing.T, home string, settings Settings) {
	t.Helper()
	dir := filepath.Join(home, ".config", "quicknotes")
	require.NoError(t, os.MkdirAll(dir, 0755))
	data, err := json.Marshal(settings)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), data, 0644))
}

func TestLoadDefaults(t *testing.T) {
	home := isolateHome(t)

	cfg, err := Load(CLIFlags{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "quicknotes"), cfg.DataDir)
	assert.False(t, cfg.IsAIMode())
	assert.Equal(t, 3, cfg.AutoTagLimit())
	assert.Equal(t, "auto", cfg.SelectedModelKey())
	assert.Equal(t, "notes", cfg.DefaultView)
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := isolateHome(t)
	enabled := true
	writeConfigFile(t, home, Settings{
		DataDir:   "~/mynotes",
		AIEnabled: &enabled,
		TagLimit:  5,
		Model:     "gpt-4o",
	})

	cfg, err := Load(CLIFlags{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "mynotes"), cfg.DataDir)
	assert.True(t, cfg.IsAIMode())
	assert.Equal(t, 5, cfg.AutoTagLimit())
	assert.Equal(t, "gpt-4o", cfg.SelectedModelKey())
}

func TestEnvOverridesConfigFile(t *testing.T) {
	home := isolateHome(t)
	writeConfigFile(t, home, Settings{DataDir: "~/fromfile", Model: "gpt-4o"})
	t.Setenv("QUICKNOTES_DIR", filepath.Join(home, "fromenv"))
	t.Setenv("QUICKNOTES_AI_AUTO_TAG", "true")
	t.Setenv("QUICKNOTES_AI_MODEL", "gpt-4.1")

	cfg, err := Load(CLIFlags{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "fromenv"), cfg.DataDir)
	assert.True(t, cfg.IsAIMode())
	assert.Equal(t, "gpt-4.1", cfg.SelectedModelKey())
}

func TestFlagsOverrideEverything(t *testing.T) {
	home := isolateHome(t)
	t.Setenv("QUICKNOTES_DIR", filepath.Join(home, "fromenv"))
	t.Setenv("QUICKNOTES_AI_AUTO_TAG", "true")

	cfg, err := Load(CLIFlags{DataDir: filepath.Join(home, "fromflag"), AIMode: "off"})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "fromflag"), cfg.DataDir)
	assert.False(t, cfg.IsAIMode())
}

func TestEnsureConfigFileCreatesOnce(t *testing.T) {
	home := isolateHome(t)

	require.NoError(t, EnsureConfigFile())
	path := filepath.Join(home, ".config", "quicknotes", "config.json")
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"ai_model":"custom"}`), 0644))
	require.NoError(t, EnsureConfigFile(), "existing file must be kept")
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, string(first), string(second))
	assert.Contains(t, string(second), "custom")
}

func TestAutoTagLimitGuardsNonPositive(t *testing.T) {
	cfg := &Config{TagLimit: 0}
	assert.Equal(t, 3, cfg.AutoTagLimit())
}

func TestWithoutAIDisablesOnlyAIMode(t *testing.T) {
	cfg := &Config{AIEnabled: true, TagLimit: 5, Model: "gpt-4o"}

	oneShot := cfg.WithoutAI()
	assert.False(t, oneShot.IsAIMode())
	assert.Equal(t, 5, oneShot.AutoTagLimit())
	assert.Equal(t, "gpt-4o", oneShot.SelectedModelKey())

	// The loaded config is untouched.
	assert.True(t, cfg.IsAIMode())
}

func TestSecretsEnvWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	secrets := NewSecretsAt(dir)
	require.NoError(t, secrets.SetAPIKey("sk-file"))

	t.Setenv("OPENAI_API_KEY", "sk-env")
	assert.Equal(t, "sk-env", secrets.APIKey())

	t.Setenv("OPENAI_API_KEY", "")
	assert.Equal(t, "sk-file", secrets.APIKey())
}

func TestSecretsMissingEverythingIsEmpty(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	secrets := NewSecretsAt(t.TempDir())
	assert.Empty(t, secrets.APIKey())
}

func TestSecretsFileHasOwnerOnlyPermissions(t *testing.T) {
	dir := t.TempDir()
	secrets := NewSecretsAt(dir)
	require.NoError(t, secrets.SetAPIKey("sk-x"))

	info, err := os.Stat(filepath.Join(dir, "credentials.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
