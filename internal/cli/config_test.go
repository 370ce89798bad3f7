package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quicknotes/internal/config"
)

func TestConfigSetKeyStoresCredential(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	secrets := config.NewSecretsAt(t.TempDir())

	code := Run([]string{"config", "set-key", "sk-test-123"}, nil, nil, secrets)

	assert.Equal(t, 0, code)
	assert.Equal(t, "sk-test-123", secrets.APIKey())
}

func TestConfigSetKeyRejectsBlank(t *testing.T) {
	secrets := config.NewSecretsAt(t.TempDir())

	assert.Equal(t, 1, Run([]string{"config", "set-key", "   "}, nil, nil, secrets))
	assert.Equal(t, 1, Run([]string{"config", "set-key"}, nil, nil, secrets))
}
