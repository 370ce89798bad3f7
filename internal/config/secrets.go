package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

const credentialsFileName = "credentials.json"

// Secrets is an opaque key-value secret store for the AI credential. The
// environment wins over the credentials file so CI and one-off runs never
// need a file on disk.
type Secrets struct {
	dir string
}

type credentials struct {
	OpenAIAPIKey string `json:"openai_api_key,omitempty"`
}

// NewSecrets creates a secret store rooted in the user config directory.
func NewSecrets() (*Secrets, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Secrets{dir: filepath.Join(homeDir, ".config", "quicknotes")}, nil
}

// NewSecretsAt creates a secret store rooted at dir, for tests.
func NewSecretsAt(dir string) *Secrets {
	return &Secrets{dir: dir}
}

// APIKey returns the configured AI API key, or "" when none is set.
func (s *Secrets) APIKey() string {
	if key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); key != "" {
		return key
	}
	creds, err := s.load()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(creds.OpenAIAPIKey)
}

// SetAPIKey stores the key in the credentials file with owner-only
// permissions. A blank key removes the stored credential.
func (s *Secrets) SetAPIKey(key string) error {
	creds, err := s.load()
	if err != nil {
		creds = &credentials{}
	}
	creds.OpenAIAPIKey = strings.TrimSpace(key)

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, credentialsFileName), data, 0600)
}

func (s *Secrets) load() (*credentials, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, credentialsFileName))
	if err != nil {
		return nil, err
	}
	var creds credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}
