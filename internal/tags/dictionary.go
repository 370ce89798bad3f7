package tags

import (
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"

	"quicknotes/internal/logs"
)

//go:embed keywords.yaml
var keywordsAsset []byte

type keywordEntry struct {
	Keyword string `yaml:"keyword"`
	Tag     string `yaml:"tag"`
}

// LoadKeywordDictionary parses the bundled keyword-to-tag dictionary used
// by the keyword auto-tagging strategy. Keys are lowercased. A parse
// failure yields an empty map rather than an error; keyword tagging then
// simply assigns nothing.
func LoadKeywordDictionary() map[string]string {
	var entries []keywordEntry
	if err := yaml.Unmarshal(keywordsAsset, &entries); err != nil {
		logs.Logger.Errorw("could not parse keyword dictionary", "err", err)
		return map[string]string{}
	}
	dict := make(map[string]string, len(entries))
	for _, e := range entries {
		keyword := strings.ToLower(strings.TrimSpace(e.Keyword))
		tag := strings.TrimSpace(e.Tag)
		if keyword == "" || tag == "" {
			continue
		}
		dict[keyword] = tag
	}
	return dict
}
