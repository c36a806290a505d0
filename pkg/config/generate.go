package config

import (
	"bytes"
	"strings"

	"github.com/arthur-debert/filemap/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// GenerateConfigContent returns the defaults file with every value
// commented out, ready to be saved as a user config
func GenerateConfigContent() string {
	return commentOutConfigValues(GetDefaultsContent())
}

// Marshal renders cfg as TOML
func Marshal(cfg *Config) (string, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return "", errors.Wrap(err, errors.ErrRenderFailed, "failed to encode configuration")
	}
	return buf.String(), nil
}

// commentOutConfigValues takes the TOML content and comments out all non-comment, non-blank lines
// that contain configuration values (assignments)
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		// Section headers stay live so uncommenting a value is enough
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
