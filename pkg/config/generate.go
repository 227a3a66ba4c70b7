package config

import (
	"strings"

	"github.com/Syzzle07/NMS-Mod-Manager/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
)

// GenerateConfigContent returns the default configuration with every value
// commented out, ready to be written as a starter user config file.
func GenerateConfigContent() string {
	return commentOutConfigValues(string(defaultConfig))
}

// commentOutConfigValues comments out all assignment lines of a TOML
// document, keeping comments, blank lines and section headers as-is
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Keep blank lines as-is
		if trimmed == "" {
			result = append(result, line)
			continue
		}

		// Keep lines that are already comments
		if strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		// Keep section headers (e.g., [install]) as-is
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		// Comment out configuration value lines
		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}

// effectiveView mirrors Config with human-readable durations for TOML output
type effectiveView struct {
	GameRoot string `toml:"game_root"`
	Install  struct {
		CleanupRetries int    `toml:"cleanup_retries"`
		CleanupBackoff string `toml:"cleanup_backoff"`
		ExtractTimeout string `toml:"extract_timeout"`
	} `toml:"install"`
}

// MarshalEffective renders the merged configuration as TOML, for
// `genconfig --effective`.
func MarshalEffective(cfg *Config) (string, error) {
	var v effectiveView
	v.GameRoot = cfg.GameRoot
	v.Install.CleanupRetries = cfg.Install.CleanupRetries
	v.Install.CleanupBackoff = cfg.Install.CleanupBackoff.String()
	v.Install.ExtractTimeout = cfg.Install.ExtractTimeout.String()

	out, err := toml.Marshal(v)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrSerialize, "failed to marshal configuration")
	}
	return string(out), nil
}
