package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// appDirName is the directory name for configuration under XDG paths
const appDirName = "nmsmm"

// EnvPrefix marks environment variables that override configuration keys
const EnvPrefix = "NMSMM_"

// Config is the mod manager configuration.
type Config struct {
	// GameRoot pins the game installation directory. Empty means the game
	// is discovered from Steam libraries and default GOG locations.
	GameRoot string `koanf:"game_root"`

	Install InstallConfig `koanf:"install"`
}

// InstallConfig tunes the installation pipeline.
type InstallConfig struct {
	// CleanupRetries is the number of attempts at removing a temporary
	// extraction folder before giving up.
	CleanupRetries int `koanf:"cleanup_retries"`

	// CleanupBackoff is the delay before the first removal retry. The
	// delay doubles after every failed attempt.
	CleanupBackoff time.Duration `koanf:"cleanup_backoff"`

	// ExtractTimeout bounds a single archive extraction. Zero disables
	// the bound.
	ExtractTimeout time.Duration `koanf:"extract_timeout"`
}

// UserConfigPath returns the user configuration file location under the
// XDG config directory.
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appDirName, "config.toml")
}
