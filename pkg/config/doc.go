// Package config loads the mod manager configuration.
//
// Configuration is merged from three layers, lowest priority first:
//
//  1. Embedded defaults (embedded/defaults.toml)
//  2. The user configuration file under the XDG config directory
//  3. NMSMM_-prefixed environment variables
//
// Environment keys map to config keys by stripping the prefix, lowering
// case, and turning double underscores into dots, so
// NMSMM_INSTALL__CLEANUP_RETRIES overrides install.cleanup_retries and
// NMSMM_GAME_ROOT overrides game_root.
package config
