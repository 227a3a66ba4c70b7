package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort          = "A mod manager for No Man's Sky"
	MsgInstallShort       = "Install mods from a ZIP or RAR archive"
	MsgResolveShort       = "Apply a decision for a staged mod conflict"
	MsgFinalizeShort      = "Name a messy extraction and move it into place"
	MsgCleanupShort       = "Remove leftover temporary folders"
	MsgRemoveShort        = "Remove an installed mod and its settings entries"
	MsgListShort          = "List installed mods"
	MsgListLong           = "List shows the mod folders under the mods root merged with their settings entries and priorities."
	MsgWhereShort         = "Print the game locations in use"
	MsgResetSettingsShort = "Delete the mod settings file"
	MsgGenConfigShort     = "Generate the configuration file"
	MsgVersionShort       = "Print version information"
	MsgTopicsShort        = "Display available documentation topics"
	MsgTopicsLong         = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort    = "Generate shell completion script"

	// Status messages
	MsgAborted       = "aborted"
	MsgNoTempFolders = "no temporary folders found"
	MsgConfigWritten = "Wrote %s\n"
	MsgConfirmReset  = "Delete the mod settings file? The game rebuilds it on the next launch."

	// Error messages
	MsgErrNoCommand = "no command specified"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat      = "Output format (auto, term, text, json)"
	MsgFlagGameRoot    = "Game installation directory (overrides discovery)"
	MsgFlagReplace     = "Install the staged version over the existing mod"
	MsgFlagDiscard     = "Throw the staged version away"
	MsgFlagWrite       = "Write the reconciled settings file back to disk"
	MsgFlagYes         = "Skip the confirmation prompt"
	MsgFlagConfigWrite = "Write the config file instead of printing it"
	MsgFlagEffective   = "Print the effective configuration after all overrides"

	// Debug messages
	MsgDebugGameRoot = "Debug: Using game root: %s (source=%s)\n"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimSpace(msgInstallExampleRaw)

	//go:embed msgs/resolve-long.txt
	msgResolveLongRaw string
	MsgResolveLong    = strings.TrimSpace(msgResolveLongRaw)

	//go:embed msgs/resolve-example.txt
	msgResolveExampleRaw string
	MsgResolveExample    = strings.TrimSpace(msgResolveExampleRaw)

	//go:embed msgs/finalize-long.txt
	msgFinalizeLongRaw string
	MsgFinalizeLong    = strings.TrimSpace(msgFinalizeLongRaw)

	//go:embed msgs/finalize-example.txt
	msgFinalizeExampleRaw string
	MsgFinalizeExample    = strings.TrimSpace(msgFinalizeExampleRaw)

	//go:embed msgs/cleanup-long.txt
	msgCleanupLongRaw string
	MsgCleanupLong    = strings.TrimSpace(msgCleanupLongRaw)

	//go:embed msgs/remove-long.txt
	msgRemoveLongRaw string
	MsgRemoveLong    = strings.TrimSpace(msgRemoveLongRaw)

	//go:embed msgs/remove-example.txt
	msgRemoveExampleRaw string
	MsgRemoveExample    = strings.TrimSpace(msgRemoveExampleRaw)

	//go:embed msgs/list-example.txt
	msgListExampleRaw string
	MsgListExample    = strings.TrimSpace(msgListExampleRaw)

	//go:embed msgs/where-long.txt
	msgWhereLongRaw string
	MsgWhereLong    = strings.TrimSpace(msgWhereLongRaw)

	//go:embed msgs/reset-settings-long.txt
	msgResetSettingsLongRaw string
	MsgResetSettingsLong    = strings.TrimSpace(msgResetSettingsLongRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/genconfig-example.txt
	msgGenConfigExampleRaw string
	MsgGenConfigExample    = strings.TrimSpace(msgGenConfigExampleRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
