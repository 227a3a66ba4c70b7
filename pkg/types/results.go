package types

import "time"

// ModInstall identifies a single mod folder by name and absolute path.
type ModInstall struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// InstallationAnalysis is the outcome of installing mods from an archive.
// Installed mods went straight into the mods root; Conflicts were moved to
// a staging area and wait for a resolve decision; MessyPath is set when the
// archive had no top-level directories and points at the extraction folder
// left behind for finalize.
type InstallationAnalysis struct {
	Installed []ModInstall `json:"installed"`
	Conflicts []ModInstall `json:"conflicts"`
	MessyPath string       `json:"messyPath,omitempty"`

	// SuggestedName is a best-effort name for the messy case, derived from
	// the archive layout. Empty when no single obvious name exists.
	SuggestedName string `json:"suggestedName,omitempty"`
}

// HasConflicts reports whether any candidate was staged for resolution.
func (a *InstallationAnalysis) HasConflicts() bool {
	return len(a.Conflicts) > 0
}

// IsMessy reports whether the archive contents need a finalize step.
func (a *InstallationAnalysis) IsMessy() bool {
	return a.MessyPath != ""
}

// DeleteResult holds the result of the 'remove' command: what was removed
// on disk and the reconciled settings document.
type DeleteResult struct {
	ModName        string `json:"modName"`
	FolderRemoved  bool   `json:"folderRemoved"`
	EntriesRemoved int    `json:"entriesRemoved"`

	// Settings is the canonical serialization of the reconciled document.
	// The reconciler never writes it; persisting is the caller's choice.
	Settings        string `json:"settings"`
	SettingsWritten bool   `json:"settingsWritten"`
}

// ModInfo contains summary information about a single installed mod,
// merged from the mods root and the settings file.
type ModInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`

	// Priority is the mod's ModPriority from the settings file,
	// or -1 when the mod has no settings entry.
	Priority   int  `json:"priority"`
	InSettings bool `json:"inSettings"`
}

// ListModsResult holds the result of the 'list' command.
type ListModsResult struct {
	Mods []ModInfo `json:"mods"`
}

// WhereResult holds the resolved on-disk locations for the game.
type WhereResult struct {
	GameRoot       string `json:"gameRoot"`
	ModsRoot       string `json:"modsRoot"`
	SettingsPath   string `json:"settingsPath"`
	SettingsExists bool   `json:"settingsExists"`
}

// ResetSettingsResult holds the result of the 'reset-settings' command.
type ResetSettingsResult struct {
	Path    string `json:"path"`
	Removed bool   `json:"removed"`
}

// CommandResult is the top-level structure for commands that produce
// rich output. Exactly one payload field is set, matching the command.
type CommandResult struct {
	Command   string    `json:"command"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`

	Analysis  *InstallationAnalysis `json:"analysis,omitempty"`
	Delete    *DeleteResult         `json:"delete,omitempty"`
	Finalized *ModInstall           `json:"finalized,omitempty"`
	List      *ListModsResult       `json:"list,omitempty"`
	Where     *WhereResult          `json:"where,omitempty"`
	Reset     *ResetSettingsResult  `json:"reset,omitempty"`
}
