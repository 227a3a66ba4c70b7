package types

import (
	"io"
	"io/fs"
)

// FS is the filesystem interface required for mod manager operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Create(name string) (io.WriteCloser, error)

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Move and removal operations
	Rename(oldpath, newpath string) error
	Remove(name string) error
	RemoveAll(path string) error
}

// Pather provides the on-disk locations the mod manager operates on
type Pather interface {
	// GameRoot returns the root directory of the game installation
	GameRoot() string

	// ModsRoot returns the directory mods are installed into,
	// <game-root>/GAMEDATA/MODS
	ModsRoot() string

	// SettingsPath returns the path of the mod settings file,
	// <game-root>/Binaries/SETTINGS/GCMODSETTINGS.MXML
	SettingsPath() string

	// TempExtractPath returns a fresh unique extraction directory path
	// under the mods root. The directory is not created.
	TempExtractPath() string

	// TempStagingPath returns a fresh unique staging directory path
	// under the mods root. The directory is not created.
	TempStagingPath() string
}
