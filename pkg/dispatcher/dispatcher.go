// Package dispatcher provides centralized command dispatching for mod
// operations. It acts as the entry point from the CLI layer: every
// subcommand funnels through Dispatch and gets back the one CommandResult
// shape the renderers understand.
package dispatcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Syzzle07/NMS-Mod-Manager/pkg/errors"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/install"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/logging"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/types"
)

// CommandType represents the type of mod command being executed
type CommandType string

const (
	// Installation pipeline commands
	CommandInstall  CommandType = "install"
	CommandResolve  CommandType = "resolve"
	CommandFinalize CommandType = "finalize"
	CommandCleanup  CommandType = "cleanup"

	// Removal commands
	CommandRemove        CommandType = "remove"
	CommandResetSettings CommandType = "reset-settings"

	// Query commands
	CommandList  CommandType = "list"
	CommandWhere CommandType = "where"
)

// Options contains all possible options for mod commands.
// Each command will use only the fields it needs.
type Options struct {
	// Common fields
	Paths      types.Pather
	FileSystem types.FS

	// For install
	ArchivePath    string
	CleanupRetries int
	CleanupBackoff time.Duration

	// For resolve and remove
	ModName string

	// For resolve
	StagedPath string
	Replace    bool

	// For finalize and cleanup
	TempPath string

	// For finalize
	NewName string

	// For remove
	Write bool
}

// Dispatch is the central dispatcher for all mod commands. It calls the
// appropriate install function based on the command type and wraps the
// outcome in a CommandResult.
func Dispatch(ctx context.Context, cmdType CommandType, opts Options) (*types.CommandResult, error) {
	logger := logging.GetLogger("dispatcher")
	logger.Debug().
		Str("command", string(cmdType)).
		Str("archive", opts.ArchivePath).
		Str("mod", opts.ModName).
		Msg("Dispatching command")

	result := &types.CommandResult{
		Command:   string(cmdType),
		Timestamp: time.Now(),
	}

	switch cmdType {
	case CommandInstall:
		analysis, err := install.InstallFromArchive(ctx, install.InstallOptions{
			Paths:          opts.Paths,
			FileSystem:     opts.FileSystem,
			ArchivePath:    opts.ArchivePath,
			CleanupRetries: opts.CleanupRetries,
			CleanupBackoff: opts.CleanupBackoff,
		})
		if err != nil {
			return nil, err
		}
		result.Analysis = analysis
		result.Message = installMessage(analysis)
		return result, nil

	case CommandResolve:
		err := install.ResolveConflict(install.ResolveOptions{
			Paths:      opts.Paths,
			FileSystem: opts.FileSystem,
			ModName:    opts.ModName,
			StagedPath: opts.StagedPath,
			Replace:    opts.Replace,
		})
		if err != nil {
			return nil, err
		}
		if opts.Replace {
			result.Message = fmt.Sprintf("replaced %s with the staged version", opts.ModName)
		} else {
			result.Message = fmt.Sprintf("discarded the staged version of %s", opts.ModName)
		}
		return result, nil

	case CommandFinalize:
		finalPath, err := install.FinalizeMessy(install.FinalizeOptions{
			FileSystem: opts.FileSystem,
			TempPath:   opts.TempPath,
			NewName:    opts.NewName,
		})
		if err != nil {
			return nil, err
		}
		result.Finalized = &types.ModInstall{Name: opts.NewName, Path: finalPath}
		result.Message = fmt.Sprintf("installed %s", opts.NewName)
		return result, nil

	case CommandCleanup:
		if err := install.CleanupTemp(opts.FileSystem, opts.TempPath); err != nil {
			return nil, err
		}
		result.Message = fmt.Sprintf("removed temporary folder %s", opts.TempPath)
		return result, nil

	case CommandRemove:
		deleteResult, err := install.DeleteMod(install.DeleteOptions{
			Paths:      opts.Paths,
			FileSystem: opts.FileSystem,
			ModName:    opts.ModName,
			Write:      opts.Write,
		})
		if err != nil {
			return nil, err
		}
		result.Delete = deleteResult
		result.Message = removeMessage(deleteResult)
		return result, nil

	case CommandResetSettings:
		resetResult, err := install.ResetSettings(install.ResetOptions{
			Paths:      opts.Paths,
			FileSystem: opts.FileSystem,
		})
		if err != nil {
			return nil, err
		}
		result.Reset = resetResult
		if resetResult.Removed {
			result.Message = "settings file deleted"
		} else {
			result.Message = "settings file not found"
		}
		return result, nil

	case CommandList:
		listResult, err := install.ListMods(install.ListOptions{
			Paths:      opts.Paths,
			FileSystem: opts.FileSystem,
		})
		if err != nil {
			return nil, err
		}
		result.List = listResult
		return result, nil

	case CommandWhere:
		whereResult, err := install.Where(install.WhereOptions{
			Paths:      opts.Paths,
			FileSystem: opts.FileSystem,
		})
		if err != nil {
			return nil, err
		}
		result.Where = whereResult
		return result, nil

	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown command type: %s", cmdType)
	}
}

func installMessage(analysis *types.InstallationAnalysis) string {
	if analysis.IsMessy() {
		msg := fmt.Sprintf("no mod folders in archive; finalize %s with a name", analysis.MessyPath)
		if analysis.SuggestedName != "" {
			msg += fmt.Sprintf(" (suggestion: %s)", analysis.SuggestedName)
		}
		return msg
	}

	parts := make([]string, 0, 2)
	if len(analysis.Installed) > 0 {
		parts = append(parts, "installed "+joinNames(analysis.Installed))
	}
	if len(analysis.Conflicts) > 0 {
		parts = append(parts, "conflicts staged: "+joinNames(analysis.Conflicts))
	}
	return strings.Join(parts, "; ")
}

func removeMessage(deleteResult *types.DeleteResult) string {
	msg := fmt.Sprintf("removed %s", deleteResult.ModName)
	if !deleteResult.FolderRemoved {
		msg += " (no mod folder on disk)"
	}
	if deleteResult.SettingsWritten {
		msg += ", settings updated"
	}
	return msg
}

func joinNames(mods []types.ModInstall) string {
	names := make([]string, len(mods))
	for i, mod := range mods {
		names[i] = mod.Name
	}
	return strings.Join(names, ", ")
}
