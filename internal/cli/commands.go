// Package cli assembles the nmsmm command tree. Every subcommand funnels
// through the dispatcher and renders the returned CommandResult in the
// format selected by --format.
package cli

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Syzzle07/NMS-Mod-Manager/internal/version"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/cobrax/topics"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/config"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/dispatcher"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/errors"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/filesystem"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/install"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/logging"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/paths"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/types"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/ui"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/ui/confirmations"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicsFS embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "nmsmm",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			// Show help but return an error to indicate incorrect usage
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().String("format", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().String("game-root", "", MsgFlagGameRoot)

	// Disable automatic help command (we'll use our custom one from topics)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate + "\n")

	// Add all commands
	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newFinalizeCmd())
	rootCmd.AddCommand(newCleanupCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newWhereCmd())
	rootCmd.AddCommand(newResetSettingsCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Initialize topic-based help system from the embedded topic files
	if sub, err := fs.Sub(topicsFS, "topics"); err == nil {
		_ = topics.InitializeWithOptions(rootCmd, sub, topics.Options{
			Extensions: []string{".txt", ".md"},
			// Always use Glamour renderer for markdown files
			Renderer: topics.NewGlamourRenderer(),
		})
	}

	return rootCmd
}

// commandEnv carries what a subcommand needs to run against one game install.
type commandEnv struct {
	cfg   *config.Config
	paths paths.Paths
}

// initEnvironment loads the configuration and resolves the game install.
// The --game-root flag wins over the configured root, which wins over
// Steam/GOG discovery.
func initEnvironment(cmd *cobra.Command) (*commandEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	gameRoot, _ := cmd.Root().PersistentFlags().GetString("game-root")
	if gameRoot == "" {
		gameRoot = cfg.GameRoot
	}

	p, err := paths.New(gameRoot)
	if err != nil {
		return nil, err
	}

	// Debug: report how we found the game
	if os.Getenv("NMSMM_DEBUG") != "" {
		fmt.Fprintf(os.Stderr, MsgDebugGameRoot, p.GameRoot(), p.Source())
	}

	return &commandEnv{cfg: cfg, paths: p}, nil
}

// newRenderer builds the output renderer selected by --format.
func newRenderer(cmd *cobra.Command) (ui.Renderer, error) {
	name, _ := cmd.Root().PersistentFlags().GetString("format")
	format, err := ui.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// modNamesCompletion provides shell completion for installed mod names
func modNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	env, err := initEnvironment(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	result, err := install.ListMods(install.ListOptions{Paths: env.paths})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, mod := range result.Mods {
		names = append(names, mod.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// stagedNamesCompletion provides shell completion for staged mod names
func stagedNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	env, err := initEnvironment(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	candidates, err := listStagedCandidates(filesystem.NewOS(), env.paths)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, c := range candidates {
		names = append(names, c.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "install <archive>",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := initEnvironment(cmd)
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if timeout := env.cfg.Install.ExtractTimeout; timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			log.Info().
				Str("archive", args[0]).
				Str("mods_root", env.paths.ModsRoot()).
				Msg("Installing from archive")

			result, err := dispatcher.Dispatch(ctx, dispatcher.CommandInstall, dispatcher.Options{
				Paths:          env.paths,
				ArchivePath:    args[0],
				CleanupRetries: env.cfg.Install.CleanupRetries,
				CleanupBackoff: env.cfg.Install.CleanupBackoff,
			})
			if err != nil {
				return err
			}
			return renderer.RenderResult(result)
		},
	}
}

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "resolve <mod-name> [staged-path]",
		Short:             MsgResolveShort,
		Long:              MsgResolveLong,
		Example:           MsgResolveExample,
		GroupID:           "core",
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: stagedNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := initEnvironment(cmd)
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}

			replace, _ := cmd.Flags().GetBool("replace")

			modName := args[0]
			var stagedPath string
			if len(args) == 2 {
				stagedPath = args[1]
			} else {
				candidate, err := findStagedMod(filesystem.NewOS(), env.paths, modName)
				if err != nil {
					return err
				}
				// The on-disk casing wins over what the user typed
				modName = candidate.Name
				stagedPath = candidate.Path
			}

			result, err := dispatcher.Dispatch(cmd.Context(), dispatcher.CommandResolve, dispatcher.Options{
				Paths:      env.paths,
				ModName:    modName,
				StagedPath: stagedPath,
				Replace:    replace,
			})
			if err != nil {
				return err
			}
			return renderer.RenderResult(result)
		},
	}

	cmd.Flags().Bool("replace", false, MsgFlagReplace)
	cmd.Flags().Bool("discard", false, MsgFlagDiscard)
	cmd.MarkFlagsMutuallyExclusive("replace", "discard")
	cmd.MarkFlagsOneRequired("replace", "discard")

	return cmd
}

func newFinalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "finalize [temp-path] <new-name>",
		Short:   MsgFinalizeShort,
		Long:    MsgFinalizeLong,
		Example: MsgFinalizeExample,
		GroupID: "core",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := initEnvironment(cmd)
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}

			var tempPath, newName string
			if len(args) == 2 {
				tempPath, newName = args[0], args[1]
			} else {
				newName = args[0]
				tempPath, err = findExtractionDir(filesystem.NewOS(), env.paths)
				if err != nil {
					return err
				}
			}

			result, err := dispatcher.Dispatch(cmd.Context(), dispatcher.CommandFinalize, dispatcher.Options{
				TempPath: tempPath,
				NewName:  newName,
			})
			if err != nil {
				return err
			}
			return renderer.RenderResult(result)
		},
	}
}

func newCleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "cleanup [path]",
		Short:   MsgCleanupShort,
		Long:    MsgCleanupLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := initEnvironment(cmd)
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}

			targets := args
			if len(targets) == 0 {
				targets, err = findTempDirs(filesystem.NewOS(), env.paths)
				if err != nil {
					return err
				}
				if len(targets) == 0 {
					return renderer.RenderMessage(MsgNoTempFolders)
				}
			}

			for _, path := range targets {
				result, err := dispatcher.Dispatch(cmd.Context(), dispatcher.CommandCleanup, dispatcher.Options{
					TempPath: path,
				})
				if err != nil {
					return err
				}
				if err := renderer.RenderResult(result); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "remove <mod-name>",
		Short:             MsgRemoveShort,
		Long:              MsgRemoveLong,
		Example:           MsgRemoveExample,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: modNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := initEnvironment(cmd)
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}

			write, _ := cmd.Flags().GetBool("write")
			yes, _ := cmd.Flags().GetBool("yes")

			if !yes {
				ok, err := confirmations.NewConsoleDialog().ConfirmRemoval(args[0])
				if err != nil {
					return err
				}
				if !ok {
					return renderer.RenderMessage(MsgAborted)
				}
			}

			result, err := dispatcher.Dispatch(cmd.Context(), dispatcher.CommandRemove, dispatcher.Options{
				Paths:   env.paths,
				ModName: args[0],
				Write:   write,
			})
			if err != nil {
				return err
			}
			return renderer.RenderResult(result)
		},
	}

	cmd.Flags().BoolP("write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolP("yes", "y", false, MsgFlagYes)

	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		Example: MsgListExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := initEnvironment(cmd)
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}

			result, err := dispatcher.Dispatch(cmd.Context(), dispatcher.CommandList, dispatcher.Options{
				Paths: env.paths,
			})
			if err != nil {
				return err
			}
			return renderer.RenderResult(result)
		},
	}
}

func newWhereCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "where",
		Short:   MsgWhereShort,
		Long:    MsgWhereLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := initEnvironment(cmd)
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}

			result, err := dispatcher.Dispatch(cmd.Context(), dispatcher.CommandWhere, dispatcher.Options{
				Paths: env.paths,
			})
			if err != nil {
				return err
			}
			return renderer.RenderResult(result)
		},
	}
}

func newResetSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reset-settings",
		Short:   MsgResetSettingsShort,
		Long:    MsgResetSettingsLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := initEnvironment(cmd)
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}

			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				ok, err := confirmations.NewConsoleDialog().Confirm(MsgConfirmReset, false)
				if err != nil {
					return err
				}
				if !ok {
					return renderer.RenderMessage(MsgAborted)
				}
			}

			result, err := dispatcher.Dispatch(cmd.Context(), dispatcher.CommandResetSettings, dispatcher.Options{
				Paths: env.paths,
			})
			if err != nil {
				return err
			}
			return renderer.RenderResult(result)
		},
	}

	cmd.Flags().BoolP("yes", "y", false, MsgFlagYes)

	return cmd
}

func newGenConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			effective, _ := cmd.Flags().GetBool("effective")
			write, _ := cmd.Flags().GetBool("write")

			content := config.GenerateConfigContent()
			if effective {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				content, err = config.MarshalEffective(cfg)
				if err != nil {
					return err
				}
			}

			if write {
				path := config.UserConfigPath()
				if _, err := os.Stat(path); err == nil {
					return errors.Newf(errors.ErrAlreadyExists, "config file %s already exists", path)
				}
				if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
					return errors.Wrapf(err, errors.ErrIO, "failed to create config directory for %s", path)
				}
				if err := os.WriteFile(path, []byte(content), 0644); err != nil {
					return errors.Wrapf(err, errors.ErrIO, "failed to write config file %s", path)
				}
				cmd.Printf(MsgConfigWritten, path)
				return nil
			}

			cmd.Print(content)
			return nil
		},
	}

	cmd.Flags().BoolP("write", "w", false, MsgFlagConfigWrite)
	cmd.Flags().Bool("effective", false, MsgFlagEffective)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("nmsmm version %s\n", version.Version)
			if version.Commit != "unknown" {
				cmd.Printf("Commit: %s\n", version.Commit)
			}
			if version.Date != "unknown" {
				cmd.Printf("Built:  %s\n", version.Date)
			}
		},
	}
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Find the help command and execute it with "topics" argument
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil {
				if helpCmd.RunE != nil {
					return helpCmd.RunE(helpCmd, []string{"topics"})
				} else if helpCmd.Run != nil {
					helpCmd.Run(helpCmd, []string{"topics"})
					return nil
				}
			}
			return errors.New(errors.ErrInternal, "help command not found")
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}
}

// stagedCandidate is one mod folder waiting inside a staging directory.
type stagedCandidate struct {
	Name string
	Path string
}

// listStagedCandidates scans the staging folders under the mods root.
func listStagedCandidates(fsys types.FS, p types.Pather) ([]stagedCandidate, error) {
	modsRoot := p.ModsRoot()
	entries, err := fsys.ReadDir(modsRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to read mods folder %s", modsRoot)
	}

	var out []stagedCandidate
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), paths.TempStagingPrefix) {
			continue
		}
		dir := filepath.Join(modsRoot, entry.Name())
		candidates, err := fsys.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, c := range candidates {
			if c.IsDir() {
				out = append(out, stagedCandidate{Name: c.Name(), Path: filepath.Join(dir, c.Name())})
			}
		}
	}
	return out, nil
}

// findStagedMod locates the staged candidate for a mod name. The candidate's
// on-disk casing wins over what the user typed.
func findStagedMod(fsys types.FS, p types.Pather, modName string) (stagedCandidate, error) {
	candidates, err := listStagedCandidates(fsys, p)
	if err != nil {
		return stagedCandidate{}, err
	}

	var matches []stagedCandidate
	for _, c := range candidates {
		if strings.EqualFold(c.Name, modName) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return stagedCandidate{}, errors.Newf(errors.ErrNotFound, "no staged version of %q found", modName)
	case 1:
		return matches[0], nil
	default:
		var locations []string
		for _, m := range matches {
			locations = append(locations, m.Path)
		}
		return stagedCandidate{}, errors.Newf(errors.ErrInvalidInput,
			"several staged versions of %q found; pass one of:\n  %s", modName, strings.Join(locations, "\n  "))
	}
}

// findExtractionDir returns the sole leftover extraction folder. With zero
// or several candidates the user has to point at one explicitly.
func findExtractionDir(fsys types.FS, p types.Pather) (string, error) {
	modsRoot := p.ModsRoot()
	entries, err := fsys.ReadDir(modsRoot)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "failed to read mods folder %s", modsRoot)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), paths.TempExtractPrefix) {
			dirs = append(dirs, filepath.Join(modsRoot, entry.Name()))
		}
	}

	switch len(dirs) {
	case 0:
		return "", errors.New(errors.ErrNotFound, "no extraction folders found under the mods root")
	case 1:
		return dirs[0], nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput,
			"several extraction folders found; pass one of:\n  %s", strings.Join(dirs, "\n  "))
	}
}

// findTempDirs returns every leftover temp_extract_ and temp_staging_ folder
// under the mods root.
func findTempDirs(fsys types.FS, p types.Pather) ([]string, error) {
	modsRoot := p.ModsRoot()
	entries, err := fsys.ReadDir(modsRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to read mods folder %s", modsRoot)
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, paths.TempExtractPrefix) || strings.HasPrefix(name, paths.TempStagingPrefix) {
			dirs = append(dirs, filepath.Join(modsRoot, name))
		}
	}
	return dirs, nil
}
