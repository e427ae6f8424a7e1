// Package cli implements the loantrack command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/loantrack/internal/paths"
	"github.com/mesh-intelligence/loantrack/pkg/loantrack"
	"github.com/mesh-intelligence/loantrack/pkg/types"
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	role      string
	verbose   bool
}

// app is the state shared by the commands of one invocation.
type app struct {
	flags     rootFlags
	configDir string
	settings  settings
	log       *zap.Logger
}

// NewRootCmd creates the top-level "loantrack" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "loantrack",
		Short: "Browse and maintain loan utilization records",
		Long: `loantrack keeps users, beneficiaries, loans, purchase submissions,
import jobs and an audit log in a local data directory and shows them as
searchable, sortable, paginated tables.`,
		Version: loantrack.Version,
		// Errors are printed once by Execute.
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: from config, then platform data dir)")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	pf.StringVar(&a.flags.role, "role", "", "act as role: admin, officer or beneficiary (default: from config)")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newVersionCmd(),
		a.newInitCmd(),
		a.newViewCmd(),
		a.newGetCmd(),
		a.newSetCmd(),
		a.newDeleteCmd(),
		a.newReviewCmd(),
		a.newImportCmd(),
		a.newExportCmd(),
		a.newSummaryCmd(),
		a.newBrowseCmd(),
	)
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "loantrack:", err)
	}
	return ExitCode(err)
}

// setup resolves the config directory, loads config.yaml and builds the
// logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysErr("resolve config dir", err)
	}
	a.configDir = configDir

	s, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	if a.flags.role != "" {
		if !types.IsValidRole(a.flags.role) {
			return fmt.Errorf("--role %q: %w", a.flags.role, types.ErrInvalidRole)
		}
		s.Role = a.flags.role
	}
	a.settings = s

	logger, err := newLogger(a.flags.verbose)
	if err != nil {
		return sysErr("initialize logger", err)
	}
	a.log = logger
	a.log.Debug("configuration loaded",
		zap.String("config_dir", configDir),
		zap.String("role", s.Role),
		zap.String("sync_strategy", s.SyncStrategy),
	)
	return nil
}

// newLogger builds the stderr logger: warnings and above, or everything
// from debug up when verbose is set.
func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

func (a *app) teardown(*cobra.Command, []string) error {
	_ = a.log.Sync()
	return nil
}

// dataDir resolves the data directory: flag, then config, then environment,
// then the platform default.
func (a *app) dataDir() (string, error) {
	dir, err := paths.ResolveDataDir(a.flags.dataDir, a.settings.DataDir)
	if err != nil {
		return "", sysErr("resolve data dir", err)
	}
	return dir, nil
}
