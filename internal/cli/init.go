package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/loantrack/internal/paths"
	"github.com/mesh-intelligence/loantrack/internal/sqlite"
	"github.com/mesh-intelligence/loantrack/pkg/types"
)

func (a *app) newInitCmd() *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize loantrack storage",
		Long: `Create the configuration and data directories, write a default
config.yaml if none exists, and initialize the storage backend. With --seed
the demo dataset is loaded into every empty collection.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			dataDir, err := a.dataDir()
			if err != nil {
				return err
			}
			// Record an explicit data dir in the new config so later runs find it.
			written, err := writeConfigIfMissing(a.configDir, a.flags.dataDir)
			if err != nil {
				return sysErr("write config", err)
			}

			backend, err := a.openStore()
			if err != nil {
				return err
			}
			defer detach(backend, &err)

			out := cmd.OutOrStdout()
			var seeded map[string]int
			if seed {
				seeded, err = sqlite.Seed(backend, a.log)
				if err != nil {
					return tableErr("seed", err)
				}
			}

			if a.flags.jsonMode {
				return printJSON(out, map[string]any{
					"config_dir":     a.configDir,
					"data_dir":       dataDir,
					"config_written": written,
					"seeded":         seeded,
				})
			}
			fmt.Fprintln(out, "loantrack initialized successfully")
			fmt.Fprintln(out, "  config:", filepath.Join(a.configDir, paths.ConfigFileName))
			fmt.Fprintln(out, "  data:  ", dataDir)
			for _, name := range types.StandardTableNames {
				if n := seeded[name]; n > 0 {
					fmt.Fprintf(out, "  seeded %d %s\n", n, name)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "load the demo dataset into empty collections")
	return cmd
}
