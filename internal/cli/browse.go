package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/loantrack/internal/browse"
	"github.com/mesh-intelligence/loantrack/internal/catalog"
	"github.com/mesh-intelligence/loantrack/internal/sqlite"
	"github.com/mesh-intelligence/loantrack/pkg/tableview"
)

func (a *app) newBrowseCmd() *cobra.Command {
	var pageSize int
	cmd := &cobra.Command{
		Use:   "browse <collection>",
		Short: "Browse a collection interactively",
		Long: `Browse opens a full-screen table over the collection. Press / to
search, 1-9 to sort by a column, left and right to change page, space to
select a row, a to select the page, enter for details and q to quit. The
table reloads when the collection's data file changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			collection := args[0]
			if err := a.checkAccess(collection); err != nil {
				return err
			}
			dataDir, err := a.dataDir()
			if err != nil {
				return err
			}

			// Attaching once creates the data files the watcher needs.
			backend, err := a.openStore()
			if err != nil {
				return err
			}
			if err := backend.Detach(); err != nil {
				return sysErr("detach store", err)
			}

			load := func() ([]tableview.Record, error) {
				return sqlite.ReadCollection(dataDir, collection)
			}
			records, err := load()
			if err != nil {
				return sysErr("load "+collection, err)
			}

			watcher, err := browse.NewWatcher(dataDir, collection)
			if err != nil {
				return sysErr("watch data dir", err)
			}
			defer watcher.Close()

			if pageSize == 0 && catalog.Options(collection).PageSize == tableview.DefaultPageSize {
				pageSize = a.settings.PageSize
			}
			model, err := browse.New(collection, records,
				browse.WithLoader(load),
				browse.WithWatcher(watcher),
				browse.WithPageSize(pageSize),
				browse.WithSelectionPolicy(a.settings.Selection),
			)
			if err != nil {
				return err
			}

			a.log.Debug("browsing", zap.String("collection", collection), zap.Int("records", len(records)))
			p := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := p.Run(); err != nil {
				return sysErr("browser", err)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "rows per page (default: from config)")
	return cmd
}
