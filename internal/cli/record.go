package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/loantrack/pkg/types"
)

func (a *app) newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <collection> <id>",
		Short: "Print one record as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			collection, id := args[0], args[1]
			if err := a.checkAccess(collection); err != nil {
				return err
			}
			backend, err := a.openStore()
			if err != nil {
				return err
			}
			defer detach(backend, &err)

			tbl, err := collectionTable(backend, collection)
			if err != nil {
				return err
			}
			rec, err := tbl.Get(id)
			if err != nil {
				return tableErr(fmt.Sprintf("get %s/%s", collection, id), err)
			}
			return printJSON(cmd.OutOrStdout(), rec)
		},
	}
}

func (a *app) newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <collection> [id] <json>",
		Short: "Create or update a record",
		Long: `Set validates the JSON object against the collection's record type and
stores it. Without an id the object's own "id" field is used, or a new id
is generated. The stored record is printed.

Example:
  loantrack set users '{"name":"Anita Desai","role":"officer"}'
  loantrack set loans LN-2024-001234 '{"beneficiaryId":"BEN-2024-5678","amount":50000,"utilized":40000}'`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			collection, id, payload := args[0], "", args[len(args)-1]
			if len(args) == 3 {
				id = args[1]
			}
			if err := a.checkWritable(collection); err != nil {
				return err
			}
			var rec types.Record
			if err := json.Unmarshal([]byte(payload), &rec); err != nil || rec == nil {
				return fmt.Errorf("%w: payload must be a JSON object", types.ErrInvalidData)
			}

			backend, err := a.openStore()
			if err != nil {
				return err
			}
			defer detach(backend, &err)

			tbl, err := collectionTable(backend, collection)
			if err != nil {
				return err
			}
			saved, err := tbl.Set(id, rec)
			if err != nil {
				return tableErr("set", err)
			}
			stored, err := tbl.Get(saved)
			if err != nil {
				return tableErr("get saved record", err)
			}
			return printJSON(cmd.OutOrStdout(), stored)
		},
	}
}

func (a *app) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <collection> <id>",
		Short: "Remove a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			collection, id := args[0], args[1]
			if err := a.checkWritable(collection); err != nil {
				return err
			}
			backend, err := a.openStore()
			if err != nil {
				return err
			}
			defer detach(backend, &err)

			tbl, err := collectionTable(backend, collection)
			if err != nil {
				return err
			}
			if err := tbl.Delete(id); err != nil {
				return tableErr(fmt.Sprintf("delete %s/%s", collection, id), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s/%s\n", collection, id)
			return nil
		},
	}
}
