package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/loantrack/internal/catalog"
	"github.com/mesh-intelligence/loantrack/pkg/types"
)

func (a *app) newReviewCmd() *cobra.Command {
	var reviewer string
	cmd := &cobra.Command{
		Use:   "review <submission-id> <status>",
		Short: "Apply a review decision to a submission",
		Long: `Review moves a submission to a new review state and records the
reviewer. Approved and rejected submissions are final. Approving a
submission that names a loan adds its amount to the loan's utilized total;
the approval is refused if that would exceed the loan amount. Each review
is recorded in the audit log.

Statuses: ai-review, flagged, field-visit, approved, rejected

Example:
  loantrack review SUB-2024-001 approved --by "Officer Sharma"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			id, status := args[0], args[1]
			if a.settings.Role == types.RoleBeneficiary {
				return fmt.Errorf("%w: %s cannot review submissions", ErrForbidden, a.settings.Role)
			}

			backend, err := a.openStore()
			if err != nil {
				return err
			}
			defer detach(backend, &err)

			stored, err := applyReview(backend, id, status, reviewer, time.Now())
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), stored)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s (reviewed by %s)\n", id, stored["status"], stored["reviewedBy"])
			return nil
		},
	}
	cmd.Flags().StringVar(&reviewer, "by", "Officer", "name recorded as reviewer")
	return cmd
}

// applyReview moves submission id to status and returns the stored record.
// Approving a submission that names a loan charges the loan first; if the
// submission then fails to save, the loan is put back. Every review is
// appended to the audit log.
func applyReview(store types.Store, id, status, reviewer string, now time.Time) (types.Record, error) {
	subs, err := collectionTable(store, types.TableSubmissions)
	if err != nil {
		return nil, err
	}
	rec, err := subs.Get(id)
	if err != nil {
		return nil, tableErr("get submission "+id, err)
	}
	var sub types.Submission
	if err := rec.Decode(&sub); err != nil {
		return nil, err
	}
	if err := sub.Review(status, reviewer); err != nil {
		return nil, fmt.Errorf("review %s (%s -> %s): %w", id, rec["status"], status, err)
	}

	var restore func() error
	if sub.Status == types.SubmissionApproved && sub.LoanID != "" {
		if restore, err = utilizeLoan(store, sub); err != nil {
			return nil, err
		}
	}

	updated, err := mergeEntity(rec, &sub)
	if err != nil {
		return nil, err
	}
	if _, err := subs.Set(id, updated); err != nil {
		err = tableErr("save submission", err)
		if restore != nil {
			if rerr := restore(); rerr != nil {
				err = errors.Join(err, sysErr("restore loan "+sub.LoanID, rerr))
			}
		}
		return nil, err
	}

	if err := appendAudit(store, types.AuditEntry{
		Timestamp: now.UTC().Format(time.RFC3339),
		Action:    types.ReviewAction(sub.Status),
		User:      sub.ReviewedBy,
		Target:    id,
		Details:   reviewDetails(sub, rec["status"]),
	}); err != nil {
		return nil, err
	}

	stored, err := subs.Get(id)
	if err != nil {
		return nil, tableErr("get submission "+id, err)
	}
	return stored, nil
}

// reviewDetails describes a review for the audit log.
func reviewDetails(sub types.Submission, from any) string {
	details := fmt.Sprintf("%v -> %s: %s (%s)", from, sub.Status, sub.Item, catalog.Currency(sub.Amount))
	if sub.Status == types.SubmissionApproved && sub.LoanID != "" {
		details += " charged to " + sub.LoanID
	}
	return details
}

// appendAudit stores entry under a generated ID.
func appendAudit(store types.Store, entry types.AuditEntry) error {
	tbl, err := collectionTable(store, types.TableAudit)
	if err != nil {
		return err
	}
	rec, err := types.EncodeRecord(entry)
	if err != nil {
		return sysErr("encode", err)
	}
	if _, err := tbl.Set("", rec); err != nil {
		return tableErr("record audit entry", err)
	}
	return nil
}

// utilizeLoan charges an approved submission against its loan and returns
// a function that puts the loan back as it was.
func utilizeLoan(store types.Store, sub types.Submission) (func() error, error) {
	loans, err := collectionTable(store, types.TableLoans)
	if err != nil {
		return nil, err
	}
	rec, err := loans.Get(sub.LoanID)
	if err != nil {
		return nil, tableErr("get loan "+sub.LoanID, err)
	}
	var loan types.Loan
	if err := rec.Decode(&loan); err != nil {
		return nil, err
	}
	if err := loan.Utilize(sub.Amount); err != nil {
		return nil, fmt.Errorf("approve %s against %s: %w", sub.ID, loan.ID, err)
	}
	updated, err := mergeEntity(rec, &loan)
	if err != nil {
		return nil, err
	}
	if _, err := loans.Set(sub.LoanID, updated); err != nil {
		return nil, tableErr("save loan", err)
	}
	return func() error {
		_, err := loans.Set(sub.LoanID, rec)
		return err
	}, nil
}

// mergeEntity overlays the entity's fields on rec, keeping fields the entity
// does not know.
func mergeEntity(rec types.Record, entity any) (types.Record, error) {
	fields, err := types.EncodeRecord(entity)
	if err != nil {
		return nil, sysErr("encode", err)
	}
	out := rec.Clone()
	for k, v := range fields {
		out[k] = v
	}
	return out, nil
}
