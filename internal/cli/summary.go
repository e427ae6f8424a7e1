package cli

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/loantrack/internal/catalog"
	"github.com/mesh-intelligence/loantrack/pkg/tableview"
	"github.com/mesh-intelligence/loantrack/pkg/types"
)

// summary holds the dashboard figures derived from the store. Sections the
// active role may not view are left nil.
type summary struct {
	Submissions   *submissionSummary `json:"submissions,omitempty"`
	Loans         *loanSummary       `json:"loans,omitempty"`
	Beneficiaries *tally             `json:"beneficiaries,omitempty"`
	Users         *tally             `json:"users,omitempty"`
	Imports       *tally             `json:"imports,omitempty"`
	Audit         *tally             `json:"audit,omitempty"`
}

type submissionSummary struct {
	Total    int            `json:"total"`
	Amount   int64          `json:"amount"`
	ByStatus map[string]int `json:"byStatus"`
	ByRisk   map[string]int `json:"byRisk"`
	// FlaggedRate is the percentage of submissions flagged or rejected.
	FlaggedRate float64 `json:"flaggedRate"`
}

type loanSummary struct {
	Total    int   `json:"total"`
	Active   int   `json:"active"`
	Amount   int64 `json:"amount"`
	Utilized int64 `json:"utilized"`
	Pending  int64 `json:"pending"`
	// Utilization is utilized as a percentage of amount.
	Utilization float64 `json:"utilization"`
}

// tally counts records by one field.
type tally struct {
	Total int            `json:"total"`
	By    map[string]int `json:"by"`
}

// tallyFields names the field each collection is counted by.
var tallyFields = map[string]string{
	types.TableBeneficiaries: "status",
	types.TableUsers:         "role",
	types.TableImports:       "status",
	types.TableAudit:         "action",
}

func (a *app) newSummaryCmd() *cobra.Command {
	var beneficiary string
	cmd := &cobra.Command{
		Use:     "summary",
		Aliases: []string{"stats"},
		Short:   "Show dashboard totals for the collections the role can view",
		Long: `Summary derives dashboard figures from the store: submissions by
review state and risk, loan utilization, and record counts for the other
collections the active role may view.

With --beneficiary, loans and submissions are limited to one beneficiary.

Example:
  loantrack summary
  loantrack summary --role beneficiary --beneficiary BEN-2024-5678 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			backend, err := a.openStore()
			if err != nil {
				return err
			}
			defer detach(backend, &err)

			s, err := summarize(backend, a.settings.Role, beneficiary)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), s)
			}
			return writeSummary(cmd.OutOrStdout(), s)
		},
	}
	cmd.Flags().StringVar(&beneficiary, "beneficiary", "", "limit loans and submissions to this beneficiary ID")
	return cmd
}

// summarize computes the sections role may view. A non-empty beneficiary
// restricts loans and submissions to that beneficiary's records.
func summarize(store types.Store, role, beneficiary string) (summary, error) {
	var s summary
	if _, err := catalog.ForRole(role); err != nil {
		return s, err
	}
	scoped := types.Filter{}
	if beneficiary != "" {
		scoped["beneficiaryId"] = beneficiary
	}

	if catalog.CanView(role, types.TableSubmissions) {
		recs, err := fetchCollection(store, types.TableSubmissions, scoped)
		if err != nil {
			return s, err
		}
		if s.Submissions, err = summarizeSubmissions(recs); err != nil {
			return s, err
		}
	}
	if catalog.CanView(role, types.TableLoans) {
		recs, err := fetchCollection(store, types.TableLoans, scoped)
		if err != nil {
			return s, err
		}
		if s.Loans, err = summarizeLoans(recs); err != nil {
			return s, err
		}
	}

	tallies := map[string]**tally{
		types.TableBeneficiaries: &s.Beneficiaries,
		types.TableUsers:         &s.Users,
		types.TableImports:       &s.Imports,
		types.TableAudit:         &s.Audit,
	}
	for collection, dst := range tallies {
		if !catalog.CanView(role, collection) {
			continue
		}
		recs, err := fetchCollection(store, collection, nil)
		if err != nil {
			return s, err
		}
		*dst = countBy(recs, tallyFields[collection])
	}
	return s, nil
}

func fetchCollection(store types.Store, collection string, filter types.Filter) ([]types.Record, error) {
	tbl, err := collectionTable(store, collection)
	if err != nil {
		return nil, err
	}
	recs, err := tbl.Fetch(filter)
	if err != nil {
		return nil, tableErr("fetch "+collection, err)
	}
	return recs, nil
}

func summarizeSubmissions(recs []types.Record) (*submissionSummary, error) {
	out := &submissionSummary{ByStatus: map[string]int{}, ByRisk: map[string]int{}}
	for _, rec := range recs {
		var sub types.Submission
		if err := rec.Decode(&sub); err != nil {
			return nil, err
		}
		out.Total++
		out.Amount += sub.Amount
		out.ByStatus[sub.Status]++
		if sub.RiskLevel != "" {
			out.ByRisk[sub.RiskLevel]++
		}
	}
	out.FlaggedRate = percent(int64(out.ByStatus[types.SubmissionFlagged]+out.ByStatus[types.SubmissionRejected]), int64(out.Total))
	return out, nil
}

func summarizeLoans(recs []types.Record) (*loanSummary, error) {
	out := &loanSummary{}
	for _, rec := range recs {
		var loan types.Loan
		if err := rec.Decode(&loan); err != nil {
			return nil, err
		}
		out.Total++
		if loan.Status == types.LoanActive {
			out.Active++
		}
		out.Amount += loan.Amount
		out.Utilized += loan.Utilized
		out.Pending += loan.Pending
	}
	out.Utilization = percent(out.Utilized, out.Amount)
	return out, nil
}

func countBy(recs []types.Record, field string) *tally {
	out := &tally{Total: len(recs), By: map[string]int{}}
	for _, rec := range recs {
		v, _ := tableview.Stringify(rec[field])
		out.By[v]++
	}
	return out
}

// percent returns part/whole*100 rounded to one decimal, or 0 for an empty
// whole.
func percent(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	p := float64(part) / float64(whole) * 100
	return float64(int64(p*10+0.5)) / 10
}

// Display order of the submission breakdowns.
var (
	statusOrder = []string{
		types.SubmissionPending, types.SubmissionAIReview, types.SubmissionFlagged,
		types.SubmissionFieldVisit, types.SubmissionApproved, types.SubmissionRejected,
	}
	riskOrder = []string{types.RiskGreen, types.RiskAmber, types.RiskRed}
)

// writeSummary prints s as an aligned two-column report.
func writeSummary(w io.Writer, s summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if sub := s.Submissions; sub != nil {
		fmt.Fprintf(tw, "Submissions\t%s (%s)\n", catalog.Count(sub.Total), catalog.Currency(sub.Amount))
		for _, st := range statusOrder {
			if n := sub.ByStatus[st]; n > 0 {
				fmt.Fprintf(tw, "  %s\t%s\n", catalog.StatusLabel(st), catalog.Count(n))
			}
		}
		for _, r := range riskOrder {
			if n := sub.ByRisk[r]; n > 0 {
				fmt.Fprintf(tw, "  %s\t%s\n", catalog.RiskLabel(r, 0), catalog.Count(n))
			}
		}
		fmt.Fprintf(tw, "  Flagged Rate\t%.1f%%\n", sub.FlaggedRate)
	}
	if l := s.Loans; l != nil {
		fmt.Fprintf(tw, "Loans\t%s (%s active)\n", catalog.Count(l.Total), catalog.Count(l.Active))
		fmt.Fprintf(tw, "  Sanctioned\t%s\n", catalog.Currency(l.Amount))
		fmt.Fprintf(tw, "  Utilized\t%s\n", catalog.Currency(l.Utilized))
		fmt.Fprintf(tw, "  Pending\t%s\n", catalog.Currency(l.Pending))
		fmt.Fprintf(tw, "  Utilization\t%.1f%%\n", l.Utilization)
	}
	sections := []struct {
		title string
		t     *tally
		label func(string) string
	}{
		{"Beneficiaries", s.Beneficiaries, catalog.StatusLabel},
		{"Users", s.Users, catalog.StatusLabel},
		{"Imports", s.Imports, catalog.StatusLabel},
		{"Audit Entries", s.Audit, func(v string) string { return v }},
	}
	for _, sec := range sections {
		if sec.t == nil {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\n", sec.title, catalog.Count(sec.t.Total))
		keys := make([]string, 0, len(sec.t.By))
		for k := range sec.t.By {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(tw, "  %s\t%s\n", sec.label(k), catalog.Count(sec.t.By[k]))
		}
	}
	return tw.Flush()
}
