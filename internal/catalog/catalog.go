// Package catalog describes how each collection is displayed: its columns,
// cell renderers and view options, and which roles may list it.
package catalog

import (
	"fmt"

	"github.com/mesh-intelligence/loantrack/pkg/tableview"
	"github.com/mesh-intelligence/loantrack/pkg/types"
)

// Columns returns the column descriptors for a collection in display order.
// Returns ErrTableNotFound for an unknown collection.
func Columns(collection string) ([]tableview.Column, error) {
	switch collection {
	case types.TableUsers:
		return []tableview.Column{
			{Key: "id", Title: "ID", Sortable: true},
			{Key: "name", Title: "User", Sortable: true, Filterable: true},
			{Key: "email", Title: "Email", Sortable: true},
			{Key: "role", Title: "Role", Render: titleRender, Sortable: true, Filterable: true},
			{Key: "status", Title: "Status", Sortable: true, Filterable: true},
			{Key: "district", Title: "District", Sortable: true, Filterable: true},
			{Key: "submissionsHandled", Title: "Submissions", Render: countRender, Sortable: true},
			{Key: "lastLogin", Title: "Last Login", Render: timestampRender, Sortable: true},
		}, nil
	case types.TableBeneficiaries:
		return []tableview.Column{
			{Key: "id", Title: "ID", Sortable: true},
			{Key: "name", Title: "Beneficiary", Sortable: true, Filterable: true},
			{Key: "email", Title: "Contact", Render: contactRender, Sortable: true},
			{Key: "district", Title: "Location", Render: locationRender, Sortable: true, Filterable: true},
			{Key: "status", Title: "Status", Sortable: true, Filterable: true},
			{Key: "loansCount", Title: "Loans", Render: countRender, Sortable: true},
			{Key: "totalAmount", Title: "Total Amount", Render: currencyRender, Sortable: true},
			{Key: "registeredOn", Title: "Registered", Render: timestampRender, Sortable: true},
		}, nil
	case types.TableLoans:
		return []tableview.Column{
			{Key: "id", Title: "Loan ID", Sortable: true},
			{Key: "beneficiaryName", Title: "Beneficiary", Render: beneficiaryRender, Sortable: true, Filterable: true},
			{Key: "scheme", Title: "Scheme", Sortable: true, Filterable: true},
			{Key: "amount", Title: "Amount", Render: loanAmountRender, Sortable: true},
			{Key: "pending", Title: "Pending", Render: currencyRender, Sortable: true},
			{Key: "status", Title: "Status", Sortable: true, Filterable: true},
			{Key: "dueDate", Title: "Due Date", Render: timestampRender, Sortable: true},
			{Key: "district", Title: "District", Sortable: true, Filterable: true},
		}, nil
	case types.TableSubmissions:
		return []tableview.Column{
			{Key: "id", Title: "Submission ID", Sortable: true},
			{Key: "beneficiaryName", Title: "Beneficiary", Render: beneficiaryRender, Sortable: true, Filterable: true},
			{Key: "item", Title: "Item", Sortable: true},
			{Key: "amount", Title: "Amount", Render: currencyRender, Sortable: true},
			{Key: "status", Title: "Status", Render: statusRender, Sortable: true, Filterable: true},
			{Key: "riskLevel", Title: "Risk", Render: riskRender, Sortable: true, Filterable: true},
			{Key: "submittedOn", Title: "Submitted", Render: timestampRender, Sortable: true},
			{Key: "reviewedBy", Title: "Reviewed By", Sortable: true},
			{Key: "district", Title: "District", Sortable: true, Filterable: true},
		}, nil
	case types.TableImports:
		return []tableview.Column{
			{Key: "id", Title: "Import ID", Sortable: true},
			{Key: "type", Title: "Type", Sortable: true, Filterable: true},
			{Key: "fileName", Title: "File", Sortable: true},
			{Key: "uploadedOn", Title: "Uploaded", Render: timestampRender, Sortable: true},
			{Key: "status", Title: "Status", Sortable: true, Filterable: true},
			{Key: "totalRecords", Title: "Total", Render: countRender, Sortable: true},
			{Key: "successfulRecords", Title: "Successful", Render: countRender, Sortable: true},
			{Key: "errorRecords", Title: "Errors", Render: countRender, Sortable: true},
			{Key: "uploadedBy", Title: "Uploaded By", Sortable: true},
		}, nil
	case types.TableAudit:
		return []tableview.Column{
			{Key: "id", Title: "Entry", Sortable: true},
			{Key: "timestamp", Title: "Time", Render: timestampRender, Sortable: true},
			{Key: "action", Title: "Action", Sortable: true, Filterable: true},
			{Key: "user", Title: "User", Sortable: true, Filterable: true},
			{Key: "target", Title: "Target", Sortable: true},
			{Key: "details", Title: "Details"},
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrTableNotFound, collection)
	}
}

// emptyMessages mirror what each screen says when nothing matches.
var emptyMessages = map[string]string{
	types.TableUsers:         "No users found",
	types.TableBeneficiaries: "No beneficiaries found",
	types.TableLoans:         "No loans found",
	types.TableSubmissions:   "No submissions found",
	types.TableImports:       "No imports yet",
	types.TableAudit:         "No audit entries",
}

// Options returns the view options for a collection. Submissions and
// beneficiaries support bulk selection; the audit log shows 20 rows a page.
func Options(collection string) tableview.Options {
	opts := tableview.DefaultOptions()
	if msg, ok := emptyMessages[collection]; ok {
		opts.EmptyMessage = msg
	}
	switch collection {
	case types.TableSubmissions, types.TableBeneficiaries:
		opts.Selectable = true
	case types.TableImports:
		opts.Exportable = false
	case types.TableAudit:
		opts.PageSize = 20
	}
	return opts
}

// roleCollections lists what each role may list, in menu order.
var roleCollections = map[string][]string{
	types.RoleBeneficiary: {types.TableLoans, types.TableSubmissions},
	types.RoleOfficer:     {types.TableSubmissions, types.TableBeneficiaries, types.TableAudit},
	types.RoleAdmin:       types.StandardTableNames,
}

// ForRole returns the collections a role may list.
// Returns ErrInvalidRole for an unknown role.
func ForRole(role string) ([]string, error) {
	cols, ok := roleCollections[role]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrInvalidRole, role)
	}
	return append([]string(nil), cols...), nil
}

// CanView reports whether role may list collection.
func CanView(role, collection string) bool {
	cols, _ := ForRole(role)
	for _, c := range cols {
		if c == collection {
			return true
		}
	}
	return false
}

func beneficiaryRender(v any, row tableview.Record) string {
	name, _ := tableview.Stringify(v)
	id, _ := tableview.Stringify(row["beneficiaryId"])
	if id == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, id)
}

func loanAmountRender(v any, row tableview.Record) string {
	if _, ok := row["utilized"]; !ok {
		return Currency(v)
	}
	return fmt.Sprintf("%s (%s utilized)", Currency(v), Currency(row["utilized"]))
}

func contactRender(v any, row tableview.Record) string {
	email, _ := tableview.Stringify(v)
	phone, _ := tableview.Stringify(row["phone"])
	switch {
	case email == "":
		return phone
	case phone == "":
		return email
	}
	return email + " / " + phone
}

func locationRender(v any, row tableview.Record) string {
	district, _ := tableview.Stringify(v)
	state, _ := tableview.Stringify(row["state"])
	if state == "" || state == district {
		return district
	}
	return district + ", " + state
}
