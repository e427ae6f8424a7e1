package sqlite

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/loantrack/pkg/types"
)

// demoData is the dataset loaded by Seed, keyed by collection.
var demoData = map[string][]any{
	types.TableUsers: {
		types.User{ID: "USR-001", Name: "Priya Sharma", Email: "priya.sharma@pmegp.gov.in", Role: types.RoleOfficer,
			Status: types.StatusActive, District: "Bangalore Urban", LastLogin: "2024-01-22T10:30:00Z", SubmissionsHandled: 45},
		types.User{ID: "USR-002", Name: "Amit Patel", Email: "amit.patel@mudra.gov.in", Role: types.RoleOfficer,
			Status: types.StatusActive, District: "Mumbai", LastLogin: "2024-01-22T09:15:00Z", SubmissionsHandled: 67},
		types.User{ID: "USR-003", Name: "Admin User", Email: "admin@loantrack.gov.in", Role: types.RoleAdmin,
			Status: types.StatusActive, District: "All", LastLogin: "2024-01-22T11:00:00Z"},
	},
	types.TableBeneficiaries: {
		types.Beneficiary{ID: "BEN-2024-5678", Name: "Rajesh Kumar", Email: "rajesh.kumar@email.com", Phone: "+91-9876543210",
			District: "Bangalore Urban", State: "Karnataka", Status: types.StatusActive, LoansCount: 1, TotalAmount: 50000, RegisteredOn: "2024-01-01"},
		types.Beneficiary{ID: "BEN-2024-5679", Name: "Priya Sharma", Email: "priya.sharma@email.com", Phone: "+91-9876543211",
			District: "Mumbai", State: "Maharashtra", Status: types.StatusActive, LoansCount: 2, TotalAmount: 125000, RegisteredOn: "2024-01-02"},
		types.Beneficiary{ID: "BEN-2024-5680", Name: "Amit Patel", Email: "amit.patel@email.com", Phone: "+91-9876543212",
			District: "Pune", State: "Maharashtra", Status: types.StatusActive, LoansCount: 1, TotalAmount: 60000, RegisteredOn: "2024-01-03"},
		types.Beneficiary{ID: "BEN-2024-5681", Name: "Sarah Khan", Email: "sarah.khan@email.com", Phone: "+91-9876543213",
			District: "Delhi", State: "Delhi", Status: types.StatusActive, LoansCount: 1, TotalAmount: 150000, RegisteredOn: "2024-01-04"},
		types.Beneficiary{ID: "BEN-2024-5682", Name: "Kiran Reddy", Email: "kiran.reddy@email.com", Phone: "+91-9876543214",
			District: "Hyderabad", State: "Telangana", Status: types.StatusInactive, LoansCount: 1, TotalAmount: 100000, RegisteredOn: "2024-01-05"},
	},
	types.TableLoans: {
		types.Loan{ID: "LN-2024-001234", BeneficiaryName: "Rajesh Kumar", BeneficiaryID: "BEN-2024-5678", Scheme: "PMEGP",
			Amount: 50000, SanctionedDate: "2024-01-01", DueDate: "2024-03-31", Status: types.LoanActive, Utilized: 35000, District: "Bangalore Urban"},
		types.Loan{ID: "LN-2024-001235", BeneficiaryName: "Priya Sharma", BeneficiaryID: "BEN-2024-5679", Scheme: "MUDRA",
			Amount: 75000, SanctionedDate: "2024-01-02", DueDate: "2024-04-02", Status: types.LoanActive, Utilized: 60000, District: "Mumbai"},
		types.Loan{ID: "LN-2024-001236", BeneficiaryName: "Amit Patel", BeneficiaryID: "BEN-2024-5680", Scheme: "PMEGP",
			Amount: 60000, SanctionedDate: "2024-01-03", DueDate: "2024-04-03", Status: types.LoanActive, Utilized: 15000, District: "Pune"},
		types.Loan{ID: "LN-2024-001237", BeneficiaryName: "Sarah Khan", BeneficiaryID: "BEN-2024-5681", Scheme: "Stand-Up India",
			Amount: 150000, SanctionedDate: "2024-01-04", DueDate: "2024-06-30", Status: types.LoanActive, Utilized: 0, District: "Delhi"},
		types.Loan{ID: "LN-2024-001238", BeneficiaryName: "Kiran Reddy", BeneficiaryID: "BEN-2024-5682", Scheme: "MUDRA",
			Amount: 100000, SanctionedDate: "2023-10-01", DueDate: "2024-01-31", Status: types.LoanClosed, Utilized: 100000, District: "Hyderabad"},
	},
	types.TableSubmissions: {
		types.Submission{ID: "SUB-2024-001", BeneficiaryName: "Rajesh Kumar", BeneficiaryID: "BEN-2024-5678", LoanID: "LN-2024-001234",
			Item: "Dell Laptop - Inspiron 15", Amount: 25000, Status: types.SubmissionFlagged, RiskLevel: types.RiskRed, RiskScore: 0.23,
			SubmittedOn: "2024-01-20", District: "Bangalore Urban"},
		types.Submission{ID: "SUB-2024-002", BeneficiaryName: "Priya Sharma", BeneficiaryID: "BEN-2024-5679", LoanID: "LN-2024-001235",
			Item: "Office Chair - Herman Miller", Amount: 8000, Status: types.SubmissionAIReview, RiskLevel: types.RiskAmber, RiskScore: 0.67,
			SubmittedOn: "2024-01-21", District: "Mumbai"},
		types.Submission{ID: "SUB-2024-003", BeneficiaryName: "Amit Patel", BeneficiaryID: "BEN-2024-5680", LoanID: "LN-2024-001236",
			Item: "Software License - Adobe Creative", Amount: 15000, Status: types.SubmissionAIReview, RiskLevel: types.RiskGreen, RiskScore: 0.89,
			SubmittedOn: "2024-01-22", District: "Pune"},
		types.Submission{ID: "SUB-2024-004", BeneficiaryName: "Sarah Khan", BeneficiaryID: "BEN-2024-5681", LoanID: "LN-2024-001237",
			Item: "MacBook Pro 14-inch", Amount: 95000, Status: types.SubmissionPending, RiskLevel: types.RiskAmber, RiskScore: 0.78,
			SubmittedOn: "2024-01-19", District: "Delhi"},
		types.Submission{ID: "SUB-2024-005", BeneficiaryName: "Kiran Reddy", BeneficiaryID: "BEN-2024-5682", LoanID: "LN-2024-001238",
			Item: "Industrial Printer", Amount: 45000, Status: types.SubmissionAIReview, RiskLevel: types.RiskGreen, RiskScore: 0.92,
			SubmittedOn: "2024-01-18", District: "Hyderabad"},
	},
	types.TableImports: {
		types.ImportJob{ID: "IMP-001", Type: "Beneficiaries", FileName: "beneficiaries_jan_2024.csv", UploadedOn: "2024-01-20T10:30:00Z",
			Status: types.ImportCompleted, TotalRecords: 150, SuccessfulRecords: 147, ErrorRecords: 3, UploadedBy: "Admin User"},
		types.ImportJob{ID: "IMP-002", Type: "Loans", FileName: "loans_batch_5.xlsx", UploadedOn: "2024-01-19T14:15:00Z",
			Status: types.ImportCompleted, TotalRecords: 89, SuccessfulRecords: 89, UploadedBy: "Admin User"},
		types.ImportJob{ID: "IMP-003", Type: "Beneficiaries", FileName: "beneficiaries_dec_2023.csv", UploadedOn: "2024-01-18T09:45:00Z",
			Status: types.ImportFailed, TotalRecords: 200, ErrorRecords: 200, UploadedBy: "Officer Sharma"},
	},
	types.TableAudit: {
		types.AuditEntry{ID: "AUD-001", Timestamp: "2024-01-22T10:30:00Z", Action: types.AuditApproveSubmission, User: "Officer Sharma",
			Target: "SUB-2024-001", Details: "Approved laptop purchase submission", IPAddress: "192.168.1.100"},
		types.AuditEntry{ID: "AUD-002", Timestamp: "2024-01-22T09:15:00Z", Action: types.AuditRejectSubmission, User: "Officer Patel",
			Target: "SUB-2024-002", Details: "Rejected due to poor image quality", IPAddress: "192.168.1.101"},
	},
}

// Seed loads the demo dataset into every empty collection of store and
// returns the number of records written per collection. Collections that
// already hold records are left alone, so Seed is idempotent.
func Seed(store types.Store, log *zap.Logger) (map[string]int, error) {
	if log == nil {
		log = zap.NewNop()
	}
	seeded := make(map[string]int)
	for _, name := range types.StandardTableNames {
		tbl, err := store.GetTable(name)
		if err != nil {
			return seeded, err
		}
		existing, err := tbl.Fetch(types.Filter{types.FilterLimit: 1})
		if err != nil {
			return seeded, fmt.Errorf("checking %s: %w", name, err)
		}
		if len(existing) > 0 {
			log.Debug("collection not empty, skipping seed", zap.String("collection", name))
			continue
		}
		for _, entity := range demoData[name] {
			rec, err := types.EncodeRecord(entity)
			if err != nil {
				return seeded, err
			}
			if _, err := tbl.Set("", rec); err != nil {
				return seeded, fmt.Errorf("seeding %s: %w", name, err)
			}
			seeded[name]++
		}
		log.Info("seeded collection", zap.String("collection", name), zap.Int("records", seeded[name]))
	}
	return seeded, nil
}
