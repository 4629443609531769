package memory

import (
	"github.com/shopspring/decimal"

	"github.com/Markdcoder/mobile-fintech-dashboard/internal/core"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/ledger"
)

// DefaultDataset is the static demo data served when no seed file is present.
func DefaultDataset() ledger.Dataset {
	return ledger.Dataset{
		Account: core.Account{
			Bank:            "US Bank",
			AccountName:     "Everyday Checking",
			AccountNoMasked: "•••• 4821",
			Owner:           "Jordan A. Rivera",
			Status:          "Active",
			Balance:         decimal.RequireFromString("18425.67"),
			Available:       decimal.RequireFromString("17980.12"),
			LastUpdated:     "2 min ago",
		},
		Actions: []core.QuickAction{
			{ID: "transfer", Label: "Transfer", Icon: "send"},
			{ID: "pay-bill", Label: "Pay bill", Icon: "file-text"},
			{ID: "deposit", Label: "Mobile deposit", Icon: "camera"},
			{ID: "cards", Label: "Manage cards", Icon: "credit-card"},
			{ID: "statements", Label: "Statements", Icon: "download"},
		},
		Transactions: []core.Transaction{
			{ID: "tx-1001", Date: "2024-06-14", Desc: "Payroll Deposit ACME Corp", Amount: decimal.RequireFromString("4250.00"), Category: "Income", RefCode: "PAY-61401"},
			{ID: "tx-1002", Date: "2024-06-13", Desc: "Electric Company", Amount: decimal.RequireFromString("-128.42"), Category: "Bill", RefCode: "UTL-22931"},
			{ID: "tx-1003", Date: "2024-06-12", Desc: "Blue Bottle Coffee", Amount: decimal.RequireFromString("-6.75"), Category: "Dining", RefCode: "POS-88120"},
			{ID: "tx-1004", Date: "2024-06-11", Desc: "Whole Foods Market", Amount: decimal.RequireFromString("-142.18"), Category: "Groceries", RefCode: "POS-88004"},
			{ID: "tx-1005", Date: "2024-06-10", Desc: "Transfer to Savings", Amount: decimal.RequireFromString("-500.00"), Category: "Transfer", RefCode: "TRF-10422"},
			{ID: "tx-1006", Date: "2024-06-09", Desc: "Online Store Refund", Amount: decimal.RequireFromString("39.99"), Category: "Refund", RefCode: "RFD-77310"},
			{ID: "tx-1007", Date: "2024-06-08", Desc: "Mobile Phone Plan", Amount: decimal.RequireFromString("-65.00"), Category: "Bill", RefCode: "UTL-22874"},
			{ID: "tx-1008", Date: "2024-06-07", Desc: "Rideshare Trip", Amount: decimal.RequireFromString("-18.30"), Category: "Transport", RefCode: "POS-87955"},
		},
	}
}
