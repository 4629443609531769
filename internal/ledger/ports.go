package ledger

import (
	"context"

	"github.com/Markdcoder/mobile-fintech-dashboard/internal/core"
)

// Ports for outbound adapters.
type (
	AccountReader interface {
		ReadAccount(ctx context.Context) (core.Account, error)
	}

	// TransactionLister returns the full transaction history in display order.
	TransactionLister interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
	}

	ActionLister interface {
		ListActions(ctx context.Context) ([]core.QuickAction, error)
	}
)
