package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Markdcoder/mobile-fintech-dashboard/internal/cache"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/core"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/ledger"
)

// Dashboard is everything the dashboard screen renders for one request.
type Dashboard struct {
	Account      core.Account
	Actions      []core.QuickAction
	Transactions []core.Transaction // filtered
	Categories   []string           // from the unfiltered list
	Summary      core.Summary       // of the filtered list
	Query        string
	Category     string
}

// DashboardService reads dashboard data and applies the transaction filter.
// Filter results are memoized per (query, category) because the underlying
// transaction list is immutable fixture data.
type DashboardService struct {
	accounts     ledger.AccountReader
	transactions ledger.TransactionLister
	actions      ledger.ActionLister
	filterCache  cache.Cache[[]core.Transaction]
}

func NewDashboardService(ar ledger.AccountReader, tl ledger.TransactionLister, al ledger.ActionLister, filterCache cache.Cache[[]core.Transaction]) *DashboardService {
	return &DashboardService{
		accounts:     ar,
		transactions: tl,
		actions:      al,
		filterCache:  filterCache,
	}
}

// Load fetches account, transactions and quick actions concurrently and
// filters the transactions with query and category.
func (s *DashboardService) Load(ctx context.Context, query, category string) (Dashboard, error) {
	var (
		d   = Dashboard{Query: query, Category: category}
		all []core.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		acc, err := s.accounts.ReadAccount(gctx)
		if err != nil {
			return fmt.Errorf("read account: %w", err)
		}
		d.Account = acc
		return nil
	})
	g.Go(func() error {
		txs, err := s.transactions.ListTransactions(gctx)
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		all = txs
		return nil
	})
	g.Go(func() error {
		actions, err := s.actions.ListActions(gctx)
		if err != nil {
			return fmt.Errorf("list quick actions: %w", err)
		}
		d.Actions = actions
		return nil
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	d.Categories = core.Categories(all)
	d.Transactions = s.filter(ctx, all, query, category)
	d.Summary = core.Summarize(d.Transactions)
	return d, nil
}

// Filter returns the transactions matching query and category.
func (s *DashboardService) Filter(ctx context.Context, query, category string) ([]core.Transaction, error) {
	all, err := s.transactions.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return s.filter(ctx, all, query, category), nil
}

func (s *DashboardService) filter(ctx context.Context, all []core.Transaction, query, category string) []core.Transaction {
	if s.filterCache == nil {
		return core.FilterTransactions(all, query, category)
	}

	key := filterKey(query, category)
	if hit, ok := s.filterCache.Get(key); ok {
		slog.DebugContext(ctx, "Filter cache hit", "query", query, "category", category, "count", len(hit))
		out := make([]core.Transaction, len(hit))
		copy(out, hit)
		return out
	}

	out := core.FilterTransactions(all, query, category)
	s.filterCache.Set(key, append([]core.Transaction(nil), out...))
	return out
}

// filterKey length-prefixes the query so that no two (query, category) pairs
// share a key.
func filterKey(query, category string) string {
	return fmt.Sprintf("%d:%s|%s", len(query), query, category)
}
