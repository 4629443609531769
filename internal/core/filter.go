package core

import "strings"

// CategoryAll is the category filter value that disables category filtering.
// The comparison against it is case-sensitive.
const CategoryAll = "all"

// FilterTransactions returns the transactions whose search text contains
// query and whose category equals category, both case-insensitively.
// An empty query matches everything, as does the CategoryAll sentinel.
// Input order is preserved and the input slice is never modified.
func FilterTransactions(txs []Transaction, query, category string) []Transaction {
	q := strings.ToLower(query)
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if q != "" && !strings.Contains(strings.ToLower(t.SearchText()), q) {
			continue
		}
		if category != CategoryAll && !strings.EqualFold(t.Category, category) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Categories returns the distinct categories of txs in first-seen order.
func Categories(txs []Transaction) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, t := range txs {
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	return out
}
