package core

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// TypeAll and CategoryAll are the wildcard filter values.
const (
	TypeAll     = "all"
	CategoryAll = "all"
)

// Filter narrows a transaction collection by description text, type and
// category. Zero-value fields behave as wildcards.
type Filter struct {
	Search   string // case-insensitive substring match on Description
	Type     string // "all", "income" or "expense"
	Category string // "all" or an exact category name
}

// Apply returns the subsequence matching all three predicates, sorted
// descending by date. The sort is stable: records on the same instant
// keep their original relative order.
func (f Filter) Apply(txs []Transaction) []Transaction {
	folder := cases.Fold()
	needle := folder.String(strings.TrimSpace(f.Search))

	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if needle != "" && !strings.Contains(folder.String(t.Description), needle) {
			continue
		}
		if f.Type != "" && f.Type != TypeAll && string(t.Type) != f.Type {
			continue
		}
		if f.Category != "" && f.Category != CategoryAll && t.Category != f.Category {
			continue
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// UsedCategories returns the distinct categories present in the
// collection, sorted alphabetically. Feeds the category filter dropdown.
func UsedCategories(txs []Transaction) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(txs))
	for _, t := range txs {
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	sort.Strings(out)
	return out
}
