package analytics

import (
	"sort"

	"fintrack/internal/models"
	"fintrack/internal/money"
)

// UncategorizedName labels transactions whose category could not be resolved.
const UncategorizedName = "Uncategorized"

// BreakdownKey groups transactions by category identity and type.
type BreakdownKey struct {
	CategoryID string
	Type       models.TransactionType
}

// CategoryBreakdownEntry is the summed total of one (category, type) group.
type CategoryBreakdownEntry struct {
	CategoryID    string                 `json:"category_id"`
	CategoryName  string                 `json:"category_name"`
	CategoryColor *string                `json:"category_color"`
	TotalAmount   money.Money            `json:"total_amount"`
	Type          models.TransactionType `json:"type"`
	// TransactionCount is available to Go callers such as report renderers
	// but is not part of the JSON shape.
	TransactionCount int `json:"-"`
}

// CategoryIndex resolves category ids to categories.
type CategoryIndex map[string]models.Category

// IndexCategories builds a CategoryIndex from a category list.
func IndexCategories(categories []models.Category) CategoryIndex {
	idx := make(CategoryIndex, len(categories))
	for _, c := range categories {
		idx[c.ID] = c
	}
	return idx
}

// Lookup returns the display name and color for a category id.
func (idx CategoryIndex) Lookup(categoryID string) (string, *string) {
	if c, ok := idx[categoryID]; ok {
		return c.Name, c.Color
	}
	return UncategorizedName, nil
}

// BuildBreakdown groups txs by (category, type) and sums each group. Groups
// without transactions never appear. Entries are ordered by type, then
// category name, then category id, so repeated calls over the same set
// return the same sequence regardless of input order.
func BuildBreakdown(txs []models.Transaction, categories CategoryIndex) []CategoryBreakdownEntry {
	groups := make(map[BreakdownKey]*CategoryBreakdownEntry)
	for i := range txs {
		tx := &txs[i]
		key := BreakdownKey{CategoryID: tx.CategoryID, Type: tx.Type}
		entry, ok := groups[key]
		if !ok {
			name, color := categories.Lookup(tx.CategoryID)
			entry = &CategoryBreakdownEntry{
				CategoryID:    tx.CategoryID,
				CategoryName:  name,
				CategoryColor: color,
				Type:          tx.Type,
			}
			groups[key] = entry
		}
		entry.TotalAmount = entry.TotalAmount.Add(tx.Amount)
		entry.TransactionCount++
	}

	entries := make([]CategoryBreakdownEntry, 0, len(groups))
	for _, e := range groups {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.CategoryName != b.CategoryName {
			return a.CategoryName < b.CategoryName
		}
		return a.CategoryID < b.CategoryID
	})
	return entries
}
