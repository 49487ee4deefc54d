package viewmodel

import (
	"slices"
	"strings"

	"github.com/JonMunkholm/ledgerview/internal/sheet"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DeriveFilterOptions returns the distinct non-empty fund values in
// first-seen order. The "all" sentinel is never included.
func DeriveFilterOptions(t *sheet.Table) []string {
	options := []string{}

	idx := t.ColumnIndex(FundColumn)
	if idx < 0 {
		return options
	}

	seen := make(map[string]struct{})
	for _, row := range t.Rows {
		v := row.Cell(idx)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		options = append(options, v)
	}
	return options
}

// FilterRows keeps the rows whose fund cell equals value exactly.
// For "all", a missing table or a missing fund column the table's rows are
// returned as-is (not copied) together with the reason.
func FilterRows(t *sheet.Table, value string) ([]sheet.Row, Outcome) {
	if t == nil {
		return nil, SkippedNoTable
	}
	if value == FilterAll {
		return t.Rows, SkippedAll
	}

	idx := t.ColumnIndex(FundColumn)
	if idx < 0 {
		return t.Rows, SkippedColumnAbsent
	}

	filtered := make([]sheet.Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		if row.Cell(idx) == value {
			filtered = append(filtered, row)
		}
	}
	return filtered, Applied
}

// SortRows orders rows by the date column of t without touching rows.
// The result is a new slice; ties keep their input order in both directions.
func SortRows(rows []sheet.Row, t *sheet.Table, dir SortDirection) ([]sheet.Row, Outcome) {
	if len(rows) == 0 {
		return rows, SkippedNoRows
	}
	if t == nil {
		return rows, SkippedNoTable
	}

	idx := t.ColumnIndex(DateColumn)
	if idx < 0 {
		return rows, SkippedColumnAbsent
	}

	type keyed struct {
		key string
		row sheet.Row
	}
	items := make([]keyed, len(rows))
	for i, row := range rows {
		items[i] = keyed{key: SortKey(row.Cell(idx)), row: row}
	}

	col := collate.New(language.Und)
	slices.SortStableFunc(items, func(a, b keyed) int {
		if dir == Descending {
			return col.CompareString(b.key, a.key)
		}
		return col.CompareString(a.key, b.key)
	})

	sorted := make([]sheet.Row, len(items))
	for i, it := range items {
		sorted[i] = it.row
	}
	return sorted, Applied
}

// SortKey turns a DD.MM.YYYY cell into YYYY-MM-DD by reversing its
// dot-separated parts. No calendar validation happens: "2023" stays "2023",
// "5.2023" becomes "2023-5" and an empty cell stays empty.
func SortKey(cell string) string {
	parts := strings.Split(cell, ".")
	slices.Reverse(parts)
	return strings.Join(parts, "-")
}
