// Package viewmodel derives what a ledger table shows: the fund options,
// the rows left after the fund filter, and those rows ordered by date.
//
// Every derivation is a pure function of a table snapshot and the current
// filter/sort parameters. Model wraps them with the per-session lifecycle.
package viewmodel

// Column labels matched literally against the header row.
const (
	FundColumn      = "Фонд"
	DateColumn      = "Дата"
	OperationColumn = "Тип операції"
	DebitColumn     = "Дебет"
	CreditColumn    = "Кредит"
)

// FilterAll is the filter value that disables fund filtering.
const FilterAll = "all"

// SortDirection orders rows by the date column.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Toggle returns the opposite direction. Unknown values toggle to Descending,
// the opposite of the default.
func (d SortDirection) Toggle() SortDirection {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// Valid reports whether d is one of the two known directions.
func (d SortDirection) Valid() bool {
	return d == Ascending || d == Descending
}

// Arrow is the glyph shown on the sort control.
func (d SortDirection) Arrow() string {
	if d == Descending {
		return "↓"
	}
	return "↑"
}

// ParseSortDirection maps "asc"/"desc" to a direction; anything else
// (including "") yields Ascending and false.
func ParseSortDirection(s string) (SortDirection, bool) {
	switch SortDirection(s) {
	case Ascending:
		return Ascending, true
	case Descending:
		return Descending, true
	default:
		return Ascending, false
	}
}
