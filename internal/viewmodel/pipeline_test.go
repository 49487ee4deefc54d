package viewmodel

import (
	"fmt"
	"slices"
	"testing"

	"github.com/JonMunkholm/ledgerview/internal/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerTable() *sheet.Table {
	return &sheet.Table{
		Headers: []string{"Фонд", "Дата", "Тип операції", "Дебет", "Кредит"},
		Rows: []sheet.Row{
			{"A", "01.02.2023", "x", "10", "0"},
			{"B", "15.01.2023", "y", "0", "5"},
		},
	}
}

func wideTable() *sheet.Table {
	return &sheet.Table{
		Headers: []string{"Фонд", "Дата", "Дебет"},
		Rows: []sheet.Row{
			{"A", "03.03.2023", "1"},
			{"B", "01.01.2022", "2"},
			{"", "10.10.2023", "3"},
			{"A", "02.01.2023", "4"},
			{"C", "28.02.2021", "5"},
			{"B", "31.12.2023", "6"},
		},
	}
}

func TestLedgerScenario(t *testing.T) {
	table := ledgerTable()

	assert.Equal(t, []string{"A", "B"}, DeriveFilterOptions(table))

	filtered, outcome := FilterRows(table, "A")
	assert.Equal(t, Applied, outcome)
	assert.Equal(t, []sheet.Row{{"A", "01.02.2023", "x", "10", "0"}}, filtered)

	sorted, outcome := SortRows(table.Rows, table, Ascending)
	assert.Equal(t, Applied, outcome)
	require.Len(t, sorted, 2)
	assert.Equal(t, "15.01.2023", sorted[0][1])
	assert.Equal(t, "01.02.2023", sorted[1][1])
}

func TestDeriveFilterOptions(t *testing.T) {
	tests := []struct {
		name  string
		table *sheet.Table
		want  []string
	}{
		{
			name:  "first seen order, blanks dropped",
			table: wideTable(),
			want:  []string{"A", "B", "C"},
		},
		{
			name:  "no table",
			table: nil,
			want:  []string{},
		},
		{
			name: "no fund column",
			table: &sheet.Table{
				Headers: []string{"Дата"},
				Rows:    []sheet.Row{{"01.01.2023"}},
			},
			want: []string{},
		},
		{
			name: "ragged rows read as blank",
			table: &sheet.Table{
				Headers: []string{"Дата", "Фонд"},
				Rows:    []sheet.Row{{"01.01.2023"}, {"02.01.2023", "Z"}},
			},
			want: []string{"Z"},
		},
		{
			name: "case sensitive values stay distinct",
			table: &sheet.Table{
				Headers: []string{"Фонд"},
				Rows:    []sheet.Row{{"a"}, {"A"}, {"a"}},
			},
			want: []string{"a", "A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveFilterOptions(tt.table)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, FilterAll)
		})
	}
}

func TestFilterRows_AllIsIdentity(t *testing.T) {
	table := wideTable()

	rows, outcome := FilterRows(table, FilterAll)
	assert.Equal(t, SkippedAll, outcome)
	require.Len(t, rows, len(table.Rows))
	// same backing array, not a copy
	assert.Same(t, &table.Rows[0], &rows[0])
}

func TestFilterRows_SoundAndComplete(t *testing.T) {
	table := wideTable()
	idx := table.ColumnIndex(FundColumn)

	for _, v := range DeriveFilterOptions(table) {
		t.Run(v, func(t *testing.T) {
			rows, outcome := FilterRows(table, v)
			assert.Equal(t, Applied, outcome)

			var want []sheet.Row
			for _, row := range table.Rows {
				if row.Cell(idx) == v {
					want = append(want, row)
				}
			}
			for _, row := range rows {
				assert.Equal(t, v, row.Cell(idx))
			}
			assert.Equal(t, want, rows)
		})
	}
}

func TestFilterRows_ExactMatch(t *testing.T) {
	table := &sheet.Table{
		Headers: []string{"Фонд"},
		Rows:    []sheet.Row{{"A"}, {"a"}, {" A"}, {"A "}},
	}

	rows, outcome := FilterRows(table, "A")
	assert.Equal(t, Applied, outcome)
	assert.Equal(t, []sheet.Row{{"A"}}, rows)

	rows, outcome = FilterRows(table, "missing")
	assert.Equal(t, Applied, outcome)
	assert.Empty(t, rows)
}

func TestFilterRows_MissingColumn(t *testing.T) {
	table := &sheet.Table{
		Headers: []string{"Дата", "Дебет"},
		Rows:    []sheet.Row{{"01.01.2023", "1"}, {"02.01.2023", "2"}},
	}

	for _, v := range []string{"A", FilterAll, ""} {
		rows, outcome := FilterRows(table, v)
		assert.Equal(t, table.Rows, rows)
		if v == FilterAll {
			assert.Equal(t, SkippedAll, outcome)
		} else {
			assert.Equal(t, SkippedColumnAbsent, outcome)
		}
	}
	assert.Equal(t, []string{}, DeriveFilterOptions(table))
}

func TestFilterRows_NoTable(t *testing.T) {
	rows, outcome := FilterRows(nil, "A")
	assert.Nil(t, rows)
	assert.Equal(t, SkippedNoTable, outcome)
}

func TestSortRows_DoesNotMutateInput(t *testing.T) {
	table := wideTable()
	original := slices.Clone(table.Rows)

	sorted, outcome := SortRows(table.Rows, table, Descending)
	assert.Equal(t, Applied, outcome)
	assert.Equal(t, original, table.Rows)
	assert.NotEqual(t, table.Rows, sorted)
}

func TestSortRows_Order(t *testing.T) {
	table := wideTable()

	asc, _ := SortRows(table.Rows, table, Ascending)
	assert.Equal(t, []string{
		"28.02.2021", "01.01.2022", "02.01.2023", "03.03.2023", "10.10.2023", "31.12.2023",
	}, dates(asc))

	desc, _ := SortRows(table.Rows, table, Descending)
	assert.Equal(t, []string{
		"31.12.2023", "10.10.2023", "03.03.2023", "02.01.2023", "01.01.2022", "28.02.2021",
	}, dates(desc))
}

func TestSortRows_Idempotent(t *testing.T) {
	table := wideTable()

	for _, dir := range []SortDirection{Ascending, Descending} {
		once, _ := SortRows(table.Rows, table, dir)
		twice, _ := SortRows(once, table, dir)
		assert.Equal(t, once, twice, "direction %s", dir)
	}
}

func TestSortRows_ReverseWithoutTies(t *testing.T) {
	table := wideTable()

	asc, _ := SortRows(table.Rows, table, Ascending)
	desc, _ := SortRows(asc, table, Descending)

	reversed := slices.Clone(asc)
	slices.Reverse(reversed)
	assert.Equal(t, reversed, desc)
}

func TestSortRows_TiesKeepInputOrder(t *testing.T) {
	table := &sheet.Table{
		Headers: []string{"Фонд", "Дата"},
		Rows: []sheet.Row{
			{"first", "01.01.2023"},
			{"early", "01.01.2020"},
			{"second", "01.01.2023"},
			{"third", "01.01.2023"},
		},
	}

	asc, _ := SortRows(table.Rows, table, Ascending)
	assert.Equal(t, []string{"early", "first", "second", "third"}, funds(asc))

	desc, _ := SortRows(table.Rows, table, Descending)
	assert.Equal(t, []string{"first", "second", "third", "early"}, funds(desc))
}

func TestSortRows_MissingDateColumn(t *testing.T) {
	table := &sheet.Table{
		Headers: []string{"Фонд"},
		Rows:    []sheet.Row{{"B"}, {"A"}},
	}

	for _, dir := range []SortDirection{Ascending, Descending, Ascending} {
		rows, outcome := SortRows(table.Rows, table, dir)
		assert.Equal(t, SkippedColumnAbsent, outcome)
		assert.Equal(t, table.Rows, rows)
	}
}

func TestSortRows_Skips(t *testing.T) {
	table := ledgerTable()

	rows, outcome := SortRows(nil, table, Ascending)
	assert.Empty(t, rows)
	assert.Equal(t, SkippedNoRows, outcome)

	rows, outcome = SortRows(table.Rows, nil, Ascending)
	assert.Equal(t, table.Rows, rows)
	assert.Equal(t, SkippedNoTable, outcome)
}

func TestSortRows_MalformedDatesDoNotFail(t *testing.T) {
	table := &sheet.Table{
		Headers: []string{"Фонд", "Дата"},
		Rows: []sheet.Row{
			{"a", "2023"},
			{"b"},
			{"c", "01.02.2023"},
			{"d", "garbage"},
			{"e", "1.2.3.4"},
		},
	}

	sorted, outcome := SortRows(table.Rows, table, Ascending)
	assert.Equal(t, Applied, outcome)
	assert.Len(t, sorted, len(table.Rows))
	assert.ElementsMatch(t, table.Rows, sorted)
}

func TestSortKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"15.01.2023", "2023-01-15"},
		{"01.02.2023", "2023-02-01"},
		{"5.1.2023", "2023-1-5"},
		{"01.2023", "2023-01"},
		{"2023", "2023"},
		{"", ""},
		{"1.2.3.4", "4-3-2-1"},
		{"2023-01-15", "2023-01-15"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, SortKey(tt.in))
		})
	}
}

func dates(rows []sheet.Row) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.Cell(1)
	}
	return out
}

func funds(rows []sheet.Row) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.Cell(0)
	}
	return out
}
