// Package sheet decodes spreadsheet workbooks into a generic table of strings.
//
// Only the first sheet of a workbook is read. The first non-empty row becomes
// the header row and every following row is kept as-is, including rows that
// are shorter or longer than the header.
package sheet

// Row is a single sheet row of stringified cell values.
type Row []string

// Cell returns the value at position i, or "" when the row is too short.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// Table is the parsed form of a workbook's first sheet.
// A Table is replaced wholesale on each upload and never mutated afterwards.
type Table struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// ColumnIndex returns the position of the first header equal to label,
// or -1 when the label is absent or t is nil.
func (t *Table) ColumnIndex(label string) int {
	if t == nil {
		return -1
	}
	for i, h := range t.Headers {
		if h == label {
			return i
		}
	}
	return -1
}

// Len returns the number of data rows (the header row is not counted).
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// fromRecords splits decoded records into headers and data rows. The header
// is the first non-empty row of the used range.
func fromRecords(records [][]string) *Table {
	records = usedRange(records)

	t := &Table{Rows: []Row{}}
	if len(records) == 0 {
		return t
	}
	t.Headers = records[0]
	if t.Headers == nil {
		t.Headers = []string{}
	}
	for _, rec := range records[1:] {
		t.Rows = append(t.Rows, Row(rec))
	}
	return t
}

// usedRange drops blank rows above the first non-empty row and blank columns
// left of the first non-empty column. Decoders report rows counted from A1.
func usedRange(records [][]string) [][]string {
	start := 0
	for start < len(records) && isBlank(records[start]) {
		start++
	}
	records = records[start:]

	left := -1
	for _, rec := range records {
		for i, cell := range rec {
			if cell != "" {
				if left < 0 || i < left {
					left = i
				}
				break
			}
		}
	}
	if left <= 0 {
		return records
	}

	shifted := make([][]string, len(records))
	for i, rec := range records {
		if len(rec) > left {
			shifted[i] = rec[left:]
		} else {
			shifted[i] = []string{}
		}
	}
	return shifted
}

func isBlank(rec []string) bool {
	for _, cell := range rec {
		if cell != "" {
			return false
		}
	}
	return true
}
