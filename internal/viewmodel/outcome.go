package viewmodel

import "fmt"

// Outcome records whether a filter or sort step changed anything, and if
// not, why. It separates "nothing to do" from "the column is missing".
type Outcome int

const (
	// Applied means the step ran against its column.
	Applied Outcome = iota
	// SkippedAll means the filter was the "all" sentinel.
	SkippedAll
	// SkippedNoTable means no table has been loaded.
	SkippedNoTable
	// SkippedNoRows means there was nothing to sort.
	SkippedNoRows
	// SkippedColumnAbsent means the expected header is not in the table.
	SkippedColumnAbsent
)

var outcomeNames = map[Outcome]string{
	Applied:             "applied",
	SkippedAll:          "skipped_all",
	SkippedNoTable:      "skipped_no_table",
	SkippedNoRows:       "skipped_no_rows",
	SkippedColumnAbsent: "skipped_column_absent",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "unknown"
}

// Skipped reports whether the step left its input unchanged.
func (o Outcome) Skipped() bool {
	return o != Applied
}

// MarshalText renders the outcome by name in JSON responses.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText parses an outcome name written by MarshalText.
func (o *Outcome) UnmarshalText(text []byte) error {
	for k, name := range outcomeNames {
		if name == string(text) {
			*o = k
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", text)
}
