package viewmodel

import "github.com/JonMunkholm/ledgerview/internal/sheet"

// View is the render-ready result of the pipeline for one table snapshot.
type View struct {
	Loaded        bool          `json:"loaded"`
	Headers       []string      `json:"headers"`
	Rows          []sheet.Row   `json:"rows"`
	FundOptions   []string      `json:"fundOptions"`
	Filter        string        `json:"filter"`
	Sort          SortDirection `json:"sort"`
	FilterOutcome Outcome       `json:"filterOutcome"`
	SortOutcome   Outcome       `json:"sortOutcome"`
	TotalRows     int           `json:"totalRows"`
}

// Build runs options → filter → sort over t. A nil table yields an
// unloaded View that still carries the requested filter and direction.
func Build(t *sheet.Table, filter string, dir SortDirection) View {
	if filter == "" {
		filter = FilterAll
	}
	if !dir.Valid() {
		dir = Ascending
	}

	v := View{
		Loaded:      t != nil,
		Headers:     []string{},
		Rows:        []sheet.Row{},
		FundOptions: DeriveFilterOptions(t),
		Filter:      filter,
		Sort:        dir,
		TotalRows:   t.Len(),
	}
	if t != nil && t.Headers != nil {
		v.Headers = t.Headers
	}

	filtered, fo := FilterRows(t, filter)
	sorted, so := SortRows(filtered, t, dir)

	v.FilterOutcome = fo
	v.SortOutcome = so
	if sorted != nil {
		v.Rows = sorted
	}
	return v
}
