// Package templates holds the HTML components of the web UI.
//
// Components are written in page.templ; page_templ.go is generated from it
// with `templ generate`. Every cell value and header label is escaped and
// shown literally.
package templates

import (
	"strconv"
	"strings"

	"github.com/JonMunkholm/ledgerview/internal/sheet"
	"github.com/JonMunkholm/ledgerview/internal/viewmodel"
)

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.960 generate

// Labels shown in the UI.
const (
	AllLabel    = "All"
	UploadLabel = "Choose XLSX file"
)

// UploadAccept limits the browser file picker to the parser's extensions.
var UploadAccept = strings.Join(sheet.Extensions, ", ")

// SortButtonLabel is the sort toggle text, e.g. "Sort by Date ↑".
func SortButtonLabel(dir viewmodel.SortDirection) string {
	return "Sort by Date " + dir.Arrow()
}

func countLabel(v viewmodel.View) string {
	return strconv.Itoa(len(v.Rows)) + " / " + strconv.Itoa(v.TotalRows)
}
