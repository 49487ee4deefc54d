package sheet

import "github.com/gabriel-vasile/mimetype"

// Format identifies the decoder used for a payload.
type Format string

const (
	// FormatXLSX covers Office Open XML workbooks (.xlsx, .xlsm) and anything
	// that is not an OLE2 container.
	FormatXLSX Format = "xlsx"
	// FormatXLS covers legacy BIFF workbooks stored in OLE2 containers (.xls).
	FormatXLS Format = "xls"
)

// Extensions accepted by the upload surface.
var Extensions = []string{".xlsx", ".xls"}

// legacyMIMEs are OLE2 containers routed to the BIFF decoder.
var legacyMIMEs = []string{
	"application/vnd.ms-excel",
	"application/x-ole-storage",
}

// DetectFormat picks a decoder for data. It never rejects input: unknown
// payloads fall through to the xlsx decoder, which reports the failure.
func DetectFormat(data []byte) Format {
	m := mimetype.Detect(data)
	for ; m != nil; m = m.Parent() {
		for _, legacy := range legacyMIMEs {
			if m.Is(legacy) {
				return FormatXLS
			}
		}
	}
	return FormatXLSX
}
