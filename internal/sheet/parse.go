package sheet

import (
	"bytes"
	"fmt"
	"io"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// legacyCharset is passed to the BIFF decoder for pre-Unicode workbooks.
const legacyCharset = "utf-8"

// Parse decodes a workbook and returns its first sheet as a Table.
// Invalid or corrupt input yields a *DecodeError.
func Parse(data []byte) (*Table, error) {
	format := DetectFormat(data)

	var (
		records [][]string
		err     error
	)
	switch format {
	case FormatXLS:
		records, err = readLegacy(data)
	default:
		records, err = readOpenXML(data)
	}
	if err != nil {
		return nil, newDecodeError(format, err)
	}

	return fromRecords(records), nil
}

// ParseReader reads r to the end and parses the result.
func ParseReader(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	return Parse(data)
}

// readOpenXML reads the first sheet of an xlsx workbook.
func readOpenXML(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// readLegacy reads the first sheet of a BIFF (.xls) workbook.
// The decoder panics on some malformed streams, so panics become errors.
func readLegacy(data []byte) (records [][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			records = nil
			err = fmt.Errorf("legacy decoder: %v", r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), legacyCharset)
	if err != nil {
		return nil, err
	}
	if wb.NumSheets() == 0 {
		return nil, ErrNoSheets
	}

	ws := wb.GetSheet(0)
	if ws == nil {
		return nil, ErrNoSheets
	}

	for i := 0; i <= int(ws.MaxRow); i++ {
		records = append(records, legacyRowAt(ws, i))
	}
	return trimTrailingEmpty(records), nil
}

// legacyRowAt returns row i of ws. The decoder panics on indexes that have
// no row record, which is how blank rows are stored.
func legacyRowAt(ws *xls.WorkSheet, i int) (cells []string) {
	defer func() {
		if recover() != nil {
			cells = []string{}
		}
	}()
	return legacyRow(ws.Row(i))
}

func legacyRow(row *xls.Row) []string {
	if row == nil {
		return []string{}
	}
	cells := make([]string, 0, row.LastCol())
	for c := 0; c < row.LastCol(); c++ {
		cells = append(cells, row.Col(c))
	}
	end := len(cells)
	for end > 0 && cells[end-1] == "" {
		end--
	}
	return cells[:end]
}

// trimTrailingEmpty drops empty rows at the end of a sheet, matching the
// shape excelize returns for xlsx.
func trimTrailingEmpty(records [][]string) [][]string {
	end := len(records)
	for end > 0 && isBlank(records[end-1]) {
		end--
	}
	return records[:end]
}
