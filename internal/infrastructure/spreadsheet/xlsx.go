// Package spreadsheet renders tabular exports as xlsx workbooks.
package spreadsheet

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of xlsx output
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	maxColumnWidth = 60
	minColumnWidth = 10
	timeLayout     = "2006-01-02 15:04:05"
)

// Table is one worksheet of data
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]any
}

// Render writes table into a new workbook and returns the file bytes.
// time.Time cells are formatted in UTC, nil pointers become empty cells.
func Render(table Table) ([]byte, error) {
	if len(table.Headers) == 0 {
		return nil, fmt.Errorf("spreadsheet: headers are required")
	}
	sheet := table.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return nil, fmt.Errorf("spreadsheet: rename sheet: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DCE6F1"}},
	})
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: header style: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: stream writer: %w", err)
	}

	widths := make([]int, len(table.Headers))
	header := make([]any, len(table.Headers))
	for i, h := range table.Headers {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: h}
		widths[i] = len(h)
	}

	rows := make([][]any, 0, len(table.Rows))
	for _, r := range table.Rows {
		row := make([]any, len(table.Headers))
		for i := range row {
			if i >= len(r) {
				continue
			}
			row[i] = cellValue(r[i])
			if s := fmt.Sprint(row[i]); row[i] != nil && len(s) > widths[i] {
				widths[i] = len(s)
			}
		}
		rows = append(rows, row)
	}

	// column widths must be set before any row is streamed
	for i, w := range widths {
		w = max(min(w+2, maxColumnWidth), minColumnWidth)
		if err := sw.SetColWidth(i+1, i+1, float64(w)); err != nil {
			return nil, fmt.Errorf("spreadsheet: column width: %w", err)
		}
	}
	if err := sw.SetPanes(&excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, fmt.Errorf("spreadsheet: freeze header: %w", err)
	}

	if err := sw.SetRow("A1", header); err != nil {
		return nil, fmt.Errorf("spreadsheet: write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return nil, fmt.Errorf("spreadsheet: write row %d: %w", i+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("spreadsheet: flush: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("spreadsheet: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cellValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		if t.IsZero() {
			return nil
		}
		return t.UTC().Format(timeLayout)
	case *time.Time:
		if t == nil {
			return nil
		}
		return cellValue(*t)
	case *string:
		if t == nil {
			return nil
		}
		return *t
	case fmt.Stringer:
		return t.String()
	default:
		return v
	}
}
