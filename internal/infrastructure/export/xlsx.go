// Package export renders reference lists as spreadsheet downloads.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ContentTypeXLSX is the media type of an Office Open XML workbook
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Rows projects items onto columns, which name JSON properties of T.
// Missing and null properties become empty cells.
func Rows[T any](items []T, columns []string) ([][]any, error) {
	rows := make([][]any, 0, len(items))
	for i := range items {
		raw, err := json.Marshal(&items[i])
		if err != nil {
			return nil, fmt.Errorf("failed to encode row %d: %w", i, err)
		}
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("failed to decode row %d: %w", i, err)
		}
		row := make([]any, len(columns))
		for j, col := range columns {
			if v, ok := fields[col]; ok && v != nil {
				row[j] = v
			} else {
				row[j] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// HeaderLabel turns a JSON property name into a column heading, "maker_name" -> "Maker Name"
func HeaderLabel(column string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(column, "_", " "))
}

// WriteXLSX renders a single-sheet workbook with a bold header row
func WriteXLSX(sheet string, columns []string, rows [][]any) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = HeaderLabel(col)
	}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return nil, err
	}
	if len(columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(columns), 1)
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to style header: %w", err)
		}
		lastCol, _ := excelize.ColumnNumberToName(len(columns))
		if err := f.SetColWidth(sheet, "A", lastCol, 20); err != nil {
			return nil, fmt.Errorf("failed to size columns: %w", err)
		}
	}

	for i, row := range rows {
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}
