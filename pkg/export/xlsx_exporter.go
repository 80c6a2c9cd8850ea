package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Reporte"

// Column widths for the detail table; remaining blocks are narrower
// and reuse the leading columns.
var xlsxColumnWidths = []float64{40, 50, 20, 20, 40, 15, 45, 30, 15, 20}

// XLSXExporter renders a Document into a styled workbook.
type XLSXExporter struct{}

// NewXLSXExporter constructs an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Render produces the workbook bytes.
func (e *XLSXExporter) Render(doc Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), xlsxSheet)

	for i, width := range xlsxColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("resolve column: %w", err)
		}
		if err := f.SetColWidth(xlsxSheet, col, col, width); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	bannerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"5D0A28"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("banner style: %w", err)
	}
	subBannerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"8B1538"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("sub-banner style: %w", err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	})
	if err != nil {
		return nil, fmt.Errorf("title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E0E0E0"}},
		Border: []excelize.Border{
			{Type: "top", Style: 1, Color: "D0D0D0"},
			{Type: "bottom", Style: 1, Color: "D0D0D0"},
			{Type: "left", Style: 1, Color: "D0D0D0"},
			{Type: "right", Style: 1, Color: "D0D0D0"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 10},
		Border: []excelize.Border{
			{Type: "top", Style: 1, Color: "D0D0D0"},
			{Type: "bottom", Style: 1, Color: "D0D0D0"},
			{Type: "left", Style: 1, Color: "D0D0D0"},
			{Type: "right", Style: 1, Color: "D0D0D0"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("cell style: %w", err)
	}

	row := 1
	bannerWidth := len(xlsxColumnWidths)

	for i, line := range doc.Banner {
		style := subBannerStyle
		if i == 0 {
			style = bannerStyle
		}
		start, _ := excelize.CoordinatesToCellName(1, row)
		end, _ := excelize.CoordinatesToCellName(bannerWidth, row)
		if err := f.MergeCell(xlsxSheet, start, end); err != nil {
			return nil, fmt.Errorf("merge banner: %w", err)
		}
		if err := f.SetCellValue(xlsxSheet, start, line); err != nil {
			return nil, fmt.Errorf("set banner: %w", err)
		}
		if err := f.SetCellStyle(xlsxSheet, start, end, style); err != nil {
			return nil, fmt.Errorf("style banner: %w", err)
		}
		row++
	}
	row++

	writeKV := func(entries []KV) error {
		for _, kv := range entries {
			keyCell, _ := excelize.CoordinatesToCellName(1, row)
			valueCell, _ := excelize.CoordinatesToCellName(2, row)
			if err := f.SetCellValue(xlsxSheet, keyCell, kv.Key); err != nil {
				return fmt.Errorf("set meta key: %w", err)
			}
			if err := f.SetCellValue(xlsxSheet, valueCell, kv.Value); err != nil {
				return fmt.Errorf("set meta value: %w", err)
			}
			if err := f.SetCellStyle(xlsxSheet, keyCell, keyCell, titleStyle); err != nil {
				return fmt.Errorf("style meta key: %w", err)
			}
			row++
		}
		return nil
	}

	if err := writeKV(doc.Meta); err != nil {
		return nil, err
	}
	if len(doc.Filters) > 0 {
		row++
		titleCell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(xlsxSheet, titleCell, "Filtros aplicados"); err != nil {
			return nil, fmt.Errorf("set filters title: %w", err)
		}
		if err := f.SetCellStyle(xlsxSheet, titleCell, titleCell, titleStyle); err != nil {
			return nil, fmt.Errorf("style filters title: %w", err)
		}
		row++
		if err := writeKV(doc.Filters); err != nil {
			return nil, err
		}
	}

	for _, block := range doc.Blocks {
		row++
		titleCell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(xlsxSheet, titleCell, block.Title); err != nil {
			return nil, fmt.Errorf("set block title: %w", err)
		}
		if err := f.SetCellStyle(xlsxSheet, titleCell, titleCell, titleStyle); err != nil {
			return nil, fmt.Errorf("style block title: %w", err)
		}
		row++

		start, _ := excelize.CoordinatesToCellName(1, row)
		end, _ := excelize.CoordinatesToCellName(len(block.Headers), row)
		for i, header := range block.Headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := f.SetCellValue(xlsxSheet, cell, header); err != nil {
				return nil, fmt.Errorf("set header: %w", err)
			}
		}
		if err := f.SetCellStyle(xlsxSheet, start, end, headerStyle); err != nil {
			return nil, fmt.Errorf("style header: %w", err)
		}
		row++

		for _, dataRow := range block.Rows {
			start, _ := excelize.CoordinatesToCellName(1, row)
			end, _ := excelize.CoordinatesToCellName(len(block.Headers), row)
			for i, value := range dataRow {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				if err := f.SetCellValue(xlsxSheet, cell, value); err != nil {
					return nil, fmt.Errorf("set cell: %w", err)
				}
			}
			if err := f.SetCellStyle(xlsxSheet, start, end, cellStyle); err != nil {
				return nil, fmt.Errorf("style row: %w", err)
			}
			row++
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
