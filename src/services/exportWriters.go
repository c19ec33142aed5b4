package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
	excelize "github.com/xuri/excelize/v2"
)

const (
	maxColumnWidth = 50
	maxCellRunes   = 50
	headerColor    = "4472C4"
)

// column renders one field of T in an export.
type column[T any] struct {
	Label string
	Value func(T) any
}

func labels[T any](cols []column[T]) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Label
	}
	return out
}

func tabulate[T any](records []T, cols []column[T]) [][]any {
	rows := make([][]any, len(records))
	for i, r := range records {
		row := make([]any, len(cols))
		for j, c := range cols {
			row[j] = c.Value(r)
		}
		rows[i] = row
	}
	return rows
}

// str and num unwrap optional columns; nil stays an empty cell.
func str(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func num[T int | int64 | float64](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func cellText(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, title)
	if utf8.RuneCountInString(name) > 31 {
		name = string([]rune(name)[:31])
	}
	return name
}

func excelStyles(f *excelize.File) (header, body int, err error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    border,
	})
	if err != nil {
		return 0, 0, err
	}
	body, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Border:    border,
	})
	return header, body, err
}

// writeExcel renders a single-sheet workbook with a styled, frozen header row
// and column widths fitted to the content.
func writeExcel(title string, headers []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	headerStyle, bodyStyle, err := excelStyles(f)
	if err != nil {
		return nil, err
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
		widths[i] = utf8.RuneCountInString(h)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return nil, err
	}

	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if v != nil {
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return nil, err
				}
			}
			if n := utf8.RuneCountInString(cellText(v)); n > widths[c] {
				widths[c] = n
			}
		}
	}
	if len(rows) > 0 {
		end, _ := excelize.CoordinatesToCellName(len(headers), len(rows)+1)
		if err := f.SetCellStyle(sheet, "A2", end, bodyStyle); err != nil {
			return nil, err
		}
	}

	for i, w := range widths {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, name, name, float64(min(w+2, maxColumnWidth))); err != nil {
			return nil, err
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxCellRunes {
		return s
	}
	return string([]rune(s)[:maxCellRunes-3]) + "..."
}

// writePDF renders an A4 landscape table. The header row is repeated on
// every page and data rows alternate their fill.
func writePDF(title string, generated time.Time, headers []string, rows [][]any) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(false, 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, tr("Generato il: "+generated.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pageW, pageH := pdf.GetPageSize()
	left, _, right, bottom := pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(headers))
	const rowH = 6.0

	header := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(0x44, 0x72, 0xC4)
		pdf.SetTextColor(255, 255, 255)
		for _, h := range headers {
			pdf.CellFormat(colW, rowH+1, fit(pdf, tr(h), colW), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFillColor(0xE9, 0xED, 0xF4)
	}
	header()

	for i, row := range rows {
		if pdf.GetY()+rowH > pageH-bottom {
			pdf.AddPage()
			header()
		}
		for _, v := range row {
			text := fit(pdf, tr(truncate(cellText(v))), colW)
			pdf.CellFormat(colW, rowH, text, "1", 0, "L", i%2 == 1, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fit shortens s until it fits a cell of width w.
func fit(pdf *fpdf.Fpdf, s string, w float64) string {
	limit := w - 2*pdf.GetCellMargin()
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	r := []byte(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > limit {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
