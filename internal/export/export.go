// Package export renders the visitor list for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/welcomedesk/visitors/internal/models"
)

var Header = []string{
	"Submitted", "Full Name", "Phone", "Email", "Age Group", "City",
	"Heard About Us", "First Time", "Language", "Notes", "ID",
}

const sheetName = "Visitors"

// Rows flattens visitors in the order given, with timestamps in loc.
func Rows(vs []models.Visitor, loc *time.Location) [][]string {
	if loc == nil {
		loc = time.UTC
	}
	out := make([][]string, 0, len(vs))
	for _, v := range vs {
		first := "No"
		if v.IsFirstTime {
			first = "Yes"
		}
		out = append(out, []string{
			v.SubmissionDate.In(loc).Format("2006-01-02 15:04"),
			cell(v.FullName),
			cell(v.Phone),
			cell(v.Email),
			string(v.AgeGroup),
			cell(v.City),
			cell(v.HearAbout),
			first,
			v.LanguageName(),
			cell(v.Notes),
			v.ID,
		})
	}
	return out
}

// cell keeps visitor text from being read as a spreadsheet formula.
func cell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}

func WriteCSV(w io.Writer, vs []models.Visitor, loc *time.Location) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	if err := cw.WriteAll(Rows(vs, loc)); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func WriteXLSX(w io.Writer, vs []models.Visitor, loc *time.Location) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	if err := setRow(f, 1, Header); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(Header), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("set header style: %w", err)
	}
	for i, row := range Rows(vs, loc) {
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	widths := []float64{18, 24, 16, 28, 12, 16, 20, 10, 10, 40, 38}
	for i, wd := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetName, col, col, wd); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, n int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	vals := make([]any, len(cells))
	for i, c := range cells {
		vals[i] = c
	}
	if err := f.SetSheetRow(sheetName, cell, &vals); err != nil {
		return fmt.Errorf("set row %d: %w", n, err)
	}
	return nil
}
