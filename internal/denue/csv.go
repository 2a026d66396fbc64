package denue

import (
	"encoding/csv"
	"strings"

	"clinic-directory/internal/slug"
)

// CSVHeaders is the fixed export column order. Import accepts any
// column order and ignores unrecognized headers.
var CSVHeaders = []string{
	"name",
	"slug",
	"addressLine1",
	"city",
	"state",
	"country",
	"phone",
	"whatsapp",
	"websiteUrl",
	"googleMapsUrl",
	"yelpUrl",
}

// headerToField maps a lower-cased header cell to a row field setter.
var headerToField = map[string]func(*ClinicRow, string){
	"name":          func(r *ClinicRow, v string) { r.Name = v },
	"slug":          func(r *ClinicRow, v string) { r.Slug = v },
	"addressline1":  func(r *ClinicRow, v string) { r.AddressLine1 = v },
	"city":          func(r *ClinicRow, v string) { r.City = v },
	"state":         func(r *ClinicRow, v string) { r.State = v },
	"country":       func(r *ClinicRow, v string) { r.Country = v },
	"phone":         func(r *ClinicRow, v string) { r.Phone = v },
	"whatsapp":      func(r *ClinicRow, v string) { r.Whatsapp = v },
	"websiteurl":    func(r *ClinicRow, v string) { r.WebsiteURL = v },
	"googlemapsurl": func(r *ClinicRow, v string) { r.GoogleMapsURL = v },
	"yelpurl":       func(r *ClinicRow, v string) { r.YelpURL = v },
}

func rowCells(row ClinicRow) []string {
	return []string{
		row.Name,
		row.Slug,
		row.AddressLine1,
		row.City,
		row.State,
		row.Country,
		row.Phone,
		row.Whatsapp,
		row.WebsiteURL,
		row.GoogleMapsURL,
		row.YelpURL,
	}
}

// RowsToCSV serializes rows with the fixed header order and RFC-4180
// quoting. Absent fields serialize as empty cells.
func RowsToCSV(rows []ClinicRow) string {
	var b strings.Builder
	w := csv.NewWriter(&b)

	w.Write(CSVHeaders)
	for _, row := range rows {
		w.Write(rowCells(row))
	}
	w.Flush()

	return b.String()
}

// ParseError records one rejected CSV row. RowIndex 0 means the header
// row (or the file as a whole) was unusable; data rows are 1-based.
type ParseError struct {
	RowIndex int    `json:"rowIndex"`
	Message  string `json:"message"`
}

// ParseResult carries the accepted rows and the per-row rejections of
// one parse. Valid rows still parse when other rows fail.
type ParseResult struct {
	Rows   []ClinicRow  `json:"rows"`
	Errors []ParseError `json:"errors"`
}

func isBlankRow(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseCSVCells splits CSV text into raw rows of cells. Rows may end
// with \r\n, a bare \r or a bare \n; encoding/csv does not treat a bare
// \r as a row terminator, so cells are scanned by hand. Quotes toggle
// literal mode and "" inside a quoted cell emits one quote. Trailing
// all-blank rows are dropped; interior blank rows are kept so row
// indexes stay stable.
func parseCSVCells(text string) [][]string {
	rows := [][]string{}
	currentRow := []string{}
	var cell strings.Builder
	inQuotes := false

	for i := 0; i < len(text); i++ {
		ch := text[i]

		if ch == '"' {
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				cell.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
			continue
		}

		if ch == ',' && !inQuotes {
			currentRow = append(currentRow, cell.String())
			cell.Reset()
			continue
		}

		if (ch == '\n' || ch == '\r') && !inQuotes {
			if ch == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			currentRow = append(currentRow, cell.String())
			cell.Reset()
			rows = append(rows, currentRow)
			currentRow = []string{}
			continue
		}

		cell.WriteByte(ch)
	}

	currentRow = append(currentRow, cell.String())
	rows = append(rows, currentRow)

	for len(rows) > 0 && isBlankRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}

	return rows
}

// ParseClinicCSV parses CSV text into clinic rows. The header row must
// include "name"; header matching is case-insensitive. Per row, name is
// required and slug falls back to the slugified name; a failing row is
// excluded and recorded in Errors while parsing continues. Blank rows
// are skipped silently.
func ParseClinicCSV(text string) ParseResult {
	csvRows := parseCSVCells(text)
	if len(csvRows) == 0 {
		return ParseResult{
			Errors: []ParseError{{RowIndex: 0, Message: "CSV content is empty."}},
		}
	}

	headerRow := make([]string, len(csvRows[0]))
	hasNameHeader := false
	for i, cell := range csvRows[0] {
		headerRow[i] = strings.ToLower(strings.TrimSpace(cell))
		if headerRow[i] == "name" {
			hasNameHeader = true
		}
	}
	if !hasNameHeader {
		return ParseResult{
			Errors: []ParseError{{RowIndex: 0, Message: `CSV must include a "name" header.`}},
		}
	}

	result := ParseResult{Rows: []ClinicRow{}, Errors: []ParseError{}}

	for dataRowIndex := 1; dataRowIndex < len(csvRows); dataRowIndex++ {
		cells := csvRows[dataRowIndex]
		if isBlankRow(cells) {
			continue
		}

		var row ClinicRow
		for columnIndex, header := range headerRow {
			setField, ok := headerToField[header]
			if !ok || columnIndex >= len(cells) {
				continue
			}
			if value := strings.TrimSpace(cells[columnIndex]); value != "" {
				setField(&row, value)
			}
		}

		var rowErrors []string
		if row.Name == "" {
			rowErrors = append(rowErrors, "Name is required.")
		}

		slugSource := row.Slug
		if slugSource == "" {
			slugSource = row.Name
		}
		rowSlug := slug.Make(slugSource)
		if rowSlug == "" {
			rowErrors = append(rowErrors, "Slug could not be generated.")
		}

		if len(rowErrors) > 0 {
			for _, message := range rowErrors {
				result.Errors = append(result.Errors, ParseError{RowIndex: dataRowIndex, Message: message})
			}
			continue
		}

		row.Slug = rowSlug
		result.Rows = append(result.Rows, row)
	}

	return result
}
