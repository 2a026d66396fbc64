package denue

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleRows() []ClinicRow {
	return []ClinicRow{
		{
			Name:          "Dental Uno",
			Slug:          "dental-uno",
			AddressLine1:  "CALLE JUAREZ 123, Col. CENTRO",
			City:          "Tijuana",
			State:         "BC",
			Country:       "MX",
			Phone:         "664 123 4567",
			WebsiteURL:    "https://dentaluno.example.com",
			GoogleMapsURL: "https://www.google.com/maps/search/?api=1&query=32.5%2C-117",
		},
		{
			Name:    `Clinica "La Esperanza", S.A.`,
			Slug:    "clinica-la-esperanza-s-a",
			City:    "Tijuana",
			State:   "BC",
			Country: "MX",
		},
	}
}

func TestRowsToCSV_HeaderOrderAndQuoting(t *testing.T) {
	csvText := RowsToCSV(sampleRows())
	lines := strings.Split(strings.TrimRight(csvText, "\n"), "\n")

	assert.Equal(t, "name,slug,addressLine1,city,state,country,phone,whatsapp,websiteUrl,googleMapsUrl,yelpUrl", lines[0])
	assert.Len(t, lines, 3)
	// Cells containing commas or quotes are wrapped with doubled quotes.
	assert.Contains(t, lines[2], `"Clinica ""La Esperanza"", S.A."`)
}

func TestCSVRoundTrip(t *testing.T) {
	rows := sampleRows()
	result := ParseClinicCSV(RowsToCSV(rows))

	assert.Empty(t, result.Errors)
	assert.Equal(t, rows, result.Rows)
}

func TestParseClinicCSV_HeaderMappingCaseInsensitive(t *testing.T) {
	csvText := "Name,SLUG,AddressLine1,unknowncolumn\nDental Uno,dental-uno,Calle 1,ignored\n"
	result := ParseClinicCSV(csvText)

	assert.Empty(t, result.Errors)
	assert.Len(t, result.Rows, 1)
	assert.Equal(t, "Dental Uno", result.Rows[0].Name)
	assert.Equal(t, "dental-uno", result.Rows[0].Slug)
	assert.Equal(t, "Calle 1", result.Rows[0].AddressLine1)
}

func TestParseClinicCSV_MissingNameHeaderFailsWholesale(t *testing.T) {
	result := ParseClinicCSV("slug,city\ndental-uno,Tijuana\n")

	assert.Empty(t, result.Rows)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 0, result.Errors[0].RowIndex)
	assert.Contains(t, result.Errors[0].Message, `"name" header`)
}

func TestParseClinicCSV_EmptyContent(t *testing.T) {
	result := ParseClinicCSV("")

	assert.Empty(t, result.Rows)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 0, result.Errors[0].RowIndex)
}

func TestParseClinicCSV_RowErrorsDoNotAbortParse(t *testing.T) {
	csvText := "name,slug\n,missing-name\nDental Dos,\n"
	result := ParseClinicCSV(csvText)

	// Row 1 has no name and is rejected; row 2 derives its slug from
	// the name and parses.
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 1, result.Errors[0].RowIndex)
	assert.Contains(t, result.Errors[0].Message, "Name is required.")

	assert.Len(t, result.Rows, 1)
	assert.Equal(t, "Dental Dos", result.Rows[0].Name)
	assert.Equal(t, "dental-dos", result.Rows[0].Slug)
}

func TestParseClinicCSV_BlankRowsSkippedSilently(t *testing.T) {
	csvText := "name,slug\nDental Uno,dental-uno\n , \nDental Dos,dental-dos\n"
	result := ParseClinicCSV(csvText)

	assert.Empty(t, result.Errors)
	assert.Len(t, result.Rows, 2)
}

func TestParseClinicCSV_QuotedFieldsWithEmbeddedSeparators(t *testing.T) {
	csvText := "name,slug,addressLine1\n\"Dental, Uno\",dental-uno,\"Linea 1\nLinea 2\"\n"
	result := ParseClinicCSV(csvText)

	assert.Empty(t, result.Errors)
	assert.Len(t, result.Rows, 1)
	assert.Equal(t, "Dental, Uno", result.Rows[0].Name)
	assert.Equal(t, "Linea 1\nLinea 2", result.Rows[0].AddressLine1)
}

func TestParseClinicCSV_CRLFSeparators(t *testing.T) {
	csvText := "name,slug\r\nDental Uno,dental-uno\r\nDental Dos,dental-dos\r\n"
	result := ParseClinicCSV(csvText)

	assert.Empty(t, result.Errors)
	assert.Len(t, result.Rows, 2)
}

func TestParseClinicCSV_BareCRSeparators(t *testing.T) {
	csvText := "name,slug\rDental Uno,dental-uno\rDental Dos,dental-dos\r"
	result := ParseClinicCSV(csvText)

	assert.Empty(t, result.Errors)
	assert.Len(t, result.Rows, 2)
	assert.Equal(t, "Dental Uno", result.Rows[0].Name)
	assert.Equal(t, "Dental Dos", result.Rows[1].Name)
}

func TestParseClinicCSV_EmptyLinesKeepRowIndexes(t *testing.T) {
	csvText := "name,slug\n\n,missing-name\n"
	result := ParseClinicCSV(csvText)

	// The empty line is row 1, so the rejected row reports index 2.
	assert.Empty(t, result.Rows)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].RowIndex)
	assert.Contains(t, result.Errors[0].Message, "Name is required.")
}
