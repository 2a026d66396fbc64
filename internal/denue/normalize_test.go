package denue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWebsiteURL(t *testing.T) {
	assert.Equal(t, "https://example.com", NormalizeWebsiteURL("example.com"))
	assert.Equal(t, "https://www.example.com", NormalizeWebsiteURL("www.example.com"))
	assert.Equal(t, "http://x.com", NormalizeWebsiteURL("http://x.com/"))
	assert.Equal(t, "https://example.com/path", NormalizeWebsiteURL("https://example.com/path"))
	assert.Equal(t, "", NormalizeWebsiteURL("N/A"))
	assert.Equal(t, "", NormalizeWebsiteURL("na"))
	assert.Equal(t, "", NormalizeWebsiteURL(""))
	assert.Equal(t, "", NormalizeWebsiteURL("   "))
	assert.Equal(t, "", NormalizeWebsiteURL("notadomain"))
	assert.Equal(t, "", NormalizeWebsiteURL("ftp://example.com"))
}

func TestBuildAddressLine1(t *testing.T) {
	record := Record{
		"Tipo_vialidad": "CALLE",
		"Calle":         "BENITO JUAREZ",
		"Num_Exterior":  "123",
		"Num_Interior":  "4",
		"Colonia":       "CENTRO",
		"CP":            "22000",
	}
	assert.Equal(t, "CALLE BENITO JUAREZ 123 Int. 4, Col. CENTRO, CP 22000", BuildAddressLine1(record))
}

func TestBuildAddressLine1_PartialFields(t *testing.T) {
	assert.Equal(t, "Col. CENTRO", BuildAddressLine1(Record{"Colonia": "CENTRO"}))
	assert.Equal(t, "CALLE JUAREZ, CP 22010", BuildAddressLine1(Record{
		"Tipo_vialidad": "CALLE",
		"Calle":         "JUAREZ",
		"CP":            "22010",
	}))
	assert.Equal(t, "", BuildAddressLine1(Record{}))
	assert.Equal(t, "", BuildAddressLine1(Record{"Calle": "   "}))
}

func TestParseLatLng(t *testing.T) {
	lat, lng := ParseLatLng(Record{"Latitud": 32.51, "Longitud": "-117.03"})
	assert.NotNil(t, lat)
	assert.NotNil(t, lng)
	assert.InDelta(t, 32.51, *lat, 0.0001)
	assert.InDelta(t, -117.03, *lng, 0.0001)

	lat, lng = ParseLatLng(Record{"Latitud": "not-a-number"})
	assert.Nil(t, lat)
	assert.Nil(t, lng)
}

func TestBuildGoogleMapsURL_CoordinatesWin(t *testing.T) {
	lat, lng := 32.5, -117.0
	got := BuildGoogleMapsURL(MapsQueryParams{Lat: &lat, Lng: &lng, Name: "Ignored"})
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=32.5%2C-117", got)
}

func TestBuildGoogleMapsURL_TextualFallback(t *testing.T) {
	got := BuildGoogleMapsURL(MapsQueryParams{
		Name:         "Dental Uno",
		AddressLine1: "Col. CENTRO",
		City:         "Tijuana",
		State:        "BC",
	})
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=Dental+Uno%2C+Col.+CENTRO%2C+Tijuana%2C+BC", got)
}

func TestBuildGoogleMapsURL_DefaultLocality(t *testing.T) {
	got := BuildGoogleMapsURL(MapsQueryParams{})
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=Tijuana%2C+BC", got)
}

func TestToClinicRow_NameFallbacks(t *testing.T) {
	row := ToClinicRow(Record{"Nombre": "Clínica Dental Río"})
	assert.Equal(t, "Clínica Dental Río", row.Name)
	assert.Equal(t, "clinica-dental-rio", row.Slug)

	row = ToClinicRow(Record{"Denominacion": "DENTAL DEL NORTE"})
	assert.Equal(t, "DENTAL DEL NORTE", row.Name)

	row = ToClinicRow(Record{"Id": "987"})
	assert.Equal(t, "DENUE clinic 987", row.Name)
	assert.Equal(t, "denue-clinic-987", row.Slug)

	row = ToClinicRow(Record{})
	assert.Equal(t, "DENUE clinic", row.Name)
}

func TestToClinicRow_Defaults(t *testing.T) {
	row := ToClinicRow(Record{"Nombre": "Dental Uno", "Telefono": "664 123 4567"})
	assert.Equal(t, "Tijuana", row.City)
	assert.Equal(t, "BC", row.State)
	assert.Equal(t, "MX", row.Country)
	assert.Equal(t, "664 123 4567", row.Phone)
	assert.Empty(t, row.Whatsapp)
	assert.Empty(t, row.YelpURL)
	assert.NotEmpty(t, row.GoogleMapsURL)
}

func TestToClinicRows_SortsByNumericID(t *testing.T) {
	rows := ToClinicRows([]Record{
		{"Id": "30", "Nombre": "Charlie"},
		{"Nombre": "NoID"},
		{"Id": "2", "Nombre": "Alpha"},
	})
	assert.Equal(t, "Alpha", rows[0].Name)
	assert.Equal(t, "Charlie", rows[1].Name)
	assert.Equal(t, "NoID", rows[2].Name)
}

func TestToClinicRows_SlugCollisions(t *testing.T) {
	rows := ToClinicRows([]Record{
		{"Id": "1", "Nombre": "Dental Care"},
		{"Id": "2", "Nombre": "Dental Care"},
		{"Id": "3", "Nombre": "Dental Care"},
	})
	assert.Equal(t, "dental-care", rows[0].Slug)
	assert.Equal(t, "dental-care-2", rows[1].Slug)
	assert.Equal(t, "dental-care-3", rows[2].Slug)

	seen := map[string]bool{}
	for _, row := range rows {
		assert.NotEmpty(t, row.Slug)
		assert.False(t, seen[row.Slug], "slug %q assigned twice", row.Slug)
		seen[row.Slug] = true
	}
}

func TestToClinicRows_CollisionPrefersExternalID(t *testing.T) {
	// The colliding record takes base-<id> when that slug is free.
	rows := ToClinicRows([]Record{
		{"Id": "5", "Nombre": "Smile"},
		{"Id": "77", "Nombre": "Smile"},
	})
	assert.Equal(t, "smile", rows[0].Slug)
	assert.Equal(t, "smile-77", rows[1].Slug)
}

func TestToClinicRows_CollisionNumericSuffixWithoutID(t *testing.T) {
	rows := ToClinicRows([]Record{
		{"Nombre": "Smile"},
		{"Nombre": "Smile"},
	})
	assert.Equal(t, "smile", rows[0].Slug)
	assert.Equal(t, "smile-2", rows[1].Slug)
}
