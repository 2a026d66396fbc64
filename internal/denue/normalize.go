package denue

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"clinic-directory/internal/slug"
)

// Defaults applied when the source record carries no locality data.
// DENUE crawls here are scoped to Tijuana, so the fallback is fixed.
const (
	DefaultCity    = "Tijuana"
	DefaultState   = "BC"
	DefaultCountry = "MX"
)

const mapsSearchURL = "https://www.google.com/maps/search/?api=1&query="

// ClinicRow is the canonical clinic shape produced by normalization.
// Empty string means the field is absent.
type ClinicRow struct {
	Name          string
	Slug          string
	AddressLine1  string
	City          string
	State         string
	Country       string
	Phone         string
	Whatsapp      string
	WebsiteURL    string
	GoogleMapsURL string
	YelpURL       string
}

func nonEmptyString(value interface{}) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func toNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err == nil {
			return parsed, true
		}
	}
	return 0, false
}

// RecordID extracts the DENUE Id as a string, whether the source sent
// it as a number or a string.
func RecordID(record Record) string {
	switch v := record["Id"].(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strings.TrimSpace(v)
	}
	return ""
}

var (
	schemeRe        = regexp.MustCompile(`(?i)^https?://`)
	notApplicableRe = regexp.MustCompile(`(?i)^(na|n/a)$`)
	multiSpaceRe    = regexp.MustCompile(`\s{2,}`)
	spaceCommaRe    = regexp.MustCompile(`\s+,`)
	doubleCommaRe   = regexp.MustCompile(`,\s*,+`)
	leadCommaRe     = regexp.MustCompile(`^,\s*`)
	trailCommaRe    = regexp.MustCompile(`,\s*$`)
)

// NormalizeWebsiteURL sanitizes a raw website value into an absolute
// http(s) URL, or "" when the value is unusable. Placeholder values
// ("na", "n/a") are rejected; bare domains get an https:// scheme; a
// bare root path collapses to scheme://host.
func NormalizeWebsiteURL(value string) string {
	raw := strings.TrimSpace(value)
	if raw == "" || notApplicableRe.MatchString(raw) {
		return ""
	}

	withScheme := raw
	if !schemeRe.MatchString(raw) {
		if strings.HasPrefix(raw, "www.") || strings.Contains(raw, ".") {
			withScheme = "https://" + raw
		} else {
			return ""
		}
	}

	parsed, err := url.Parse(withScheme)
	if err != nil {
		return ""
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return ""
	}
	if parsed.Host == "" {
		return ""
	}

	if (parsed.Path == "" || parsed.Path == "/") && parsed.RawQuery == "" && parsed.Fragment == "" {
		return scheme + "://" + strings.ToLower(parsed.Host)
	}
	return parsed.String()
}

// BuildAddressLine1 assembles street, colony and postal code segments
// into one display line, or "" when nothing is present.
func BuildAddressLine1(record Record) string {
	tipoVialidad := nonEmptyString(record["Tipo_vialidad"])
	calle := nonEmptyString(record["Calle"])
	numExterior := nonEmptyString(record["Num_Exterior"])
	numInterior := nonEmptyString(record["Num_Interior"])
	colonia := nonEmptyString(record["Colonia"])
	cp := nonEmptyString(record["CP"])

	var streetParts []string
	for _, part := range []string{tipoVialidad, calle, numExterior} {
		if part != "" {
			streetParts = append(streetParts, part)
		}
	}
	if numInterior != "" {
		streetParts = append(streetParts, "Int. "+numInterior)
	}

	var segments []string
	if len(streetParts) > 0 {
		segments = append(segments, strings.Join(streetParts, " "))
	}
	if colonia != "" {
		segments = append(segments, "Col. "+colonia)
	}
	if cp != "" {
		segments = append(segments, "CP "+cp)
	}

	address := strings.Join(segments, ", ")
	address = multiSpaceRe.ReplaceAllString(address, " ")
	address = spaceCommaRe.ReplaceAllString(address, ",")
	address = doubleCommaRe.ReplaceAllString(address, ", ")
	address = leadCommaRe.ReplaceAllString(address, "")
	address = trailCommaRe.ReplaceAllString(address, "")
	return strings.TrimSpace(address)
}

// ParseLatLng extracts finite coordinates when the record carries them
// as numbers or numeric strings.
func ParseLatLng(record Record) (lat, lng *float64) {
	if v, ok := toNumber(record["Latitud"]); ok {
		lat = &v
	}
	if v, ok := toNumber(record["Longitud"]); ok {
		lng = &v
	}
	return lat, lng
}

// MapsQueryParams feed BuildGoogleMapsURL. Coordinates win over the
// textual fallback when both are present.
type MapsQueryParams struct {
	Lat          *float64
	Lng          *float64
	Name         string
	AddressLine1 string
	City         string
	State        string
}

// BuildGoogleMapsURL produces a Google Maps search link from
// coordinates, or from a composed textual query when they are missing.
func BuildGoogleMapsURL(p MapsQueryParams) string {
	var query string
	if p.Lat != nil && p.Lng != nil {
		query = strconv.FormatFloat(*p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(*p.Lng, 'f', -1, 64)
	} else {
		var parts []string
		for _, part := range []string{p.Name, p.AddressLine1, p.City, p.State} {
			if part != "" {
				parts = append(parts, part)
			}
		}
		query = strings.Join(parts, ", ")
		if query == "" {
			query = "Tijuana, BC"
		}
	}
	return mapsSearchURL + url.QueryEscape(query)
}

// ToClinicRow normalizes one raw DENUE record into a canonical row.
// Slug uniqueness across a batch is handled by ToClinicRows.
func ToClinicRow(record Record) ClinicRow {
	id := RecordID(record)
	name := nonEmptyString(record["Nombre"])
	if name == "" {
		name = nonEmptyString(record["Denominacion"])
	}
	if name == "" {
		if id != "" {
			name = fmt.Sprintf("DENUE clinic %s", id)
		} else {
			name = "DENUE clinic"
		}
	}

	rowSlug := slug.Make(name)
	if rowSlug == "" {
		rowSlug = "clinic"
	}

	addressLine1 := BuildAddressLine1(record)
	lat, lng := ParseLatLng(record)

	return ClinicRow{
		Name:         name,
		Slug:         rowSlug,
		AddressLine1: addressLine1,
		City:         DefaultCity,
		State:        DefaultState,
		Country:      DefaultCountry,
		Phone:        nonEmptyString(record["Telefono"]),
		WebsiteURL:   NormalizeWebsiteURL(nonEmptyString(record["Sitio_internet"])),
		GoogleMapsURL: BuildGoogleMapsURL(MapsQueryParams{
			Lat:          lat,
			Lng:          lng,
			Name:         name,
			AddressLine1: addressLine1,
			City:         DefaultCity,
			State:        DefaultState,
		}),
	}
}

// compareRecords orders records by numeric Id ascending; a record with
// an Id sorts before one without; name breaks the remaining ties.
func compareRecords(a, b Record) bool {
	idA, okA := toNumber(a["Id"])
	idB, okB := toNumber(b["Id"])

	if okA && okB {
		return idA < idB
	}
	if okA {
		return true
	}
	if okB {
		return false
	}
	return nonEmptyString(a["Nombre"]) < nonEmptyString(b["Nombre"])
}

// ToClinicRows normalizes a batch deterministically and resolves slug
// collisions: base slug, then base-<id>, then base-<n> for the smallest
// unused n >= 2. Every returned slug is unique within the batch.
func ToClinicRows(records []Record) []ClinicRow {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareRecords(sorted[i], sorted[j])
	})

	rows := make([]ClinicRow, len(sorted))
	usedSlugs := make(map[string]bool)
	baseCounters := make(map[string]int)

	for i, record := range sorted {
		row := ToClinicRow(record)
		baseSlug := row.Slug

		uniqueSlug := baseSlug
		if usedSlugs[uniqueSlug] {
			if id := RecordID(record); id != "" {
				uniqueSlug = baseSlug + "-" + id
			}

			if usedSlugs[uniqueSlug] {
				counter := baseCounters[baseSlug]
				if counter == 0 {
					counter = 1
				}
				counter++
				for usedSlugs[baseSlug+"-"+strconv.Itoa(counter)] {
					counter++
				}
				uniqueSlug = baseSlug + "-" + strconv.Itoa(counter)
				baseCounters[baseSlug] = counter
			}
		}

		usedSlugs[uniqueSlug] = true
		if _, ok := baseCounters[baseSlug]; !ok {
			baseCounters[baseSlug] = 1
		}

		row.Slug = uniqueSlug
		rows[i] = row
	}

	return rows
}
