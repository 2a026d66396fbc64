// Package importer validates clinic import rows and applies them to the
// store as an idempotent, transactional upsert keyed by slug.
package importer

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"clinic-directory/internal/models"
	"clinic-directory/internal/slug"
)

// RowError records one validation failure with its 1-based row index.
type RowError struct {
	RowIndex int    `json:"rowIndex"`
	Message  string `json:"message"`
}

// Result is the outcome of one import call. The shape is identical for
// dry runs; counts then report what would have happened.
type Result struct {
	CreatedCount int        `json:"createdCount"`
	UpdatedCount int        `json:"updatedCount"`
	ErrorCount   int        `json:"errorCount"`
	Errors       []RowError `json:"errors"`
}

func isValidHTTPURL(value string) bool {
	parsed, err := url.Parse(value)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func trimmed(value string) string {
	return strings.TrimSpace(value)
}

// NormalizeRows validates and normalizes import rows. All errors for a
// row are collected; a row with any error is excluded entirely. A slug
// seen twice within the batch is an error on the second occurrence.
func NormalizeRows(rows []models.ClinicImportRow) ([]models.ClinicImportRow, []RowError) {
	validRows := []models.ClinicImportRow{}
	errors := []RowError{}
	seenSlugs := make(map[string]bool)

	for index, inputRow := range rows {
		rowIndex := index + 1
		var rowErrors []string

		name := trimmed(inputRow.Name)
		if name == "" {
			rowErrors = append(rowErrors, "Name is required.")
		}

		slugSource := trimmed(inputRow.Slug)
		if slugSource == "" {
			slugSource = name
		}
		rowSlug := slug.Make(slugSource)
		if rowSlug == "" {
			rowErrors = append(rowErrors, "Slug is required and could not be generated.")
		}

		if rowSlug != "" && seenSlugs[rowSlug] {
			rowErrors = append(rowErrors, fmt.Sprintf("Duplicate slug %q in import payload.", rowSlug))
		}

		row := models.ClinicImportRow{
			Name:          name,
			Slug:          rowSlug,
			AddressLine1:  trimmed(inputRow.AddressLine1),
			City:          trimmed(inputRow.City),
			State:         trimmed(inputRow.State),
			Country:       trimmed(inputRow.Country),
			Phone:         trimmed(inputRow.Phone),
			Whatsapp:      trimmed(inputRow.Whatsapp),
			WebsiteURL:    trimmed(inputRow.WebsiteURL),
			GoogleMapsURL: trimmed(inputRow.GoogleMapsURL),
			YelpURL:       trimmed(inputRow.YelpURL),
		}

		urlFields := []struct {
			name  string
			value string
		}{
			{"websiteUrl", row.WebsiteURL},
			{"googleMapsUrl", row.GoogleMapsURL},
			{"yelpUrl", row.YelpURL},
		}
		for _, field := range urlFields {
			if field.value != "" && !isValidHTTPURL(field.value) {
				rowErrors = append(rowErrors, fmt.Sprintf("%s must be a valid URL.", field.name))
			}
		}

		if len(rowErrors) > 0 {
			for _, message := range rowErrors {
				errors = append(errors, RowError{RowIndex: rowIndex, Message: message})
			}
			continue
		}

		seenSlugs[rowSlug] = true
		validRows = append(validRows, row)
	}

	return validRows, errors
}

// Importer applies validated rows against the clinic store.
type Importer struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Importer {
	return &Importer{db: db}
}

// updateColumns builds the column set written for one row. Optional
// fields are only written when the row provides them, so an update
// never blanks fields the import did not mention.
func updateColumns(row models.ClinicImportRow) map[string]interface{} {
	columns := map[string]interface{}{
		"name": row.Name,
		"slug": row.Slug,
	}
	optional := map[string]string{
		"address_line1":   row.AddressLine1,
		"city":            row.City,
		"state":           row.State,
		"country":         row.Country,
		"phone":           row.Phone,
		"whatsapp":        row.Whatsapp,
		"website_url":     row.WebsiteURL,
		"google_maps_url": row.GoogleMapsURL,
		"yelp_url":        row.YelpURL,
	}
	for column, value := range optional {
		if value != "" {
			columns[column] = value
		}
	}
	return columns
}

// Import validates rows, classifies each valid row as a create or an
// update by slug membership, and, unless dryRun is set, upserts all
// valid rows inside a single transaction.
func (i *Importer) Import(ctx context.Context, dryRun bool, rows []models.ClinicImportRow) (Result, error) {
	validRows, rowErrors := NormalizeRows(rows)

	slugs := make([]string, len(validRows))
	for idx, row := range validRows {
		slugs[idx] = row.Slug
	}

	existingSlugs := make(map[string]bool)
	if len(slugs) > 0 {
		var existing []string
		if err := i.db.WithContext(ctx).Model(&models.Clinic{}).
			Where("slug IN ?", slugs).
			Pluck("slug", &existing).Error; err != nil {
			return Result{}, fmt.Errorf("looking up existing clinics: %w", err)
		}
		for _, s := range existing {
			existingSlugs[s] = true
		}
	}

	result := Result{Errors: rowErrors, ErrorCount: len(rowErrors)}
	for _, row := range validRows {
		if existingSlugs[row.Slug] {
			result.UpdatedCount++
		} else {
			result.CreatedCount++
		}
	}

	if dryRun || len(validRows) == 0 {
		return result, nil
	}

	err := i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range validRows {
			// Explicit upsert: update by the unique slug first, insert
			// when no row matched.
			res := tx.Model(&models.Clinic{}).
				Where("slug = ?", row.Slug).
				Updates(updateColumns(row))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				continue
			}

			clinic := models.Clinic{
				ID:            uuid.New(),
				Name:          row.Name,
				Slug:          row.Slug,
				AddressLine1:  row.AddressLine1,
				City:          row.City,
				State:         row.State,
				Country:       row.Country,
				Phone:         row.Phone,
				Whatsapp:      row.Whatsapp,
				WebsiteURL:    row.WebsiteURL,
				GoogleMapsURL: row.GoogleMapsURL,
				YelpURL:       row.YelpURL,
			}
			if err := tx.Create(&clinic).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("importing clinics: %w", err)
	}

	return result, nil
}
