package importer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"clinic-directory/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Clinic{}); err != nil {
		t.Fatalf("Failed to migrate test database schema: %v", err)
	}
	return db
}

func validRow(name, slug string) models.ClinicImportRow {
	return models.ClinicImportRow{Name: name, Slug: slug}
}

func TestNormalizeRows_RequiredName(t *testing.T) {
	rows, errs := NormalizeRows([]models.ClinicImportRow{{Slug: "some-slug"}})

	assert.Empty(t, rows)
	assert.Len(t, errs, 1)
	assert.Equal(t, 1, errs[0].RowIndex)
	assert.Contains(t, errs[0].Message, "Name is required.")
}

func TestNormalizeRows_SlugDerivedFromName(t *testing.T) {
	rows, errs := NormalizeRows([]models.ClinicImportRow{{Name: "Clínica Dental Río"}})

	assert.Empty(t, errs)
	assert.Len(t, rows, 1)
	assert.Equal(t, "clinica-dental-rio", rows[0].Slug)
}

func TestNormalizeRows_UnresolvableSlug(t *testing.T) {
	rows, errs := NormalizeRows([]models.ClinicImportRow{{Name: "???", Slug: "!!!"}})

	assert.Empty(t, rows)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "Slug is required and could not be generated.")
}

func TestNormalizeRows_DuplicateSlugInBatch(t *testing.T) {
	rows, errs := NormalizeRows([]models.ClinicImportRow{
		validRow("Dental Uno", "dental-uno"),
		validRow("Dental Uno Again", "dental-uno"),
	})

	// Only the second occurrence errors; the first stays valid.
	assert.Len(t, rows, 1)
	assert.Len(t, errs, 1)
	assert.Equal(t, 2, errs[0].RowIndex)
	assert.Contains(t, errs[0].Message, "Duplicate slug")
}

func TestNormalizeRows_InvalidURLs(t *testing.T) {
	rows, errs := NormalizeRows([]models.ClinicImportRow{{
		Name:       "Dental Uno",
		WebsiteURL: "not-a-url",
		YelpURL:    "ftp://yelp.example.com",
	}})

	assert.Empty(t, rows)
	assert.Len(t, errs, 2)
	messages := []string{errs[0].Message, errs[1].Message}
	assert.Contains(t, messages, "websiteUrl must be a valid URL.")
	assert.Contains(t, messages, "yelpUrl must be a valid URL.")
}

func TestNormalizeRows_AllErrorsCollectedPerRow(t *testing.T) {
	_, errs := NormalizeRows([]models.ClinicImportRow{{
		WebsiteURL: "not-a-url",
	}})

	// Missing name, unresolvable slug and a bad URL all reported for
	// the same row.
	assert.Len(t, errs, 3)
	for _, e := range errs {
		assert.Equal(t, 1, e.RowIndex)
	}
}

func TestImport_IdempotentUpsert(t *testing.T) {
	db := setupTestDB(t)
	imp := New(db)
	rows := []models.ClinicImportRow{
		validRow("Dental Uno", "dental-uno"),
		validRow("Dental Dos", "dental-dos"),
	}

	first, err := imp.Import(context.Background(), false, rows)
	assert.NoError(t, err)
	assert.Equal(t, 2, first.CreatedCount)
	assert.Equal(t, 0, first.UpdatedCount)
	assert.Equal(t, 0, first.ErrorCount)

	second, err := imp.Import(context.Background(), false, rows)
	assert.NoError(t, err)
	assert.Equal(t, 0, second.CreatedCount)
	assert.Equal(t, 2, second.UpdatedCount)

	var count int64
	db.Model(&models.Clinic{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestImport_DryRunWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	imp := New(db)

	result, err := imp.Import(context.Background(), true, []models.ClinicImportRow{
		validRow("Dental Uno", "dental-uno"),
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, result.CreatedCount)
	assert.Equal(t, 0, result.UpdatedCount)

	var count int64
	db.Model(&models.Clinic{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestImport_UpdatePreservesUnmentionedFields(t *testing.T) {
	db := setupTestDB(t)
	imp := New(db)

	_, err := imp.Import(context.Background(), false, []models.ClinicImportRow{{
		Name:  "Dental Uno",
		Slug:  "dental-uno",
		Phone: "664 123 4567",
	}})
	assert.NoError(t, err)

	// Re-import without a phone; the stored phone must survive.
	_, err = imp.Import(context.Background(), false, []models.ClinicImportRow{{
		Name: "Dental Uno Renamed",
		Slug: "dental-uno",
	}})
	assert.NoError(t, err)

	var clinic models.Clinic
	assert.NoError(t, db.First(&clinic, "slug = ?", "dental-uno").Error)
	assert.Equal(t, "Dental Uno Renamed", clinic.Name)
	assert.Equal(t, "664 123 4567", clinic.Phone)
}

func TestImport_InvalidRowsExcludedValidRowsProceed(t *testing.T) {
	db := setupTestDB(t)
	imp := New(db)

	result, err := imp.Import(context.Background(), false, []models.ClinicImportRow{
		validRow("Dental Uno", "dental-uno"),
		{Slug: "no-name"},
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, result.CreatedCount)
	assert.Equal(t, 1, result.ErrorCount)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].RowIndex)

	var count int64
	db.Model(&models.Clinic{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestImport_ResultShapeStableForDryRun(t *testing.T) {
	db := setupTestDB(t)
	imp := New(db)
	rows := []models.ClinicImportRow{
		validRow("Dental Uno", "dental-uno"),
		{Slug: "no-name"},
	}

	dry, err := imp.Import(context.Background(), true, rows)
	assert.NoError(t, err)
	wet, err := imp.Import(context.Background(), false, rows)
	assert.NoError(t, err)

	assert.Equal(t, dry.CreatedCount, wet.CreatedCount)
	assert.Equal(t, dry.UpdatedCount, wet.UpdatedCount)
	assert.Equal(t, dry.ErrorCount, wet.ErrorCount)
	assert.Equal(t, dry.Errors, wet.Errors)
}
