package models

import (
	"time"

	"github.com/google/uuid"
)

// ValidCurationActions defines the allowed bulk curation actions.
var ValidCurationActions = map[string]bool{
	"publish":               true,
	"unpublish":             true,
	"feature":               true,
	"unfeature":             true,
	"assign_featured_ranks": true,
}

// Clinic represents a dental clinic listing.
// @Description Clinic represents a dental clinic listing in the directory.
type Clinic struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name          string    `json:"name" gorm:"type:varchar(255);not null"`
	Slug          string    `json:"slug" gorm:"type:varchar(255);not null;unique"`
	AddressLine1  string    `json:"address_line1,omitempty" gorm:"type:text"`
	City          string    `json:"city,omitempty" gorm:"type:varchar(100)"`
	State         string    `json:"state,omitempty" gorm:"type:varchar(100)"`
	Country       string    `json:"country,omitempty" gorm:"type:varchar(100)"`
	Phone         string    `json:"phone,omitempty" gorm:"type:varchar(50)"`
	Whatsapp      string    `json:"whatsapp,omitempty" gorm:"type:varchar(50)"`
	WebsiteURL    string    `json:"website_url,omitempty" gorm:"type:text"`
	GoogleMapsURL string    `json:"google_maps_url,omitempty" gorm:"type:text"`
	YelpURL       string    `json:"yelp_url,omitempty" gorm:"type:text"`
	IsPublished   bool      `json:"is_published" gorm:"default:false"`
	IsFeatured    bool      `json:"is_featured" gorm:"default:false"`
	FeaturedRank  *int      `json:"featured_rank,omitempty"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// RateLimitCounter tracks request counts per fixed time window.
// Rows are never updated after their window passes; stale rows are
// purged by a background job.
type RateLimitCounter struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Key         string    `json:"key" gorm:"type:varchar(255);not null;uniqueIndex:idx_rate_limit_window"`
	Action      string    `json:"action" gorm:"type:varchar(100);not null;uniqueIndex:idx_rate_limit_window"`
	WindowStart time.Time `json:"window_start" gorm:"not null;uniqueIndex:idx_rate_limit_window"`
	Count       int       `json:"count" gorm:"not null;default:0"`
}

// ClinicImportRow is one partially-typed row of an import payload.
// Any field may be blank; normalization and validation happen in the
// import engine before anything is persisted.
type ClinicImportRow struct {
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	AddressLine1  string `json:"addressLine1"`
	City          string `json:"city"`
	State         string `json:"state"`
	Country       string `json:"country"`
	Phone         string `json:"phone"`
	Whatsapp      string `json:"whatsapp"`
	WebsiteURL    string `json:"websiteUrl"`
	GoogleMapsURL string `json:"googleMapsUrl"`
	YelpURL       string `json:"yelpUrl"`
}

// ImportClinicsRequest defines the request payload for the bulk import endpoint.
type ImportClinicsRequest struct {
	DryRun bool              `json:"dryRun"`
	Rows   []ClinicImportRow `json:"rows" binding:"required"`
}

// BulkUpdateRequest defines the request payload for the curation bulk-update endpoint.
type BulkUpdateRequest struct {
	ClinicIDs    []string `json:"clinicIds" binding:"required,min=1,max=500,dive,min=1"`
	Action       string   `json:"action" binding:"required,oneof=publish unpublish feature unfeature assign_featured_ranks"`
	Mode         string   `json:"mode,omitempty" binding:"omitempty,oneof=append start_at"`
	StartingRank *int     `json:"startingRank,omitempty" binding:"omitempty,min=0"`
}
