package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-directory/internal/database"
	"clinic-directory/internal/models"
)

const (
	DefaultLimit        = 10
	MaxLimit            = 100
	DefaultSortOrder    = "asc"
	DefaultClinicSortBy = "created_at"
)

// AllowedClinicSortByFields defines the fields by which the public
// clinic list can be sorted.
var AllowedClinicSortByFields = map[string]bool{
	"name":          true,
	"created_at":    true,
	"updated_at":    true,
	"featured_rank": true,
}

// ListClinics godoc
// @Summary List published clinics
// @Description Get a paginated list of published clinics.
// @Tags clinics
// @Produce  json
// @Param   limit      query  int     false  "Page size (max 100)"
// @Param   offset     query  int     false  "Offset"
// @Param   sort_by    query  string  false  "Sort field (name, created_at, updated_at, featured_rank)"
// @Param   sort_order query  string  false  "asc or desc"
// @Success 200 {array} models.Clinic "Successfully retrieved list of clinics"
// @Failure 400 {object} models.APIError "Bad Request (see 'code' in response for specifics like VALIDATION_ERROR)"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /clinics [get]
func ListClinics(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", strconv.Itoa(DefaultLimit))
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid limit parameter: not a number.", gin.H{"limit": limitStr})
		return
	}
	if limit <= 0 {
		limit = DefaultLimit
	} else if limit > MaxLimit {
		limit = MaxLimit
	}

	offsetStr := c.DefaultQuery("offset", "0")
	offset, err := strconv.Atoi(offsetStr)
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid offset parameter: not a number.", gin.H{"offset": offsetStr})
		return
	}
	if offset < 0 {
		offset = 0
	}

	sortBy := c.DefaultQuery("sort_by", DefaultClinicSortBy)
	if _, isValid := AllowedClinicSortByFields[sortBy]; !isValid {
		allowedFields := make([]string, 0, len(AllowedClinicSortByFields))
		for k := range AllowedClinicSortByFields {
			allowedFields = append(allowedFields, k)
		}
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid sort_by field for clinics.", gin.H{"field": sortBy, "allowed": allowedFields})
		return
	}

	sortOrder := strings.ToLower(c.DefaultQuery("sort_order", DefaultSortOrder))
	if sortOrder != "asc" && sortOrder != "desc" {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid sort_order value. Must be 'asc' or 'desc'.", gin.H{"value": c.Query("sort_order")})
		return
	}

	db := database.GetDB()
	var clinics []models.Clinic
	query := db.Where("is_published = ?", true).
		Order(sortBy + " " + sortOrder).
		Limit(limit).
		Offset(offset)
	if err := query.Find(&clinics).Error; err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to list clinics", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, clinics)
}

// GetClinic godoc
// @Summary Get a published clinic by slug
// @Description Get detailed information about a published clinic using its slug.
// @Tags clinics
// @Produce  json
// @Param   slug   path   string  true  "Clinic slug"
// @Success 200 {object} models.Clinic "Successfully retrieved clinic"
// @Failure 404 {object} models.APIError "Not Found (see 'code' in response for specifics like CLINIC_NOT_FOUND)"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /clinics/{slug} [get]
func GetClinic(c *gin.Context) {
	clinicSlug := c.Param("slug")

	db := database.GetDB()
	var clinic models.Clinic
	if err := db.First(&clinic, "slug = ? AND is_published = ?", clinicSlug, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondWithError(c, http.StatusNotFound, models.ErrorCodeClinicNotFound, "Clinic not found", gin.H{"slug": clinicSlug})
		} else {
			RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to get clinic", nil)
		}
		return
	}
	RespondWithSuccess(c, http.StatusOK, clinic)
}
