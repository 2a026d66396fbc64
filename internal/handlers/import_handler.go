package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"clinic-directory/internal/database"
	"clinic-directory/internal/importer"
	"clinic-directory/internal/models"
)

// ImportClinics godoc
// @Summary Bulk import clinics
// @Description Validate and upsert clinic rows by slug. With dryRun the same validation and classification run but nothing is written.
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   import_request  body   models.ImportClinicsRequest  true  "Rows to import"
// @Success 200 {object} importer.Result "Import result with created/updated/error counts"
// @Failure 400 {object} models.APIError "Bad Request (see 'code' in response for specifics like VALIDATION_ERROR)"
// @Failure 409 {object} models.APIError "Conflict (unique constraint violation while importing - see 'code' for DUPLICATE_SLUG)"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /admin/import-clinics [post]
func ImportClinics(c *gin.Context) {
	var req models.ImportClinicsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}

	imp := importer.New(database.GetDB())
	result, err := imp.Import(c.Request.Context(), req.DryRun, req.Rows)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			RespondWithError(c, http.StatusConflict, models.ErrorCodeDuplicateSlug, "Import conflicted with a concurrent write. Retry the import.", nil)
			return
		}
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to import clinics.", nil)
		return
	}

	RespondWithSuccess(c, http.StatusOK, result)
}
