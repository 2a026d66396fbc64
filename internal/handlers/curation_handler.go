package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-directory/internal/curation"
	"clinic-directory/internal/database"
	"clinic-directory/internal/models"
)

// BulkUpdateClinics godoc
// @Summary Apply a bulk curation action to clinics
// @Description Publish, unpublish, feature, unfeature or assign featured ranks to a set of clinics in one transaction.
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   bulk_update  body   models.BulkUpdateRequest  true  "Clinic ids and action"
// @Success 200 {object} curation.Result "Number of clinics updated"
// @Failure 400 {object} models.APIError "Bad Request (see 'code' in response for specifics like VALIDATION_ERROR, VALUE_OUT_OF_RANGE)"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /admin/curation/bulk-update [post]
func BulkUpdateClinics(c *gin.Context) {
	var req models.BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}

	// startingRank is required exactly when ranks are assigned from a
	// caller-chosen starting point.
	if req.Action == curation.ActionAssignFeaturedRanks && req.Mode == curation.ModeStartAt && req.StartingRank == nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "startingRank is required when mode is start_at.", gin.H{"field": "startingRank"})
		return
	}

	svc := curation.New(database.GetDB())
	result, err := svc.BulkUpdate(c.Request.Context(), curation.Input{
		ClinicIDs:    req.ClinicIDs,
		Action:       req.Action,
		Mode:         req.Mode,
		StartingRank: req.StartingRank,
	})
	if err != nil {
		if errors.Is(err, curation.ErrInvalidStartingRank) {
			RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValueOutOfRange, err.Error(), nil)
			return
		}
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to update clinics.", nil)
		return
	}

	RespondWithSuccess(c, http.StatusOK, result)
}
