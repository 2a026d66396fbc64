// Package curation applies bulk moderation state transitions to clinic
// listings. All transitions run inside one transaction and never leave
// a clinic featured while unpublished.
package curation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"clinic-directory/internal/models"
)

const (
	ActionPublish             = "publish"
	ActionUnpublish           = "unpublish"
	ActionFeature             = "feature"
	ActionUnfeature           = "unfeature"
	ActionAssignFeaturedRanks = "assign_featured_ranks"

	ModeAppend  = "append"
	ModeStartAt = "start_at"
)

// ErrInvalidStartingRank fails the whole operation before any write.
var ErrInvalidStartingRank = errors.New("startingRank must be a non-negative integer for start_at mode")

// Input is one bulk-update request. For assign_featured_ranks the id
// order determines the assigned rank order.
type Input struct {
	ClinicIDs    []string
	Action       string
	Mode         string
	StartingRank *int
}

// Result reports how many clinic rows the operation actually touched.
type Result struct {
	Updated int    `json:"updated"`
	Message string `json:"message"`
}

// Service runs bulk curation updates against the clinic store.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// uniqueClinicIDs drops blank entries and duplicates while preserving
// the caller's order.
func uniqueClinicIDs(ids []string) []string {
	seen := make(map[string]bool)
	deduped := make([]string, 0, len(ids))

	for _, id := range ids {
		trimmedID := strings.TrimSpace(id)
		if trimmedID == "" || seen[trimmedID] {
			continue
		}
		seen[trimmedID] = true
		deduped = append(deduped, trimmedID)
	}

	return deduped
}

// assignFeaturedRanks gives each id a strictly increasing rank in the
// caller-supplied order. The append starting point is read once, before
// any write in this call; ranks stay monotonic because the counter is
// local. Featuring force-publishes.
func assignFeaturedRanks(tx *gorm.DB, clinicIDs []string, mode string, startingRank *int) (int, error) {
	var currentRank int

	if mode == ModeAppend {
		var maxRank sql.NullInt64
		row := tx.Model(&models.Clinic{}).
			Where("is_featured = ? AND featured_rank IS NOT NULL", true).
			Select("MAX(featured_rank)").
			Row()
		if err := row.Scan(&maxRank); err != nil {
			return 0, err
		}
		currentRank = 1
		if maxRank.Valid {
			currentRank = int(maxRank.Int64) + 1
		}
	} else {
		if startingRank == nil || *startingRank < 0 {
			return 0, ErrInvalidStartingRank
		}
		currentRank = *startingRank
	}

	updated := 0
	for _, clinicID := range clinicIDs {
		res := tx.Model(&models.Clinic{}).
			Where("id = ?", clinicID).
			Updates(map[string]interface{}{
				"is_featured":   true,
				"is_published":  true,
				"featured_rank": currentRank,
			})
		if res.Error != nil {
			return 0, res.Error
		}
		updated += int(res.RowsAffected)
		currentRank++
	}

	return updated, nil
}

// BulkUpdate applies one curation action to a set of clinic ids inside
// a single transaction. An empty id set short-circuits without opening
// a transaction. Updated counts rows actually matched, which may be
// less than the requested ids when some no longer exist.
func (s *Service) BulkUpdate(ctx context.Context, input Input) (Result, error) {
	clinicIDs := uniqueClinicIDs(input.ClinicIDs)

	if len(clinicIDs) == 0 {
		return Result{Updated: 0, Message: "No clinics selected."}, nil
	}

	var result Result
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch input.Action {
		case ActionPublish:
			res := tx.Model(&models.Clinic{}).
				Where("id IN ?", clinicIDs).
				Updates(map[string]interface{}{"is_published": true})
			if res.Error != nil {
				return res.Error
			}
			result = Result{
				Updated: int(res.RowsAffected),
				Message: fmt.Sprintf("Published %d clinics.", res.RowsAffected),
			}

		case ActionUnpublish:
			// Unpublishing always clears featuring: a clinic cannot be
			// featured while unpublished.
			res := tx.Model(&models.Clinic{}).
				Where("id IN ?", clinicIDs).
				Updates(map[string]interface{}{
					"is_published":  false,
					"is_featured":   false,
					"featured_rank": nil,
				})
			if res.Error != nil {
				return res.Error
			}
			result = Result{
				Updated: int(res.RowsAffected),
				Message: fmt.Sprintf("Unpublished %d clinics.", res.RowsAffected),
			}

		case ActionFeature:
			res := tx.Model(&models.Clinic{}).
				Where("id IN ?", clinicIDs).
				Updates(map[string]interface{}{
					"is_published": true,
					"is_featured":  true,
				})
			if res.Error != nil {
				return res.Error
			}
			result = Result{
				Updated: int(res.RowsAffected),
				Message: fmt.Sprintf("Featured %d clinics.", res.RowsAffected),
			}

		case ActionUnfeature:
			res := tx.Model(&models.Clinic{}).
				Where("id IN ?", clinicIDs).
				Updates(map[string]interface{}{
					"is_featured":   false,
					"featured_rank": nil,
				})
			if res.Error != nil {
				return res.Error
			}
			result = Result{
				Updated: int(res.RowsAffected),
				Message: fmt.Sprintf("Unfeatured %d clinics.", res.RowsAffected),
			}

		case ActionAssignFeaturedRanks:
			mode := input.Mode
			if mode == "" {
				mode = ModeAppend
			}
			updated, err := assignFeaturedRanks(tx, clinicIDs, mode, input.StartingRank)
			if err != nil {
				return err
			}
			result = Result{
				Updated: updated,
				Message: fmt.Sprintf("Assigned featured ranks for %d clinics.", updated),
			}

		default:
			return fmt.Errorf("unknown curation action %q", input.Action)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	return result, nil
}
