package utils

import (
	"time"

	"github.com/mindmatch/therapy-api/models"
	"gorm.io/gorm"
)

// CheckNoOverlap reports whether the expert has no scheduled session
// overlapping the given window. Conflicting rows are locked so two
// simultaneous accepts cannot both pass.
func CheckNoOverlap(tx *gorm.DB, expertID uint, startTime, endTime time.Time) (bool, error) {
	var existing models.Session
	err := tx.Raw(`
		SELECT *
		FROM sessions
		WHERE expert_id = ? AND status = ? AND deleted_at IS NULL AND (
			(start_time < ? AND end_time > ?) OR
			(start_time >= ? AND start_time < ?)
		) FOR UPDATE
		LIMIT 1
	`, expertID, models.StatusScheduled, endTime, startTime, startTime, endTime).
		Scan(&existing).Error

	if err == nil && existing.ID != 0 {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
