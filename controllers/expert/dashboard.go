package expert

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mindmatch/therapy-api/db"
	"github.com/mindmatch/therapy-api/models"
)

// GetDashboardOverview returns request and session counts for the expert
func GetDashboardOverview(c *fiber.Ctx) error {
	expertID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var statistics struct {
		TotalRequests    int64     `json:"total_requests"`
		PendingCount     int64     `json:"pending_count"`
		AcceptedCount    int64     `json:"accepted_count"`
		DeclinedCount    int64     `json:"declined_count"`
		RescheduledCount int64     `json:"rescheduled_count"`
		TotalSessions    int64     `json:"total_sessions"`
		ScheduledCount   int64     `json:"scheduled_count"`
		CompletedCount   int64     `json:"completed_count"`
		CancelledCount   int64     `json:"cancelled_count"`
		LastUpdated      time.Time `json:"last_updated"`
	}

	countRequests := func(status models.RequestStatus) int64 {
		var n int64
		db.DB.Model(&models.SessionRequest{}).
			Where("expert_id = ? AND status = ?", expertID, status).Count(&n)
		return n
	}
	countSessions := func(status models.SessionStatus) int64 {
		var n int64
		db.DB.Model(&models.Session{}).
			Where("expert_id = ? AND status = ?", expertID, status).Count(&n)
		return n
	}

	db.DB.Model(&models.SessionRequest{}).Where("expert_id = ?", expertID).Count(&statistics.TotalRequests)
	statistics.PendingCount = countRequests(models.RequestPending)
	statistics.AcceptedCount = countRequests(models.RequestAccepted)
	statistics.DeclinedCount = countRequests(models.RequestDeclined)
	statistics.RescheduledCount = countRequests(models.RequestRescheduled)

	db.DB.Model(&models.Session{}).Where("expert_id = ?", expertID).Count(&statistics.TotalSessions)
	statistics.ScheduledCount = countSessions(models.StatusScheduled)
	statistics.CompletedCount = countSessions(models.StatusCompleted)
	statistics.CancelledCount = countSessions(models.StatusCancelled)

	statistics.LastUpdated = time.Now()

	return c.JSON(statistics)
}

// GetUpcomingSessions returns the next scheduled sessions for the expert
func GetUpcomingSessions(c *fiber.Ctx) error {
	expertID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	limit := 5 // Default limit
	if c.Query("limit") != "" {
		parsedLimit := c.QueryInt("limit")
		if parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	var sessions []models.Session
	if err := db.DB.Preload("Client").
		Where("expert_id = ? AND status = ? AND start_time > ?", expertID, models.StatusScheduled, time.Now()).
		Order("start_time asc").
		Limit(limit).
		Find(&sessions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch upcoming sessions",
		})
	}

	for i := range sessions {
		sessions[i].Client.Sanitize()
	}

	return c.JSON(fiber.Map{
		"sessions": sessions,
	})
}
