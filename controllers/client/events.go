package client

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/mindmatch/therapy-api/db"
	"github.com/mindmatch/therapy-api/models"
	"github.com/mindmatch/therapy-api/utils"
)

// ListEvents merges a client's confirmed sessions and pending requests into
// one chronologically descending feed. The status filter partitions on the
// two status vocabularies; a value in neither yields an empty feed.
func ListEvents(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	clientIDStr := c.Query("client_id")
	if clientIDStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "client_id query parameter is required",
		})
	}
	clientID, err := strconv.ParseUint(clientIDStr, 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid client_id",
		})
	}
	if uint(clientID) != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission to perform this action",
		})
	}

	statusFilter := c.Query("status")

	// Both reads must succeed; partial feeds are never returned.
	var sessions []models.Session
	if utils.WantSessions(statusFilter) {
		query := db.DB.Preload("Expert").Where("client_id = ?", userID)
		if models.IsSessionStatus(statusFilter) {
			query = query.Where("status = ?", statusFilter)
		}
		if err := query.Find(&sessions).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to fetch events",
			})
		}
	}

	var requests []models.SessionRequest
	if utils.WantRequests(statusFilter) {
		query := db.DB.Preload("Expert").Where("client_id = ?", userID)
		if models.IsRequestStatus(statusFilter) {
			query = query.Where("status = ?", statusFilter)
		}
		if err := query.Find(&requests).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to fetch events",
			})
		}
	}

	for i := range sessions {
		sessions[i].Expert.Sanitize()
	}
	for i := range requests {
		requests[i].Expert.Sanitize()
	}

	events := utils.MergeEvents(sessions, requests)
	if c.Query("deduped") == "true" {
		events = utils.DedupEvents(events)
	}

	return c.JSON(fiber.Map{
		"events": events,
	})
}

// SubmitFeedback records the client's rating for a completed session
func SubmitFeedback(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID",
		})
	}

	feedback := new(models.Feedback)
	if err := c.BodyParser(feedback); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	// Clamp rating to the 1.0–5.0 scale
	if feedback.Rating < 1.0 {
		feedback.Rating = 1.0
	} else if feedback.Rating > 5.0 {
		feedback.Rating = 5.0
	}

	var session models.Session
	if err := db.DB.Where("id = ? AND client_id = ?", id, userID).First(&session).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}

	if session.Status != models.StatusCompleted {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Feedback is only allowed on completed sessions",
		})
	}

	session.Feedback = feedback
	if err := db.DB.Save(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save feedback",
		})
	}

	return c.JSON(session)
}
