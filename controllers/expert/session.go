package expert

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/mindmatch/therapy-api/db"
	"github.com/mindmatch/therapy-api/models"
)

// ListSessions returns the expert's own sessions, optionally by status
func ListSessions(c *fiber.Ctx) error {
	expertID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	query := db.DB.Preload("Client").Where("expert_id = ?", expertID)
	if status := c.Query("status"); status != "" {
		if !models.IsSessionStatus(status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unknown session status",
			})
		}
		query = query.Where("status = ?", status)
	}

	var sessions []models.Session
	if err := query.Order("start_time desc").Find(&sessions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch sessions",
		})
	}

	for i := range sessions {
		sessions[i].Client.Sanitize()
	}

	return c.JSON(fiber.Map{
		"sessions": sessions,
	})
}

// UpdateSessionStatus marks an owned session completed or cancelled
func UpdateSessionStatus(c *fiber.Ctx) error {
	expertID, ok := c.Locals("userID").(uint)
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

	type StatusInput struct {
		Status string `json:"status"`
	}

	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if !models.IsSessionStatus(input.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown session status",
		})
	}

	var session models.Session
	if err := db.DB.Where("id = ? AND expert_id = ?", id, expertID).First(&session).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}

	if err := session.UpdateStatus(db.DB, models.SessionStatus(input.Status)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(session)
}
