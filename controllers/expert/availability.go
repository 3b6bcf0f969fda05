package expert

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mindmatch/therapy-api/db"
	"github.com/mindmatch/therapy-api/models"
)

// ListAvailability returns the expert's own availability rows
func ListAvailability(c *fiber.Ctx) error {
	expertID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var rows []models.ExpertAvailability
	if err := db.DB.Where("expert_id = ?", expertID).Order("id").Find(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch availability",
		})
	}

	return c.JSON(fiber.Map{
		"availability": rows,
	})
}

// CreateAvailability publishes a new recurring or one-off availability row
func CreateAvailability(c *fiber.Ctx) error {
	expertID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	row := new(models.ExpertAvailability)
	if err := c.BodyParser(row); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	row.ExpertID = expertID
	if err := row.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := db.DB.Create(row).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create availability",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(row)
}

// UpdateAvailability edits an owned availability row
func UpdateAvailability(c *fiber.Ctx) error {
	expertID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid availability ID",
		})
	}

	// Parsing the body straight into the loaded row would let it overwrite
	// the primary key, so edits go through a whitelisted input instead.
	type UpdateInput struct {
		DayOfWeek *models.DayOfWeek `json:"day_of_week"`
		Date      *time.Time        `json:"date"`
		Slots     *models.SlotList  `json:"slots"`
		Recurring *bool             `json:"recurring"`
		Timezone  *string           `json:"timezone"`
	}

	input := new(UpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var row models.ExpertAvailability
	if err := db.DB.Where("id = ? AND expert_id = ?", id, expertID).First(&row).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Availability not found",
		})
	}

	if input.Recurring != nil && *input.Recurring != row.Recurring {
		row.Recurring = *input.Recurring
		if row.Recurring {
			row.Date = nil
		} else {
			row.DayOfWeek = nil
		}
	}
	if input.DayOfWeek != nil {
		row.DayOfWeek = input.DayOfWeek
	}
	if input.Date != nil {
		row.Date = input.Date
	}
	if input.Slots != nil {
		row.Slots = *input.Slots
	}
	if input.Timezone != nil {
		row.Timezone = *input.Timezone
	}

	if err := row.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := db.DB.Save(&row).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update availability",
		})
	}

	return c.JSON(row)
}

// DeleteAvailability removes an owned availability row
func DeleteAvailability(c *fiber.Ctx) error {
	expertID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid availability ID",
		})
	}

	result := db.DB.Where("id = ? AND expert_id = ?", id, expertID).Delete(&models.ExpertAvailability{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete availability",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Availability not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Availability deleted successfully",
	})
}
