package client

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mindmatch/therapy-api/db"
	"github.com/mindmatch/therapy-api/models"
	"github.com/mindmatch/therapy-api/utils"
)

// GetAllExperts returns the expert directory with pagination and filters
func GetAllExperts(c *fiber.Ctx) error {
	var experts []models.Expert

	// Get pagination parameters
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	// Calculate offset
	offset := (page - 1) * limit

	query := db.DB.Model(&models.Expert{})

	if location := c.Query("location"); location != "" {
		query = query.Where("location = ?", location)
	}
	// Specialties and session types live in JSONB lists
	if specialty := c.Query("specialty"); specialty != "" {
		query = query.Where("specialties @> ?", fmt.Sprintf(`["%s"]`, specialty))
	}
	if sessionType := c.Query("session_type"); sessionType != "" {
		query = query.Where("session_types @> ?", fmt.Sprintf(`["%s"]`, sessionType))
	}
	if q := c.Query("q"); q != "" {
		searchQuery := fmt.Sprintf("%%%s%%", q)
		query = query.Where("name ILIKE ? OR bio ILIKE ?", searchQuery, searchQuery)
	}

	var count int64
	query.Count(&count)

	if err := query.Limit(limit).Offset(offset).Find(&experts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch experts",
		})
	}

	// Clean sensitive data
	for i := range experts {
		experts[i].Sanitize()
	}

	return c.JSON(fiber.Map{
		"experts": experts,
		"total":   count,
		"page":    page,
		"limit":   limit,
		"pages":   (int(count) + limit - 1) / limit,
	})
}

// GetExpertDetails returns one expert's public profile with availability
func GetExpertDetails(c *fiber.Ctx) error {
	id := c.Params("id")

	var expert models.Expert
	if err := db.DB.Preload("Availability").First(&expert, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Expert not found",
		})
	}

	expert.Sanitize()
	return c.JSON(expert)
}

// GetExpertAvailability returns every availability row for an expert,
// recurring and one-off alike
func GetExpertAvailability(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Expert not found",
		})
	}

	rows, err := utils.ListAvailability(uint(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch availability",
		})
	}

	return c.JSON(fiber.Map{
		"availability": rows,
	})
}

// GetAvailabilityWindows returns the flattened bookable windows for one day.
// A day without availability is an empty list, not an error.
func GetAvailabilityWindows(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Expert not found",
		})
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "date query parameter is required",
		})
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "date must be in YYYY-MM-DD format",
		})
	}

	windows, err := utils.WindowsForDate(uint(id), date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch availability",
		})
	}

	return c.JSON(fiber.Map{
		"windows": windows,
	})
}
