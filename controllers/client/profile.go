package client

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/mindmatch/therapy-api/db"
	"github.com/mindmatch/therapy-api/models"
	"github.com/mindmatch/therapy-api/utils"
)

// UpdateOnboarding stores the onboarding sub-document and marks it complete
func UpdateOnboarding(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	onboarding := new(models.Onboarding)
	if err := c.BodyParser(onboarding); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	onboarding.Completed = true

	var client models.Client
	if err := db.DB.First(&client, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Account not found",
		})
	}

	client.Onboarding = *onboarding
	if err := db.DB.Save(&client).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save onboarding",
		})
	}

	client.Sanitize()
	return c.JSON(client)
}

// UploadProfilePicture stores the client's avatar
func UploadProfilePicture(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	file, err := c.FormFile("picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "picture file is required",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}
	defer src.Close()

	url, err := utils.UploadProfilePicture(src, fmt.Sprintf("client_%d", userID), "clients")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload picture",
		})
	}

	var client models.Client
	if err := db.DB.First(&client, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Account not found",
		})
	}

	client.ProfilePicture = url
	if err := db.DB.Save(&client).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save profile picture",
		})
	}

	client.Sanitize()
	return c.JSON(client)
}
