package client

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mindmatch/therapy-api/db"
	"github.com/mindmatch/therapy-api/models"
	"github.com/mindmatch/therapy-api/utils"
)

// CreateSessionRequest submits a new booking proposal for an expert
func CreateSessionRequest(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	type CreateInput struct {
		ExpertID      uint      `json:"expert_id"`
		RequestedTime time.Time `json:"requested_time"`
		SessionType   string    `json:"session_type"`
		Reason        string    `json:"reason"`
	}

	input := new(CreateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	// Validate input
	if input.ExpertID == 0 || input.RequestedTime.IsZero() || input.SessionType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	var expert models.Expert
	if err := db.DB.First(&expert, input.ExpertID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Expert not found",
		})
	}

	if len(expert.SessionTypes) > 0 && !expert.SessionTypes.Contains(input.SessionType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Expert does not offer this session type",
		})
	}

	// When the expert has published windows for that day, the requested time
	// must fall inside one of them. Experts with no availability configured
	// for the day are still bookable on trust.
	rows, err := utils.ListAvailability(expert.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check availability",
		})
	}
	slots := utils.SlotsForDate(rows, input.RequestedTime)
	if len(slots) > 0 && !utils.WithinSlots(input.RequestedTime, slots) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Requested time is outside the expert's availability",
		})
	}

	request := models.SessionRequest{
		ClientID:      userID,
		ExpertID:      input.ExpertID,
		RequestedTime: input.RequestedTime,
		SessionType:   input.SessionType,
		Reason:        input.Reason,
		Status:        models.RequestPending,
	}

	if err := db.DB.Create(&request).Error; err != nil {
		log.Printf("Error creating session request: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create session request",
		})
	}

	// Notify the expert, best-effort
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have a new session request.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Session type:</strong> %s</li>
			<li><strong>Requested time:</strong> %s</li>
		</ul>
		<p>Best regards,</p>
		<p>The MindMatch Team</p>
	`, expert.Name, request.SessionType, request.RequestedTime.Format("2006-01-02 15:04:05"))
	utils.SendEmailBestEffort(expert.Email, "New Session Request", body)

	return c.Status(fiber.StatusCreated).JSON(request)
}

// UpdateSessionRequest applies a whitelisted edit to an owned request.
// Anything but requested_time, reason and a reschedule status is rejected
// rather than merged blindly.
func UpdateSessionRequest(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request ID",
		})
	}

	type UpdateInput struct {
		RequestedTime *time.Time `json:"requested_time"`
		Reason        *string    `json:"reason"`
		Status        *string    `json:"status"`
	}

	input := new(UpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Status != nil && models.RequestStatus(*input.Status) != models.RequestRescheduled {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Clients may only reschedule a request",
		})
	}

	// Ownership is part of the lookup so a foreign request is
	// indistinguishable from a missing one.
	var request models.SessionRequest
	if err := db.DB.Where("id = ? AND client_id = ?", id, userID).First(&request).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session request not found",
		})
	}

	if request.Status == models.RequestAccepted || request.Status == models.RequestDeclined {
		// The client UI hides edit controls for settled requests but the API
		// still accepts the edit
		log.Printf("Client %d editing settled session request %d (status %s)", userID, request.ID, request.Status)
	}

	if input.RequestedTime != nil {
		request.RequestedTime = *input.RequestedTime
	}
	if input.Reason != nil {
		request.Reason = *input.Reason
	}
	if input.Status != nil {
		request.Status = models.RequestStatus(*input.Status)
	}

	if err := db.DB.Save(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update session request",
		})
	}

	return c.JSON(request)
}

// DeleteSessionRequest removes an owned request
func DeleteSessionRequest(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request ID",
		})
	}

	result := db.DB.Where("id = ? AND client_id = ?", id, userID).Delete(&models.SessionRequest{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete session request",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session request not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Session request deleted successfully",
	})
}
