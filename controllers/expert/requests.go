package expert

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mindmatch/therapy-api/db"
	"github.com/mindmatch/therapy-api/models"
	"github.com/mindmatch/therapy-api/utils"
	"gorm.io/gorm"
)

// Default session length when a request is accepted
const sessionLength = 50 * time.Minute

var errSlotTaken = errors.New("requested slot overlaps an existing session")

// ListRequests returns the expert's incoming session requests
func ListRequests(c *fiber.Ctx) error {
	expertID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	query := db.DB.Preload("Client").Where("expert_id = ?", expertID)
	if status := c.Query("status"); status != "" {
		if !models.IsRequestStatus(status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unknown request status",
			})
		}
		query = query.Where("status = ?", status)
	}

	var requests []models.SessionRequest
	if err := query.Order("requested_time desc").Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch session requests",
		})
	}

	for i := range requests {
		requests[i].Client.Sanitize()
	}

	return c.JSON(fiber.Map{
		"requests": requests,
	})
}

// AcceptRequest confirms a pending request, creating the Session inside a
// transaction that rechecks for double-booking.
func AcceptRequest(c *fiber.Ctx) error {
	expertID, ok := c.Locals("userID").(uint)
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

	var request models.SessionRequest
	if err := db.DB.Where("id = ? AND expert_id = ?", id, expertID).First(&request).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session request not found",
		})
	}

	if request.Status != models.RequestPending && request.Status != models.RequestRescheduled {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Request is no longer open",
		})
	}

	startTime := request.RequestedTime
	endTime := startTime.Add(sessionLength)

	var session models.Session
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		// Lock conflicting sessions so two accepts cannot both pass
		available, err := utils.CheckNoOverlap(tx, expertID, startTime, endTime)
		if err != nil {
			return err
		}
		if !available {
			return errSlotTaken
		}

		session = models.Session{
			ClientID:    request.ClientID,
			ExpertID:    request.ExpertID,
			SessionType: request.SessionType,
			StartTime:   startTime,
			EndTime:     endTime,
			MeetingURL:  utils.GenerateMeetingURL(),
			Status:      models.StatusScheduled,
		}
		if err := tx.Create(&session).Error; err != nil {
			return err
		}

		request.Status = models.RequestAccepted
		if err := tx.Save(&request).Error; err != nil {
			return err
		}
		return nil
	})
	if errors.Is(err, errSlotTaken) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Time slot not available",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to accept request",
		})
	}

	// Notify the client, best-effort
	var client models.Client
	if db.DB.First(&client, request.ClientID).Error == nil {
		body := fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>Your session request has been accepted.</p>
			<p><strong>Details:</strong></p>
			<ul>
				<li><strong>Session type:</strong> %s</li>
				<li><strong>Start time:</strong> %s</li>
				<li><strong>Meeting link:</strong> %s</li>
			</ul>
			<p>Best regards,</p>
			<p>The MindMatch Team</p>
		`, client.Name, session.SessionType,
			session.StartTime.Format("2006-01-02 15:04:05"), session.MeetingURL)
		utils.SendEmailBestEffort(client.Email, "Session Confirmed", body)
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

// DeclineRequest turns a request down
func DeclineRequest(c *fiber.Ctx) error {
	expertID, ok := c.Locals("userID").(uint)
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

	var request models.SessionRequest
	if err := db.DB.Where("id = ? AND expert_id = ?", id, expertID).First(&request).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session request not found",
		})
	}

	request.Status = models.RequestDeclined
	if err := db.DB.Save(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to decline request",
		})
	}

	var client models.Client
	if db.DB.First(&client, request.ClientID).Error == nil {
		body := fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>Unfortunately your session request for %s could not be accommodated.</p>
			<p>You can pick another time from the expert's availability.</p>
			<p>Best regards,</p>
			<p>The MindMatch Team</p>
		`, client.Name, request.RequestedTime.Format("2006-01-02 15:04:05"))
		utils.SendEmailBestEffort(client.Email, "Session Request Declined", body)
	}

	return c.JSON(request)
}

// ProposeTimes offers alternative timestamps and flags the request rescheduled
func ProposeTimes(c *fiber.Ctx) error {
	expertID, ok := c.Locals("userID").(uint)
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

	type ProposeInput struct {
		ProposedTimes []time.Time `json:"proposed_times"`
	}

	input := new(ProposeInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if len(input.ProposedTimes) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least one proposed time is required",
		})
	}

	var request models.SessionRequest
	if err := db.DB.Where("id = ? AND expert_id = ?", id, expertID).First(&request).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session request not found",
		})
	}

	request.ProposedTimes = models.TimeList(input.ProposedTimes)
	request.Status = models.RequestRescheduled
	if err := db.DB.Save(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to propose times",
		})
	}

	return c.JSON(request)
}
