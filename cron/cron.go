package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/mindmatch/therapy-api/db"
	"github.com/mindmatch/therapy-api/models"
	"github.com/mindmatch/therapy-api/utils"
	"github.com/robfig/cron/v3"
)

// StartCronJobs initializes and starts the cron scheduler for session reminders
func StartCronJobs() {
	c := cron.New()
	// Run every minute to check for sessions starting in the next hour
	_, err := c.AddFunc("* * * * *", sendSessionReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for session reminders")
}

// sendSessionReminders checks for upcoming sessions and sends reminders
func sendSessionReminders() {
	var sessions []models.Session
	now := time.Now()
	// Look for sessions starting in the next hour
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	err := db.DB.Preload("Client").Preload("Expert").
		Where("status = ? AND start_time BETWEEN ? AND ?", models.StatusScheduled, startWindow, endWindow).
		Find(&sessions).Error
	if err != nil {
		log.Printf("Error fetching sessions for reminders: %v", err)
		return
	}

	for _, session := range sessions {
		if err := sendReminderEmails(&session); err != nil {
			log.Printf("Failed to send reminder for session %d: %v", session.ID, err)
			continue
		}
		log.Printf("Sent reminder for session %d to %s", session.ID, session.Client.Email)
	}
}

// sendReminderEmails constructs and sends the reminder to both parties
func sendReminderEmails(session *models.Session) error {
	subject := "Reminder: Upcoming Session"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your session starting in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Session type:</strong> %s</li>
			<li><strong>Expert:</strong> %s</li>
			<li><strong>Start time:</strong> %s</li>
			<li><strong>Meeting link:</strong> %s</li>
		</ul>
		<p>Best regards,</p>
		<p>The MindMatch Team</p>
	`, session.Client.Name, session.SessionType, session.Expert.Name,
		session.StartTime.Format("2006-01-02 15:04:05"), session.MeetingURL)

	if err := utils.SendEmail(session.Client.Email, subject, body); err != nil {
		return err
	}

	expertBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your session starting in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Session type:</strong> %s</li>
			<li><strong>Client:</strong> %s</li>
			<li><strong>Start time:</strong> %s</li>
			<li><strong>Meeting link:</strong> %s</li>
		</ul>
		<p>Best regards,</p>
		<p>The MindMatch Team</p>
	`, session.Expert.Name, session.SessionType, session.Client.Name,
		session.StartTime.Format("2006-01-02 15:04:05"), session.MeetingURL)

	return utils.SendEmail(session.Expert.Email, subject, expertBody)
}
