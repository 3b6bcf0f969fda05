package expert

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mindmatch/therapy-api/db"
	"github.com/mindmatch/therapy-api/models"
)

func TestAcceptRequestRejectsSettledRequest(t *testing.T) {
	testDB(t)

	tests := []struct {
		name   string
		status models.RequestStatus
	}{
		{"already accepted", models.RequestAccepted},
		{"already declined", models.RequestDeclined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := models.SessionRequest{
				ClientID:      1,
				ExpertID:      1,
				RequestedTime: time.Now().Add(24 * time.Hour),
				SessionType:   "Online Sessions",
				Status:        tt.status,
			}
			if err := db.DB.Create(&request).Error; err != nil {
				t.Fatalf("failed to seed request: %v", err)
			}

			app := fiber.New()
			app.Post("/requests/:id/accept", withExpert(1), AcceptRequest)

			req := httptest.NewRequest("POST", fmt.Sprintf("/requests/%d/accept", request.ID), nil)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != fiber.StatusConflict {
				t.Fatalf("status = %d, want 409", resp.StatusCode)
			}
		})
	}
}

func TestAcceptRequestForeignRequestIsNotFound(t *testing.T) {
	testDB(t)

	request := models.SessionRequest{
		ClientID:      1,
		ExpertID:      2,
		RequestedTime: time.Now().Add(24 * time.Hour),
		SessionType:   "Online Sessions",
		Status:        models.RequestPending,
	}
	if err := db.DB.Create(&request).Error; err != nil {
		t.Fatalf("failed to seed request: %v", err)
	}

	app := fiber.New()
	app.Post("/requests/:id/accept", withExpert(1), AcceptRequest)

	req := httptest.NewRequest("POST", fmt.Sprintf("/requests/%d/accept", request.ID), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestAcceptRequestStoreFailureIsNotConflict(t *testing.T) {
	testDB(t)

	request := models.SessionRequest{
		ClientID:      1,
		ExpertID:      1,
		RequestedTime: time.Now().Add(24 * time.Hour),
		SessionType:   "Online Sessions",
		Status:        models.RequestPending,
	}
	if err := db.DB.Create(&request).Error; err != nil {
		t.Fatalf("failed to seed request: %v", err)
	}

	app := fiber.New()
	app.Post("/requests/:id/accept", withExpert(1), AcceptRequest)

	// The overlap check's row lock is Postgres-only, so the in-memory store
	// fails the transaction. That failure must surface as 500, not as the
	// 409 reserved for genuine slot conflicts.
	req := httptest.NewRequest("POST", fmt.Sprintf("/requests/%d/accept", request.ID), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode == fiber.StatusConflict {
		t.Fatal("store failure reported as a slot conflict")
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}

	var reloaded models.SessionRequest
	if err := db.DB.First(&reloaded, request.ID).Error; err != nil {
		t.Fatalf("failed to reload request: %v", err)
	}
	if reloaded.Status != models.RequestPending {
		t.Fatalf("request status = %s, want pending after rollback", reloaded.Status)
	}
}
