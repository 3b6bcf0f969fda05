package expert

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/mindmatch/therapy-api/db"
	"github.com/mindmatch/therapy-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// withExpert stands in for the JWT middleware in handler tests
func withExpert(id uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", id)
		return c.Next()
	}
}

// testDB swaps the package handle for an in-memory database for one test
func testDB(t *testing.T) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(
		&models.Client{},
		&models.Expert{},
		&models.ExpertAvailability{},
		&models.SessionRequest{},
		&models.Session{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	prev := db.DB
	db.DB = gdb
	t.Cleanup(func() { db.DB = prev })
}

func day(d models.DayOfWeek) *models.DayOfWeek {
	return &d
}

func TestUpdateAvailabilityIgnoresBodyID(t *testing.T) {
	testDB(t)

	own := models.ExpertAvailability{
		ExpertID:  1,
		Recurring: true,
		DayOfWeek: day(models.Monday),
		Slots:     models.SlotList{{StartTime: "09:00", EndTime: "10:00"}},
	}
	other := models.ExpertAvailability{
		ExpertID:  2,
		Recurring: true,
		DayOfWeek: day(models.Tuesday),
		Slots:     models.SlotList{{StartTime: "14:00", EndTime: "16:00"}},
	}
	if err := db.DB.Create(&own).Error; err != nil {
		t.Fatalf("failed to seed own row: %v", err)
	}
	if err := db.DB.Create(&other).Error; err != nil {
		t.Fatalf("failed to seed other row: %v", err)
	}

	app := fiber.New()
	app.Patch("/availability/:id", withExpert(1), UpdateAvailability)

	// The body tries to retarget the write at the other expert's row
	body := fmt.Sprintf(
		`{"id": %d, "expert_id": 2, "slots": [{"start_time": "11:00", "end_time": "12:00"}]}`,
		other.ID)
	req := httptest.NewRequest("PATCH", fmt.Sprintf("/availability/%d", own.ID), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var reloadedOwn, reloadedOther models.ExpertAvailability
	if err := db.DB.First(&reloadedOwn, own.ID).Error; err != nil {
		t.Fatalf("failed to reload own row: %v", err)
	}
	if err := db.DB.First(&reloadedOther, other.ID).Error; err != nil {
		t.Fatalf("failed to reload other row: %v", err)
	}

	if len(reloadedOwn.Slots) != 1 || reloadedOwn.Slots[0].StartTime != "11:00" {
		t.Fatalf("own row slots = %v, want the edited slot", reloadedOwn.Slots)
	}
	if reloadedOwn.ExpertID != 1 {
		t.Fatalf("own row expert = %d, want 1", reloadedOwn.ExpertID)
	}
	if len(reloadedOther.Slots) != 1 || reloadedOther.Slots[0].StartTime != "14:00" {
		t.Fatalf("other expert's row was modified: %v", reloadedOther.Slots)
	}
	if reloadedOther.ExpertID != 2 {
		t.Fatalf("other expert's row reassigned to expert %d", reloadedOther.ExpertID)
	}
}

func TestUpdateAvailabilityForeignRowIsNotFound(t *testing.T) {
	testDB(t)

	other := models.ExpertAvailability{
		ExpertID:  2,
		Recurring: true,
		DayOfWeek: day(models.Tuesday),
		Slots:     models.SlotList{{StartTime: "14:00", EndTime: "16:00"}},
	}
	if err := db.DB.Create(&other).Error; err != nil {
		t.Fatalf("failed to seed row: %v", err)
	}

	app := fiber.New()
	app.Patch("/availability/:id", withExpert(1), UpdateAvailability)

	req := httptest.NewRequest("PATCH", fmt.Sprintf("/availability/%d", other.ID),
		strings.NewReader(`{"slots": [{"start_time": "11:00", "end_time": "12:00"}]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestUpdateAvailabilityKeepsInvariant(t *testing.T) {
	testDB(t)

	row := models.ExpertAvailability{
		ExpertID:  1,
		Recurring: true,
		DayOfWeek: day(models.Monday),
		Slots:     models.SlotList{{StartTime: "09:00", EndTime: "10:00"}},
	}
	if err := db.DB.Create(&row).Error; err != nil {
		t.Fatalf("failed to seed row: %v", err)
	}

	app := fiber.New()
	app.Patch("/availability/:id", withExpert(1), UpdateAvailability)

	// Flipping to one-off without a date must fail validation
	req := httptest.NewRequest("PATCH", fmt.Sprintf("/availability/%d", row.ID),
		strings.NewReader(`{"recurring": false}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}
