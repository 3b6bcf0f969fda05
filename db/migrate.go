package db

import (
	"fmt"
	"log"

	"github.com/mindmatch/therapy-api/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.Client{},
		&models.Expert{},
		&models.ExpertAvailability{},
		&models.SessionRequest{},
		&models.Session{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
