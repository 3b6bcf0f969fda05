package main

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/mindmatch/therapy-api/cron"
	"github.com/mindmatch/therapy-api/db"
	"github.com/mindmatch/therapy-api/redis"
	"github.com/mindmatch/therapy-api/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	redis.InitRedis()
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("MindMatch API")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupClientRoutes(app)
	routes.SetupExpertRoutes(app)

	if err := app.Listen(":8000"); err != nil {
		log.Fatal(err)
	}
}
