package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindmatch/therapy-api/controllers/client"
	"github.com/mindmatch/therapy-api/middleware"
)

// SetupClientRoutes configures the consumer-facing marketplace routes
func SetupClientRoutes(app *fiber.App) {
	// Expert directory is public
	experts := app.Group("/experts")
	experts.Get("/", client.GetAllExperts)
	experts.Get("/:id", client.GetExpertDetails)
	experts.Get("/:id/availability", client.GetExpertAvailability)
	experts.Get("/:id/availability/windows", client.GetAvailabilityWindows)

	// Booking requires a client token
	requests := app.Group("/session-requests", middleware.Protected(), middleware.RequireClient())
	requests.Post("/", client.CreateSessionRequest)
	requests.Patch("/:id", client.UpdateSessionRequest)
	requests.Delete("/:id", client.DeleteSessionRequest)

	// Merged calendar feed
	sessions := app.Group("/sessions", middleware.Protected(), middleware.RequireClient())
	sessions.Get("/", client.ListEvents)
	sessions.Post("/:id/feedback", client.SubmitFeedback)

	// Profile
	profile := app.Group("/client", middleware.Protected(), middleware.RequireClient())
	profile.Put("/onboarding", client.UpdateOnboarding)
	profile.Post("/profile/picture", client.UploadProfilePicture)
}
