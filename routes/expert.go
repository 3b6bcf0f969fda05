package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindmatch/therapy-api/controllers/expert"
	"github.com/mindmatch/therapy-api/middleware"
)

// SetupExpertRoutes configures the expert-side routes
func SetupExpertRoutes(app *fiber.App) {
	app.Post("/expert/auth/login", expert.Login)

	group := app.Group("/expert", middleware.Protected(), middleware.RequireExpert())
	group.Get("/me", expert.GetProfile)

	group.Get("/requests", expert.ListRequests)
	group.Post("/requests/:id/accept", expert.AcceptRequest)
	group.Post("/requests/:id/decline", expert.DeclineRequest)
	group.Post("/requests/:id/propose", expert.ProposeTimes)

	group.Get("/availability", expert.ListAvailability)
	group.Post("/availability", expert.CreateAvailability)
	group.Patch("/availability/:id", expert.UpdateAvailability)
	group.Delete("/availability/:id", expert.DeleteAvailability)

	group.Get("/sessions", expert.ListSessions)
	group.Patch("/sessions/:id/status", expert.UpdateSessionStatus)

	group.Get("/dashboard", expert.GetDashboardOverview)
	group.Get("/dashboard/upcoming", expert.GetUpcomingSessions)
}
