package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindmatch/therapy-api/controllers"
	"github.com/mindmatch/therapy-api/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/register", controllers.Register)
	auth.Post("/verify-otp", controllers.VerifyOTP)
	auth.Post("/resend-otp", controllers.ResendOTP)
	auth.Post("/login", controllers.Login)
	auth.Post("/google", controllers.GoogleLogin)
	auth.Post("/forgot-password", controllers.ForgotPassword)
	auth.Post("/reset-password", controllers.ResetPassword)
	auth.Post("/refresh", controllers.RefreshToken)

	// Protected routes
	auth.Get("/me", middleware.Protected(), controllers.GetProfile)
	auth.Delete("/me", middleware.Protected(), middleware.RequireClient(), controllers.DeleteAccount)
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
}
