package controllers

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/mindmatch/therapy-api/db"
	"github.com/mindmatch/therapy-api/models"
	"github.com/mindmatch/therapy-api/redis"
	"github.com/mindmatch/therapy-api/utils"
	"golang.org/x/crypto/bcrypt"
)

const (
	otpTTL          = 10 * time.Minute
	otpResendLimit  = 3
	otpResendWindow = 10 * time.Minute
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}
	return []byte(secret)
}

// issueTokens creates the access and refresh token pair for a principal
func issueTokens(id uint, email, kind string) (string, string, error) {
	claims := jwt.MapClaims{
		"id":    id,
		"email": email,
		"kind":  kind,
		"exp":   time.Now().Add(time.Hour * 24).Unix(), // 24 hour expiration
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret())
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"id":    id,
		"email": email,
		"kind":  kind,
		"exp":   time.Now().Add(time.Hour * 24 * 7).Unix(), // 7 day expiration
	}
	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString(jwtSecret())
	if err != nil {
		return "", "", err
	}

	return tokenString, refreshTokenString, nil
}

func sendOTPEmail(client *models.Client) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your MindMatch verification code is <strong>%s</strong>.</p>
		<p>The code expires in 10 minutes.</p>
		<p>Best regards,</p>
		<p>The MindMatch Team</p>
	`, client.Name, client.OTP)
	// Verification emails are best-effort: signup must succeed even if the
	// mail never sends.
	utils.SendEmailBestEffort(client.Email, "Verify your email", body)
}

// Register handles client signup with email verification
func Register(c *fiber.Ctx) error {
	client := new(models.Client)

	if err := c.BodyParser(client); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	// Validate input
	if client.Email == "" || client.Password == "" || client.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	// Check if client already exists
	var existing models.Client
	if err := db.DB.Where("email = ?", client.Email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Account with this email already exists",
		})
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(client.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}
	client.Password = string(hashedPassword)

	client.Provider = models.ProviderEmail
	client.IsVerified = false
	client.OTP = utils.GenerateOTP()
	client.OTPExpiresAt = time.Now().Add(otpTTL)

	if err := db.DB.Create(&client).Error; err != nil {
		log.Printf("Error creating client: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create account",
		})
	}

	sendOTPEmail(client)

	client.Sanitize()
	return c.Status(fiber.StatusCreated).JSON(client)
}

// VerifyOTP confirms the email verification code
func VerifyOTP(c *fiber.Ctx) error {
	type VerifyInput struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}

	input := new(VerifyInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Email == "" || input.OTP == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	var client models.Client
	if err := db.DB.Where("email = ?", input.Email).First(&client).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid or expired OTP",
		})
	}

	if client.OTP == "" || client.OTP != input.OTP || time.Now().After(client.OTPExpiresAt) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid or expired OTP",
		})
	}

	client.IsVerified = true
	client.OTP = ""
	client.OTPExpiresAt = time.Time{}
	if err := db.DB.Save(&client).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to verify account",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Email verified successfully",
	})
}

// ResendOTP issues a fresh verification code, rate limited per address
func ResendOTP(c *fiber.Ctx) error {
	type ResendInput struct {
		Email string `json:"email"`
	}

	input := new(ResendInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	// Rate limit resends per address
	key := fmt.Sprintf("otp_resend:%s", input.Email)
	count, err := redis.Client.Incr(redis.Ctx, key).Result()
	if err != nil {
		log.Printf("OTP rate limiter unavailable: %v", err)
	} else {
		if count == 1 {
			redis.Client.Expire(redis.Ctx, key, otpResendWindow)
		}
		if count > otpResendLimit {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many OTP requests, try again later",
			})
		}
	}

	var client models.Client
	if err := db.DB.Where("email = ?", input.Email).First(&client).Error; err != nil {
		// Do not reveal whether the address exists
		return c.JSON(fiber.Map{
			"message": "If the account exists, a new code has been sent",
		})
	}

	if client.IsVerified {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Account is already verified",
		})
	}

	client.OTP = utils.GenerateOTP()
	client.OTPExpiresAt = time.Now().Add(otpTTL)
	if err := db.DB.Save(&client).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to refresh OTP",
		})
	}

	sendOTPEmail(&client)

	return c.JSON(fiber.Map{
		"message": "If the account exists, a new code has been sent",
	})
}

// Login handles client authentication
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var client models.Client
	if err := db.DB.Where("email = ?", input.Email).First(&client).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if client.Provider != models.ProviderEmail || client.Password == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if !client.IsVerified {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Email not verified",
		})
	}

	tokenString, refreshTokenString, err := issueTokens(client.ID, client.Email, "client")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token":        tokenString,
		"refreshToken": refreshTokenString,
		"user": fiber.Map{
			"id":         client.ID,
			"name":       client.Name,
			"email":      client.Email,
			"provider":   client.Provider,
			"onboarding": client.Onboarding,
		},
	})
}

// GoogleLogin signs a client in from a verified Google profile, creating the
// account on first login
func GoogleLogin(c *fiber.Ctx) error {
	type GoogleInput struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}

	input := new(GoogleInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	var client models.Client
	if err := db.DB.Where("email = ?", input.Email).First(&client).Error; err != nil {
		client = models.Client{
			Name:           input.Name,
			Email:          input.Email,
			Provider:       models.ProviderGoogle,
			IsVerified:     true, // Google already verified the address
			ProfilePicture: input.Picture,
		}
		if err := db.DB.Create(&client).Error; err != nil {
			log.Printf("Error creating google client: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create account",
			})
		}
	}

	tokenString, refreshTokenString, err := issueTokens(client.ID, client.Email, "client")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	client.Sanitize()
	return c.JSON(fiber.Map{
		"token":        tokenString,
		"refreshToken": refreshTokenString,
		"user":         client,
	})
}

// ForgotPassword issues a password reset code. The response never reveals
// whether the address exists.
func ForgotPassword(c *fiber.Ctx) error {
	type ForgotInput struct {
		Email string `json:"email"`
	}

	input := new(ForgotInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	var client models.Client
	if err := db.DB.Where("email = ?", input.Email).First(&client).Error; err == nil {
		client.ResetOTP = utils.GenerateOTP()
		client.ResetOTPExpiresAt = time.Now().Add(otpTTL)
		if err := db.DB.Save(&client).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to issue reset code",
			})
		}

		body := fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>Your password reset code is <strong>%s</strong>.</p>
			<p>The code expires in 10 minutes. Ignore this email if you did not request it.</p>
			<p>Best regards,</p>
			<p>The MindMatch Team</p>
		`, client.Name, client.ResetOTP)
		utils.SendEmailBestEffort(client.Email, "Reset your password", body)
	}

	return c.JSON(fiber.Map{
		"message": "If the account exists, a reset code has been sent",
	})
}

// ResetPassword sets a new password after verifying the reset code
func ResetPassword(c *fiber.Ctx) error {
	type ResetInput struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"new_password"`
	}

	input := new(ResetInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Email == "" || input.OTP == "" || input.NewPassword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	var client models.Client
	if err := db.DB.Where("email = ?", input.Email).First(&client).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid or expired reset code",
		})
	}

	if client.ResetOTP == "" || client.ResetOTP != input.OTP || time.Now().After(client.ResetOTPExpiresAt) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid or expired reset code",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	client.Password = string(hashedPassword)
	client.ResetOTP = ""
	client.ResetOTPExpiresAt = time.Time{}
	if err := db.DB.Save(&client).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reset password",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Password reset successfully",
	})
}

// GetProfile returns the current client's profile
func GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var client models.Client
	if err := db.DB.First(&client, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Account not found",
		})
	}

	client.Sanitize()
	return c.JSON(client)
}

// DeleteAccount removes the client and everything they own
func DeleteAccount(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	if err := db.DB.Where("client_id = ?", userID).Delete(&models.SessionRequest{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete account",
		})
	}
	if err := db.DB.Delete(&models.Client{}, userID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete account",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Account deleted successfully",
	})
}

// Logout doesn't actually invalidate the token as JWTs are stateless
func Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

// RefreshToken generates a new access token using a refresh token
func RefreshToken(c *fiber.Ctx) error {
	type RefreshRequest struct {
		RefreshToken string `json:"refreshToken"`
	}

	refreshRequest := new(RefreshRequest)
	if err := c.BodyParser(refreshRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	token, err := jwt.Parse(refreshRequest.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	})

	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	claims := token.Claims.(jwt.MapClaims)
	newClaims := jwt.MapClaims{
		"id":    claims["id"],
		"email": claims["email"],
		"kind":  claims["kind"],
		"exp":   time.Now().Add(time.Hour * 24).Unix(),
	}

	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, newClaims)
	tokenString, err := newToken.SignedString(jwtSecret())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": tokenString,
	})
}
