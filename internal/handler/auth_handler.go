package handler

import (
	"log"
	"math/rand"
	"net/http"
	"time"

	"arguefc/backend/internal/database"
	"arguefc/backend/internal/mail"
	"arguefc/backend/internal/models"
	"arguefc/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const (
	otpTTL      = 2 * time.Minute
	otpMaxTries = 3
	otpLockout  = 5 * time.Minute
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Name            string `json:"name" binding:"required" example:"Kofi Mensah"`
	Email           string `json:"email" binding:"required,email" example:"kofi@example.com"`
	PhoneNumber     string `json:"phone_number" binding:"omitempty,len=10" example:"0241234567"`
	DateOfBirth     string `json:"date_of_birth" binding:"required" example:"1995-04-21"`
	Password        string `json:"password" binding:"required,min=8" example:"password123"`
	ConfirmPassword string `json:"confirm_password" binding:"required" example:"password123"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email" example:"kofi@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// VerifyOTPInput carries the code mailed to the user.
type VerifyOTPInput struct {
	OTP string `json:"otp" binding:"required,len=4" example:"4821"`
}

// endregion

// RegisterUser godoc
// @Summary      Register a new user
// @Description  Creates a user plus its social account, emails a verification OTP and returns a token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  map[string]string "{"token": "...", "message": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func RegisterUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Password != input.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	}

	dob, err := time.Parse("2006-01-02", input.DateOfBirth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date of birth, expected YYYY-MM-DD"})
		return
	}

	var existingUser models.User
	if err := database.DB.Where("email = ?", input.Email).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
		PasswordHash: string(hashedPassword),
		DateOfBirth:  dob,
		OTPTriesLeft: otpMaxTries,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	// Post-registration hook: every user gets exactly one social account.
	account := models.Account{
		OwnerID:  user.ID,
		Settings: models.DefaultAccountSettings(),
	}
	if err := database.DB.Create(&account).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	if err := issueOTP(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue verification code"})
		return
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":   token,
		"message": "Registration successful. Please check your email for your verification code.",
	})
}

// LoginUser godoc
// @Summary      Log in a user
// @Description  Authenticates by email and password; when 2FA is enabled a fresh OTP is emailed.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  map[string]string "{"token": "...", "message": "..."}"
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Failure      500  {object}  ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func LoginUser(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	var account models.Account
	if err := database.DB.Where("owner_id = ?", user.ID).First(&account).Error; err == nil && account.TwoFAEnabled() {
		if err := issueOTP(&user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue verification code"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "message": "Please provide your OTP, check your mail"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "message": "Login successful"})
}

// VerifyOTP godoc
// @Summary      Verify the emailed OTP
// @Description  Checks the caller's own stored OTP and marks the user and account verified.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body VerifyOTPInput true "OTP"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse "Invalid or expired OTP"
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/verify_otp [patch]
func VerifyOTP(c *gin.Context) {
	var input VerifyOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")
	var user models.User
	if err := database.DB.First(&user, userID.(uint)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.OTPCode == "" || user.OTPCode != input.OTP {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP"})
		return
	}
	if user.OTPExpiresAt == nil || time.Now().After(*user.OTPExpiresAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP"})
		return
	}

	updates := map[string]interface{}{
		"is_verified":      true,
		"otp_code":         "",
		"otp_expires_at":   nil,
		"otp_tries_left":   otpMaxTries,
		"otp_locked_until": nil,
	}
	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	if err := database.DB.Model(&models.Account{}).
		Where("owner_id = ?", user.ID).
		Update("is_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully verified otp"})
}

// RegenerateOTP godoc
// @Summary      Regenerate and resend the OTP
// @Description  Issues a fresh OTP for the caller, bounded by a retry budget and lockout window.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse "2FA disabled or retry budget exhausted"
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/regenerate_otp [patch]
func RegenerateOTP(c *gin.Context) {
	userID, _ := c.Get("userID")
	var user models.User
	if err := database.DB.First(&user, userID.(uint)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var account models.Account
	if err := database.DB.Where("owner_id = ?", user.ID).First(&account).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}
	if !account.TwoFAEnabled() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Enable your 2fa in settings to access this action"})
		return
	}

	now := time.Now()
	if user.OTPTriesLeft <= 0 {
		if user.OTPLockedUntil != nil && now.Before(*user.OTPLockedUntil) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Maximum otp try exceeded, try again later"})
			return
		}
		// Lockout expired, restore the retry budget.
		user.OTPTriesLeft = otpMaxTries
		user.OTPLockedUntil = nil
	}

	user.OTPTriesLeft--
	if user.OTPTriesLeft == 0 {
		lockedUntil := now.Add(otpLockout)
		user.OTPLockedUntil = &lockedUntil
	}

	if err := issueOTP(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue verification code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "A new OTP has been sent to your email"})
}

// issueOTP generates a per-user code with its own expiry, persists it and
// mails it out asynchronously. Mail failures are logged, never surfaced.
func issueOTP(user *models.User) error {
	code := generateOTP()
	expiresAt := time.Now().Add(otpTTL)

	user.OTPCode = code
	user.OTPExpiresAt = &expiresAt
	if err := database.DB.Save(user).Error; err != nil {
		return err
	}

	email := user.Email
	go func() {
		if err := mail.SendOTP(email, code); err != nil {
			log.Printf("Error sending OTP email: %v", err)
		}
	}()
	return nil
}

func generateOTP() string {
	digits := []byte("0123456789")
	code := make([]byte, 4)
	for i := range code {
		code[i] = digits[rand.Intn(len(digits))]
	}
	return string(code)
}
