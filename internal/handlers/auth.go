package handlers

import (
	"errors"
	"log"
	"net/http"

	"educonnect/internal/config"
	"educonnect/internal/db"
	"educonnect/internal/models"
	"educonnect/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type registerRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	Name         string `json:"name" binding:"required,min=2"`
	University   string `json:"university"`
	FieldOfStudy string `json:"fieldOfStudy"`
	YearOfStudy  int    `json:"yearOfStudy" binding:"omitempty,min=1,max=10"`
	StudentID    string `json:"studentId"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONValidationError(c, err)
		return
	}

	var existing models.User
	if err := db.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		JSONError(c, http.StatusConflict, "Duplicate entry", "User already exists with this email.")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		TranslateError(c, err)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		TranslateError(c, err)
		return
	}

	user := models.User{
		Email:        req.Email,
		Password:     hash,
		Name:         req.Name,
		University:   req.University,
		FieldOfStudy: req.FieldOfStudy,
		YearOfStudy:  req.YearOfStudy,
		StudentID:    req.StudentID,
		IsStudent:    true,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		TranslateError(c, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, config.JWTSecret, utils.TokenTTL)
	if err != nil {
		TranslateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
		"token":   token,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONValidationError(c, err)
		return
	}

	// Same response for unknown email and wrong password.
	var user models.User
	if err := db.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		JSONError(c, http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect.")
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		JSONError(c, http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect.")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, config.JWTSecret, utils.TokenTTL)
	if err != nil {
		TranslateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

type refreshRequest struct {
	Token string `json:"token" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusUnauthorized, "Token required", "A token is required to refresh the session.")
		return
	}

	claims, err := utils.ParseToken(req.Token, config.JWTSecret)
	if err != nil {
		TranslateError(c, err)
		return
	}

	var user models.User
	if err := db.DB.First(&user, claims.UserID).Error; err != nil {
		JSONError(c, http.StatusUnauthorized, "Invalid token", "The provided token is invalid.")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, config.JWTSecret, utils.TokenTTL)
	if err != nil {
		TranslateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONValidationError(c, err)
		return
	}

	// Never reveal whether the email exists.
	const response = "If the email exists, a reset link has been sent"

	var user models.User
	if err := db.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"message": response})
		return
	}

	resetToken, err := utils.GenerateToken(user.ID, user.Email, config.JWTSecret, utils.ResetTokenTTL)
	if err != nil {
		TranslateError(c, err)
		return
	}

	// TODO: deliver by mail once an SMTP sender is wired up.
	log.Printf("Password reset token for %s: %s", req.Email, resetToken)

	c.JSON(http.StatusOK, gin.H{"message": response})
}

type resetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONValidationError(c, err)
		return
	}

	claims, err := utils.ParseToken(req.Token, config.JWTSecret)
	if err != nil {
		JSONError(c, http.StatusBadRequest, "Invalid reset token", "The reset token is invalid or expired.")
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		TranslateError(c, err)
		return
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", claims.UserID).
		Update("password", hash).Error; err != nil {
		TranslateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}
