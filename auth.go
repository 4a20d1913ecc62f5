package main

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"crewledger/models"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// generateDefaultPassword builds the random password handed to first-time
// Google sign-ins so they can also log in with email+password later.
func generateDefaultPassword() string {
	b := make([]byte, 9)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

// companyNameFor picks the default company name for a fresh account: the
// supplied name, falling back to the email prefix.
func companyNameFor(name, email string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}

func createAccountSettings(userID uint, companyName, email string) {
	var count int64
	db.Model(&models.AccountSettings{}).Where("user_id = ?", userID).Count(&count)
	if count > 0 {
		return
	}
	settings := models.AccountSettings{UserID: userID, CompanyName: companyName, Email: email}
	if err := db.Create(&settings).Error; err != nil {
		logg.WithFields(logrus.Fields{"userId": userID}).Error("failed to create account settings: " + err.Error())
	}
}

func registerHandler(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters long"})
		return
	}

	// Password accounts require a unique email. Google accounts may share
	// one, so point those users back at Google sign-in.
	var existing models.AuthUser
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		if existing.GoogleSub != nil && *existing.GoogleSub != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "An account with this email already exists. Please sign in with Google or use a different email."})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "An account with this email already exists"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account. Please try again."})
		return
	}
	user := models.AuthUser{Email: email, PasswordHash: hash}
	if err := db.Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create account. Please try again."})
		return
	}
	createAccountSettings(user.ID, companyNameFor(req.Name, email), email)

	token, err := generateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	logg.WithFields(logrus.Fields{"userId": user.ID, "email": email}).Info("account registered")
	c.JSON(http.StatusOK, gin.H{"token": token, "message": "Account created successfully"})
}

func loginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !cfg.emailAllowed(email) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "This email is not permitted to sign in"})
		return
	}
	var user models.AuthUser
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	token, err := generateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "isNewUser": false})
}

func changePasswordHandler(c *gin.Context) {
	var req struct {
		NewPassword string `json:"newPassword" binding:"required"`
		OldPassword string `json:"oldPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password is required"})
		return
	}
	if len(req.NewPassword) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters long"})
		return
	}
	var user models.AuthUser
	if err := db.First(&user, currentUserID(c)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	// Google-originated accounts got a generated password the user may never
	// have seen, so the old password is only required for password accounts.
	fromGoogle := user.GoogleSub != nil && *user.GoogleSub != ""
	if !fromGoogle {
		if req.OldPassword == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Old password is required"})
			return
		}
		if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.OldPassword)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Old password is incorrect"})
			return
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update password"})
		return
	}
	if err := db.Model(&user).Update("password_hash", hash).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// resetPasswordHandler issues a temporary password for the given email.
// Maintenance endpoint; deployments should keep it behind an admin gateway.
func resetPasswordHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	var user models.AuthUser
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found for email: " + email})
		return
	}
	tempPassword := generateDefaultPassword()
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset password"})
		return
	}
	if err := db.Model(&user).Update("password_hash", hash).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": email, "temporaryPassword": tempPassword})
}

func checkEmailHandler(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}
	var count int64
	db.Model(&models.AuthUser{}).Where("email = ?", email).Count(&count)
	c.JSON(http.StatusOK, gin.H{"email": email, "exists": count > 0})
}

func userInfoHandler(c *gin.Context) {
	var user models.AuthUser
	if err := db.First(&user, currentUserID(c)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"userId":        user.ID,
		"email":         user.Email,
		"googleAccount": user.GoogleSub != nil && *user.GoogleSub != "",
	})
}
