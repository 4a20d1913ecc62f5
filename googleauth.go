package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"

	"crewledger/models"
)

type googleClaims struct {
	Sub   string
	Email string
	Name  string
}

// verifyGoogleIDToken validates a Google ID token against the configured
// client ID. Declared as a variable so tests can substitute a stub.
var verifyGoogleIDToken = func(ctx context.Context, rawToken, audience string) (*googleClaims, error) {
	payload, err := idtoken.Validate(ctx, rawToken, audience)
	if err != nil {
		return nil, err
	}
	claims := &googleClaims{Sub: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		claims.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		claims.Name = name
	}
	return claims, nil
}

// googleLoginHandler signs a user in with a Google ID token. Identity is
// keyed on the token's subject, never the email: two Google accounts that
// happen to share an email address stay separate users here.
func googleLoginHandler(c *gin.Context) {
	var req struct {
		IDToken string `json:"idToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "idToken is required"})
		return
	}
	if cfg.GoogleClientID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Google sign-in is not configured"})
		return
	}

	claims, err := verifyGoogleIDToken(c.Request.Context(), req.IDToken, cfg.GoogleClientID)
	if err != nil {
		logg.Warn("google token verification failed: " + err.Error())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token"})
		return
	}
	if claims.Sub == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Google token is missing a subject"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if !cfg.emailAllowed(email) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "This email is not permitted to sign in"})
		return
	}

	var user models.AuthUser
	err = db.Where("google_sub = ?", claims.Sub).First(&user).Error
	switch {
	case err == nil:
		// Known Google account. Keep the stored email current.
		if email != "" && user.Email != email {
			if err := db.Model(&user).Update("email", email).Error; err != nil {
				logg.WithFields(logrus.Fields{"userId": user.ID}).Warn("failed to refresh email: " + err.Error())
			}
			user.Email = email
		}
		token, err := generateToken(user.ID, user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "isNewUser": false})
	case errors.Is(err, gorm.ErrRecordNotFound):
		defaultPassword := generateDefaultPassword()
		hash, herr := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
		if herr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account. Please try again."})
			return
		}
		sub := claims.Sub
		user = models.AuthUser{Email: email, PasswordHash: hash, GoogleSub: &sub}
		if cerr := db.Create(&user).Error; cerr != nil {
			logg.Error(fmt.Sprintf("failed to create google account: %v", cerr))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account. Please try again."})
			return
		}
		createAccountSettings(user.ID, companyNameFor(claims.Name, email), email)

		token, terr := generateToken(user.ID, user.Email)
		if terr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
			return
		}
		logg.WithFields(logrus.Fields{"userId": user.ID, "email": email}).Info("google account created")
		c.JSON(http.StatusOK, gin.H{
			"token":           token,
			"isNewUser":       true,
			"defaultPassword": defaultPassword,
		})
	default:
		logg.Error("google account lookup failed: " + err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sign-in failed. Please try again."})
	}
}
