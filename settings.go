package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crewledger/models"
)

type accountSettingsResponse struct {
	ID          uint   `json:"id"`
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	LogoURL     string `json:"logoUrl"`
}

func settingsResponse(s models.AccountSettings) accountSettingsResponse {
	return accountSettingsResponse{
		ID:          s.ID,
		CompanyName: s.CompanyName,
		Email:       s.Email,
		Phone:       s.Phone,
		Address:     s.Address,
		LogoURL:     s.LogoURL,
	}
}

// loadAccountSettings returns the caller's settings row, creating a default
// one on first access. The email column mirrors the login email and is
// rewritten here whenever the two drift apart.
func loadAccountSettings(userID uint) (models.AccountSettings, error) {
	var user models.AuthUser
	if err := db.First(&user, userID).Error; err != nil {
		return models.AccountSettings{}, err
	}
	var settings models.AccountSettings
	err := db.Where("user_id = ?", userID).First(&settings).Error
	if err != nil {
		settings = models.AccountSettings{UserID: userID, CompanyName: "My Company", Email: user.Email}
		if cerr := db.Create(&settings).Error; cerr != nil {
			return models.AccountSettings{}, cerr
		}
		return settings, nil
	}
	if settings.Email != user.Email {
		settings.Email = user.Email
		if uerr := db.Model(&settings).Update("email", user.Email).Error; uerr != nil {
			return models.AccountSettings{}, uerr
		}
	}
	return settings, nil
}

func getAccountSettingsHandler(c *gin.Context) {
	settings, err := loadAccountSettings(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load account settings"})
		return
	}
	c.JSON(http.StatusOK, settingsResponse(settings))
}

func updateAccountSettingsHandler(c *gin.Context) {
	var req struct {
		CompanyName *string `json:"companyName"`
		Phone       *string `json:"phone"`
		Address     *string `json:"address"`
		LogoURL     *string `json:"logoUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	settings, err := loadAccountSettings(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load account settings"})
		return
	}
	if req.CompanyName != nil {
		settings.CompanyName = *req.CompanyName
	}
	if req.Phone != nil {
		settings.Phone = *req.Phone
	}
	if req.Address != nil {
		settings.Address = *req.Address
	}
	// logoUrl is written unconditionally: omitting it (or sending null)
	// clears the stored logo.
	if req.LogoURL != nil {
		settings.LogoURL = *req.LogoURL
	} else {
		settings.LogoURL = ""
	}
	if err := db.Save(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update account settings"})
		return
	}
	c.JSON(http.StatusOK, settingsResponse(settings))
}
