package main

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"crewledger/pkg/objstore"
)

const (
	maxReceiptBytes = 10 << 20
	maxLogoBytes    = 5 << 20
)

func storeUpload(c *gin.Context, fh *multipart.FileHeader, prefix string) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	key := objstore.GenerateKey(prefix, fh.Filename)
	return store.Put(c.Request.Context(), key, fh.Header.Get("Content-Type"), f)
}

func uploadFileHandler(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size > maxReceiptBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 10MB limit"})
		return
	}
	url, err := storeUpload(c, fh, "receipts")
	if err != nil {
		logg.Error("receipt upload failed: " + err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "filename": fh.Filename})
}

func uploadFilesHandler(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form is required"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one file is required"})
		return
	}
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		if fh.Size > maxReceiptBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File " + fh.Filename + " exceeds the 10MB limit"})
			return
		}
		url, err := storeUpload(c, fh, "receipts")
		if err != nil {
			logg.Error("receipt upload failed: " + err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store files"})
			return
		}
		urls = append(urls, url)
	}
	c.JSON(http.StatusOK, gin.H{"urls": urls})
}

func uploadLogoHandler(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size > maxLogoBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Logo exceeds the 5MB limit"})
		return
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Logo must be an image"})
		return
	}
	url, err := storeUpload(c, fh, "logos")
	if err != nil {
		logg.Error("logo upload failed: " + err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store logo"})
		return
	}
	// The logo URL is part of account settings; persist it right away.
	settings, serr := loadAccountSettings(currentUserID(c))
	if serr == nil {
		if uerr := db.Model(&settings).Update("logo_url", url).Error; uerr != nil {
			logg.WithFields(logrus.Fields{"userId": settings.UserID}).Warn("failed to persist logo url: " + uerr.Error())
		}
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// deleteLogoHandler removes the stored logo object named by ?filename= and
// clears the account's logo URL.
func deleteLogoHandler(c *gin.Context) {
	filename := strings.TrimSpace(c.Query("filename"))
	if filename == "" || strings.Contains(filename, "/") || strings.Contains(filename, "..") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filename query parameter is required"})
		return
	}
	if err := store.Delete(c.Request.Context(), "logos/"+filename); err != nil {
		logg.Warn("logo delete failed: " + err.Error())
	}
	settings, err := loadAccountSettings(currentUserID(c))
	if err == nil && settings.LogoURL != "" {
		if uerr := db.Model(&settings).Update("logo_url", "").Error; uerr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear logo"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logo deleted"})
}
