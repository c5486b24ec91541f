package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	config "github.com/societyhub/society-portal-go/config"
)

// UploadFile relays one multipart file to the media store and returns its
// public URL. Nothing is persisted here; the caller attaches the URL to
// whatever record it belongs to.
func UploadFile(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
			return
		}
		defer file.Close()

		url, err := cfg.Uploader.Upload(c.Request.Context(), file, fileHeader.Filename)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}
