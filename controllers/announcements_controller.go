package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	config "github.com/societyhub/society-portal-go/config"
	models "github.com/societyhub/society-portal-go/models"
	store "github.com/societyhub/society-portal-go/store"
)

// ---------------- LIST ----------------
func ListAnnouncements(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var announcements []models.Announcement
		sort := bson.D{{Key: "date", Value: -1}}
		if err := cfg.Store.List(ctx, "announcements", nil, sort, &announcements); err != nil {
			cfg.Logger.Error("list announcements", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch announcements"})
			return
		}
		if announcements == nil {
			announcements = []models.Announcement{}
		}
		c.JSON(http.StatusOK, announcements)
	}
}

// ---------------- CREATE ----------------
func CreateAnnouncement(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Title       string `form:"title" binding:"required"`
			Description string `form:"description"`
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var fileURL string
		if fileHeader, err := c.FormFile("file"); err == nil {
			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
				return
			}
			fileURL, err = cfg.Uploader.Upload(c.Request.Context(), file, fileHeader.Filename)
			file.Close()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "file upload failed", "details": err.Error()})
				return
			}
		}

		announcement := models.Announcement{
			ID:          primitive.NewObjectID(),
			Title:       input.Title,
			Description: input.Description,
			FileURL:     fileURL,
			Date:        time.Now(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := cfg.Store.Create(ctx, "announcements", announcement); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create announcement"})
			return
		}

		go notifyAllMembers(cfg, "Society Update: "+announcement.Title, announcement.Description)

		c.JSON(http.StatusCreated, announcement)
	}
}

// ---------------- UPDATE ----------------
func UpdateAnnouncement(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcement id"})
			return
		}

		var input struct {
			Title       string `form:"title"`
			Description string `form:"description"`
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		update := bson.M{}
		if input.Title != "" {
			update["title"] = input.Title
		}
		if input.Description != "" {
			update["description"] = input.Description
		}
		if fileHeader, err := c.FormFile("file"); err == nil {
			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
				return
			}
			url, err := cfg.Uploader.Upload(c.Request.Context(), file, fileHeader.Filename)
			file.Close()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "file upload failed", "details": err.Error()})
				return
			}
			update["file_url"] = url
		}

		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := cfg.Store.Update(ctx, "announcements", oid, update); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "announcement not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update announcement"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "announcement updated", "id": oid.Hex()})
	}
}

// ---------------- DELETE ----------------
func DeleteAnnouncement(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcement id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := cfg.Store.Delete(ctx, "announcements", oid); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "announcement not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete announcement"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "announcement deleted", "id": oid.Hex()})
	}
}
