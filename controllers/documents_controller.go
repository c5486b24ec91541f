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
	utils "github.com/societyhub/society-portal-go/utils"
)

// ---------------- LIST ----------------
func ListDocuments(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var documents []models.Document
		sort := bson.D{{Key: "uploaded_at", Value: -1}}
		if err := cfg.Store.List(ctx, "documents", nil, sort, &documents); err != nil {
			cfg.Logger.Error("list documents", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch documents"})
			return
		}

		if len(documents) == 0 {
			c.JSON(http.StatusOK, []models.Document{})
			return
		}

		latest := documents[0]
		for _, d := range documents {
			if d.UpdatedAt.After(latest.UpdatedAt) {
				latest = d
			}
		}
		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, documents)
	}
}

// ---------------- CREATE ----------------
func CreateDocument(cfg *config.Config) gin.HandlerFunc {
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

		now := time.Now()
		document := models.Document{
			ID:          primitive.NewObjectID(),
			Title:       input.Title,
			Description: input.Description,
			FileURL:     fileURL,
			UploadedAt:  now,
			UpdatedAt:   now,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := cfg.Store.Create(ctx, "documents", document); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create document"})
			return
		}

		go notifyAllMembers(cfg, "New Document Uploaded",
			"New document \""+document.Title+"\" has been uploaded. Please check the portal.")

		c.JSON(http.StatusCreated, document)
	}
}

// ---------------- UPDATE ----------------
// The stored file is immutable; attaching a new one replaces the URL.
func UpdateDocument(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
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

		update := bson.M{"updated_at": time.Now()}
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

		if len(update) == 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := cfg.Store.Update(ctx, "documents", oid, update); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update document"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "document updated", "id": oid.Hex()})
	}
}

// ---------------- DELETE ----------------
func DeleteDocument(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := cfg.Store.Delete(ctx, "documents", oid); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete document"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "document deleted", "id": oid.Hex()})
	}
}
