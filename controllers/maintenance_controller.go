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
	report "github.com/societyhub/society-portal-go/report"
	store "github.com/societyhub/society-portal-go/store"
)

// ---------------- LIST ----------------
func ListMaintenance(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var entries []models.MaintenanceEntry
		sort := bson.D{{Key: "date", Value: -1}}
		if err := cfg.Store.List(ctx, "maintenance", nil, sort, &entries); err != nil {
			cfg.Logger.Error("list maintenance", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch maintenance entries"})
			return
		}
		if entries == nil {
			entries = []models.MaintenanceEntry{}
		}
		c.JSON(http.StatusOK, entries)
	}
}

// ---------------- CREATE ----------------
func CreateMaintenance(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Title       string  `form:"title" binding:"required"`
			Date        string  `form:"date" binding:"required"`
			Amount      float64 `form:"amount" binding:"required,gt=0"`
			Description string  `form:"description"`
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if _, err := time.Parse("2006-01-02", input.Date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, use YYYY-MM-DD"})
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

		entry := models.MaintenanceEntry{
			ID:          primitive.NewObjectID(),
			Title:       input.Title,
			Date:        input.Date,
			Amount:      input.Amount,
			Description: input.Description,
			FileURL:     fileURL,
			CreatedAt:   time.Now(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := cfg.Store.Create(ctx, "maintenance", entry); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create maintenance entry"})
			return
		}

		go notifyAllMembers(cfg, "Maintenance Notice: "+entry.Title,
			"Maintenance topic: "+entry.Title+"<br>Amount: "+report.FormatAmount(entry.Amount)+"<br>Date: "+entry.Date)

		c.JSON(http.StatusCreated, entry)
	}
}

// ---------------- UPDATE ----------------
func UpdateMaintenance(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid maintenance id"})
			return
		}

		var input struct {
			Title       string  `form:"title"`
			Date        string  `form:"date"`
			Amount      float64 `form:"amount"`
			Description string  `form:"description"`
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		update := bson.M{}
		if input.Title != "" {
			update["title"] = input.Title
		}
		if input.Date != "" {
			if _, err := time.Parse("2006-01-02", input.Date); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, use YYYY-MM-DD"})
				return
			}
			update["date"] = input.Date
		}
		if input.Amount > 0 {
			update["amount"] = input.Amount
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

		if err := cfg.Store.Update(ctx, "maintenance", oid, update); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "maintenance entry not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update maintenance entry"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "maintenance entry updated", "id": oid.Hex()})
	}
}

// ---------------- DELETE ----------------
func DeleteMaintenance(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid maintenance id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := cfg.Store.Delete(ctx, "maintenance", oid); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "maintenance entry not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete maintenance entry"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "maintenance entry deleted", "id": oid.Hex()})
	}
}
