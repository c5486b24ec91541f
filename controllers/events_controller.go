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

var eventListShape = store.Shape{Collection: "events", SortField: "date", Descending: true}

const eventPageSize = 5

// ---------------- LIST (paginated) ----------------
func ListEvents(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := pageLimit(c, eventPageSize)
		after, ok := cursorParam(c, eventListShape)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		src := store.NewSource[models.Event](cfg.Store.Collection("events"), eventListShape, nil)
		events, last, err := src.FetchPage(ctx, after, limit)
		if err != nil {
			cfg.Logger.Error("list events", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch events"})
			return
		}

		if len(events) > 0 {
			latest := events[0]
			for _, ev := range events {
				if ev.UpdatedAt.After(latest.UpdatedAt) {
					latest = ev
				}
			}
			etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
			if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
				c.Status(http.StatusNotModified)
				return
			}
			c.Header("ETag", etag)
			c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))
		}

		c.JSON(http.StatusOK, pageResponse("events", events, eventListShape, last, limit, len(events)))
	}
}

// ---------------- GET ----------------
func GetEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var event models.Event
		if err := cfg.Store.Get(ctx, "events", oid, &event); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch event"})
			return
		}
		c.JSON(http.StatusOK, event)
	}
}

// ---------------- CREATE ----------------
func CreateEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Title    string `form:"title" binding:"required"`
			Date     string `form:"date" binding:"required"`
			Time     string `form:"time"`
			Location string `form:"location"`
			Banner   string `form:"banner"` // already-hosted URL, kept unless a file is attached
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if _, err := time.Parse("2006-01-02", input.Date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, use YYYY-MM-DD"})
			return
		}

		banner := input.Banner
		if fileHeader, err := c.FormFile("banner_file"); err == nil {
			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
				return
			}
			url, err := cfg.Uploader.Upload(c.Request.Context(), file, fileHeader.Filename)
			file.Close()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "banner upload failed", "details": err.Error()})
				return
			}
			banner = url
		}

		now := time.Now()
		event := models.Event{
			ID:        primitive.NewObjectID(),
			Title:     input.Title,
			Date:      input.Date,
			Time:      input.Time,
			Location:  input.Location,
			Banner:    banner,
			CreatedAt: now,
			UpdatedAt: now,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := cfg.Store.Create(ctx, "events", event); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create event"})
			return
		}

		go notifyAllMembers(cfg, "New Society Event: "+event.Title,
			"A new event has been scheduled on "+event.Date+" at "+event.Location+". Please check the portal.")

		c.JSON(http.StatusCreated, event)
	}
}

// ---------------- UPDATE ----------------
func UpdateEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		var input struct {
			Title    string `form:"title"`
			Date     string `form:"date"`
			Time     string `form:"time"`
			Location string `form:"location"`
			Banner   string `form:"banner"`
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		update := bson.M{"updated_at": time.Now()}
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
		if input.Time != "" {
			update["time"] = input.Time
		}
		if input.Location != "" {
			update["location"] = input.Location
		}
		if input.Banner != "" {
			update["banner"] = input.Banner
		}
		if fileHeader, err := c.FormFile("banner_file"); err == nil {
			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
				return
			}
			url, err := cfg.Uploader.Upload(c.Request.Context(), file, fileHeader.Filename)
			file.Close()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "banner upload failed", "details": err.Error()})
				return
			}
			update["banner"] = url
		}

		if len(update) == 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := cfg.Store.Update(ctx, "events", oid, update); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update event"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "event updated", "id": oid.Hex()})
	}
}

// ---------------- DELETE ----------------
func DeleteEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := cfg.Store.Delete(ctx, "events", oid); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete event"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "event deleted", "id": oid.Hex()})
	}
}
