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

// Committees are saved with an already-hosted rules URL; clients push the
// rules file through the upload relay first.

// ---------------- LIST ----------------
func ListCommittees(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var committees []models.Committee
		sort := bson.D{{Key: "committee_name", Value: 1}}
		if err := cfg.Store.List(ctx, "committees", nil, sort, &committees); err != nil {
			cfg.Logger.Error("list committees", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch committees"})
			return
		}
		if committees == nil {
			committees = []models.Committee{}
		}
		c.JSON(http.StatusOK, committees)
	}
}

// ---------------- CREATE ----------------
func CreateCommittee(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			CommitteeName string                   `json:"committee_name" binding:"required"`
			Members       []models.CommitteeMember `json:"members" binding:"required,min=1,dive"`
			RulesURL      string                   `json:"rules_url"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		committee := models.Committee{
			ID:            primitive.NewObjectID(),
			CommitteeName: input.CommitteeName,
			Members:       input.Members,
			RulesURL:      input.RulesURL,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := cfg.Store.Create(ctx, "committees", committee); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create committee"})
			return
		}
		c.JSON(http.StatusCreated, committee)
	}
}

// ---------------- UPDATE ----------------
// The roster is replaced as a whole, never merged row by row.
func UpdateCommittee(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid committee id"})
			return
		}

		var input struct {
			CommitteeName string                   `json:"committee_name"`
			Members       []models.CommitteeMember `json:"members"`
			RulesURL      string                   `json:"rules_url"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		update := bson.M{}
		if input.CommitteeName != "" {
			update["committee_name"] = input.CommitteeName
		}
		if input.Members != nil {
			update["members"] = input.Members
		}
		if input.RulesURL != "" {
			update["rules_url"] = input.RulesURL
		}
		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := cfg.Store.Update(ctx, "committees", oid, update); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "committee not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update committee"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "committee updated", "id": oid.Hex()})
	}
}

// ---------------- DELETE ----------------
func DeleteCommittee(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid committee id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := cfg.Store.Delete(ctx, "committees", oid); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "committee not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete committee"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "committee deleted", "id": oid.Hex()})
	}
}
