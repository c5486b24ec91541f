package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/societyhub/society-portal-go/config"
	models "github.com/societyhub/society-portal-go/models"
	store "github.com/societyhub/society-portal-go/store"
)

func profileCollection(role string) string {
	if role == models.RoleAdmin {
		return "admins"
	}
	return "members"
}

// ---------------- GET OWN PROFILE ----------------
func GetProfile(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if c.GetString("role") == models.RoleAdmin {
			var admin models.Admin
			if err := cfg.Store.Get(ctx, "admins", uid, &admin); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch profile"})
				return
			}
			c.JSON(http.StatusOK, admin)
			return
		}

		var member models.Member
		if err := cfg.Store.Get(ctx, "members", uid, &member); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch profile"})
			return
		}
		c.JSON(http.StatusOK, member)
	}
}

// ---------------- UPDATE OWN PROFILE ----------------
// Contact fields only; role, status, and credentials are not editable here.
func UpdateProfile(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			return
		}

		var input struct {
			FullName        string `json:"full_name"`
			PhoneNumber     string `json:"phone_number"`
			ApartmentNumber string `json:"apartment_number"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		update := bson.M{}
		if input.FullName != "" {
			update["full_name"] = input.FullName
		}
		if input.PhoneNumber != "" {
			update["phone_number"] = input.PhoneNumber
		}
		role := c.GetString("role")
		if input.ApartmentNumber != "" && role == models.RoleMember {
			update["apartment_number"] = input.ApartmentNumber
		}
		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}
		if role == models.RoleMember {
			update["updated_at"] = time.Now()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := cfg.Store.Update(ctx, profileCollection(role), uid, update); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update profile"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
	}
}
