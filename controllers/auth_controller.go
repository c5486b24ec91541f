package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	config "github.com/societyhub/society-portal-go/config"
	models "github.com/societyhub/society-portal-go/models"
	store "github.com/societyhub/society-portal-go/store"
)

func generateToken(cfg *config.Config, userID primitive.ObjectID, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.Hex(),
		"email":   email,
		"role":    role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ---------------- MEMBER REGISTRATION ----------------
func Register(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email           string `json:"email" binding:"required,email"`
			Password        string `json:"password" binding:"required,min=6"`
			ConfirmPassword string `json:"confirm_password" binding:"required"`
			FullName        string `json:"full_name" binding:"required"`
			PhoneNumber     string `json:"phone_number"`
			ApartmentNumber string `json:"apartment_number"`
			RoomNo          string `json:"room_no" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Password != input.ConfirmPassword {
			c.JSON(http.StatusBadRequest, gin.H{"error": "passwords do not match"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
			return
		}

		now := time.Now()
		member := models.Member{
			ID:              primitive.NewObjectID(),
			Email:           input.Email,
			PasswordHash:    string(hash),
			FullName:        input.FullName,
			PhoneNumber:     input.PhoneNumber,
			ApartmentNumber: input.ApartmentNumber,
			RoomNo:          input.RoomNo,
			Role:            models.RoleMember,
			Status:          models.StatusActive,
			StartingDate:    &now,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		id, err := cfg.Store.Create(ctx, "members", member)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create member"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": id.Hex(), "message": "registration successful"})
	}
}

// ---------------- ADMIN REGISTRATION ----------------
func RegisterAdmin(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email           string `json:"email" binding:"required,email"`
			Password        string `json:"password" binding:"required,min=6"`
			ConfirmPassword string `json:"confirm_password" binding:"required"`
			FullName        string `json:"full_name" binding:"required"`
			PhoneNumber     string `json:"phone_number"`
			AdminCode       string `json:"admin_code" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Password != input.ConfirmPassword {
			c.JSON(http.StatusBadRequest, gin.H{"error": "passwords do not match"})
			return
		}
		// checked server-side; the registration form alone is not a boundary
		if input.AdminCode != cfg.AdminCode {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid admin code"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
			return
		}

		admin := models.Admin{
			ID:           primitive.NewObjectID(),
			Email:        input.Email,
			PasswordHash: string(hash),
			FullName:     input.FullName,
			PhoneNumber:  input.PhoneNumber,
			Role:         models.RoleAdmin,
			CreatedAt:    time.Now(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		id, err := cfg.Store.Create(ctx, "admins", admin)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create admin"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": id.Hex(), "message": "registration successful"})
	}
}

// ---------------- LOGIN ----------------
func Login(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// admins take precedence when resolving an identity's role
		var admin models.Admin
		err := cfg.Store.GetOne(ctx, "admins", bson.M{"email": input.Email}, &admin)
		if err == nil {
			if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)) != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				return
			}
			token, err := generateToken(cfg, admin.ID, admin.Email, models.RoleAdmin)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"token": token, "role": models.RoleAdmin})
			return
		}

		var member models.Member
		if err := cfg.Store.GetOne(ctx, "members", bson.M{"email": input.Email}, &member); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(input.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		token, err := generateToken(cfg, member.ID, member.Email, models.RoleMember)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "role": models.RoleMember})
	}
}

// ---------------- CURRENT IDENTITY ----------------
// Me resolves the caller's role by probing the admin collection first, then
// the member collection. Absence from both is an unauthenticated state even
// when the token itself parses.
func Me(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var admin models.Admin
		if err := cfg.Store.Get(ctx, "admins", uid, &admin); err == nil {
			c.JSON(http.StatusOK, gin.H{"role": models.RoleAdmin, "profile": admin})
			return
		} else if !errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not resolve identity"})
			return
		}

		var member models.Member
		err = cfg.Store.Get(ctx, "members", uid, &member)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown identity"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not resolve identity"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"role": models.RoleMember, "profile": member})
	}
}
