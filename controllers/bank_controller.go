package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	config "github.com/societyhub/society-portal-go/config"
	models "github.com/societyhub/society-portal-go/models"
	store "github.com/societyhub/society-portal-go/store"
)

// The bank details live in a single document that is overwritten in place.

func GetBank(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var details models.BankDetails
		err := cfg.Store.GetOne(ctx, "bank", bson.M{}, &details)
		if errors.Is(err, store.ErrNotFound) {
			// "no data" display state, not an error
			c.JSON(http.StatusNotFound, gin.H{"error": "bank details not set"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch bank details"})
			return
		}
		c.JSON(http.StatusOK, details)
	}
}

func PutBank(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			BankName       string `json:"bank_name" binding:"required"`
			IFSC           string `json:"ifsc" binding:"required"`
			AccountNumber  string `json:"account_number" binding:"required"`
			BankHolderName string `json:"bank_holder_name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		details := models.BankDetails{
			BankName:       input.BankName,
			IFSC:           input.IFSC,
			AccountNumber:  input.AccountNumber,
			BankHolderName: input.BankHolderName,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := cfg.Store.Replace(ctx, "bank", bson.M{}, details); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save bank details"})
			return
		}
		c.JSON(http.StatusOK, details)
	}
}
