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

var fundListShape = store.Shape{Collection: "funds", SortField: "date", Descending: true}

const fundPageSize = 5

// ---------------- CREATE ----------------
func CreateFund(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Title  string  `json:"title" binding:"required"`
			Amount float64 `json:"amount" binding:"required,gt=0"`
			Type   string  `json:"type" binding:"required,oneof=credit debit"`
			Date   string  `json:"date"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		date := input.Date
		if date == "" {
			date = time.Now().Format("2006-01-02")
		} else if _, err := time.Parse("2006-01-02", date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, use YYYY-MM-DD"})
			return
		}

		entry := models.FundEntry{
			ID:     primitive.NewObjectID(),
			Title:  input.Title,
			Amount: input.Amount,
			Type:   input.Type,
			Date:   date,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := cfg.Store.Create(ctx, "funds", entry); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create fund entry"})
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}

// ---------------- UPDATE ----------------
func UpdateFund(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fund id"})
			return
		}

		var input struct {
			Title  string  `json:"title"`
			Amount float64 `json:"amount"`
			Type   string  `json:"type"`
			Date   string  `json:"date"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		update := bson.M{}
		if input.Title != "" {
			update["title"] = input.Title
		}
		if input.Amount > 0 {
			update["amount"] = input.Amount
		}
		if input.Type != "" {
			if input.Type != models.FundCredit && input.Type != models.FundDebit {
				c.JSON(http.StatusBadRequest, gin.H{"error": "type must be credit or debit"})
				return
			}
			update["type"] = input.Type
		}
		if input.Date != "" {
			if _, err := time.Parse("2006-01-02", input.Date); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, use YYYY-MM-DD"})
				return
			}
			update["date"] = input.Date
		}
		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := cfg.Store.Update(ctx, "funds", oid, update); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "fund entry not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update fund entry"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "fund entry updated", "id": oid.Hex()})
	}
}

// ---------------- DELETE ----------------
func DeleteFund(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fund id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := cfg.Store.Delete(ctx, "funds", oid); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "fund entry not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete fund entry"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "fund entry deleted", "id": oid.Hex()})
	}
}

// ---------------- LIST (paginated, filterable) ----------------
// Filters narrow what is displayed; the balance is never computed here.
func ListFunds(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := pageLimit(c, fundPageSize)
		after, ok := cursorParam(c, fundListShape)
		if !ok {
			return
		}

		filter := bson.M{}
		if typ := c.Query("type"); typ != "" {
			filter["type"] = typ
		}
		if date := c.Query("date"); date != "" {
			filter["date"] = date
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		src := store.NewSource[models.FundEntry](cfg.Store.Collection("funds"), fundListShape, filter)
		entries, last, err := src.FetchPage(ctx, after, limit)
		if err != nil {
			cfg.Logger.Error("list funds", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch fund entries"})
			return
		}

		c.JSON(http.StatusOK, pageResponse("funds", entries, fundListShape, last, limit, len(entries)))
	}
}

// ---------------- SUMMARY ----------------
// The running balance over the full unfiltered ledger.
func FundSummary(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var entries []models.FundEntry
		if err := cfg.Store.List(ctx, "funds", nil, nil, &entries); err != nil {
			cfg.Logger.Error("fund summary", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch fund entries"})
			return
		}

		total := report.Total(entries)
		c.JSON(http.StatusOK, gin.H{
			"total":     total,
			"formatted": report.FormatAmount(total),
			"entries":   len(entries),
		})
	}
}

// ---------------- REPORT ----------------
func FundReport(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// walk the full ledger page by page rather than one unbounded read
		src := store.NewSource[models.FundEntry](cfg.Store.Collection("funds"), fundListShape, nil)
		pager := store.NewPaginator(src, 100)
		entries, err := pager.DrainAll(ctx)
		if err != nil {
			cfg.Logger.Error("fund report", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch fund entries"})
			return
		}

		pdf, err := report.FundReport(entries)
		if err != nil {
			cfg.Logger.Error("fund report", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render fund report"})
			return
		}

		c.Header("Content-Disposition", `attachment; filename="Fund_Report.pdf"`)
		c.Data(http.StatusOK, "application/pdf", pdf)
	}
}
