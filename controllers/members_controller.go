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

// one cursor shape per distinct paginated query
var memberListShape = store.Shape{Collection: "members", SortField: "room_no"}

const memberPageSize = 6

// ---------------- LIST (paginated) ----------------
func ListMembers(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := pageLimit(c, memberPageSize)
		after, ok := cursorParam(c, memberListShape)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		src := store.NewSource[models.Member](cfg.Store.Collection("members"), memberListShape, nil)
		members, last, err := src.FetchPage(ctx, after, limit)
		if err != nil {
			cfg.Logger.Error("list members", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch members"})
			return
		}

		c.JSON(http.StatusOK, pageResponse("members", members, memberListShape, last, limit, len(members)))
	}
}

// ---------------- GET ----------------
func GetMember(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var member models.Member
		if err := cfg.Store.Get(ctx, "members", oid, &member); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch member"})
			return
		}
		c.JSON(http.StatusOK, member)
	}
}

// ---------------- UPDATE ----------------
// Partial update. A status change stamps the date pair, and every edit
// appends an audit log entry under the member.
func UpdateMember(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
			return
		}

		var input struct {
			FullName        string `json:"full_name"`
			Email           string `json:"email"`
			PhoneNumber     string `json:"phone_number"`
			ApartmentNumber string `json:"apartment_number"`
			RoomNo          string `json:"room_no"`
			Status          string `json:"status"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Status != "" && input.Status != models.StatusActive && input.Status != models.StatusInactive {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be active or inactive"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.Member
		if err := cfg.Store.Get(ctx, "members", oid, &existing); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch member"})
			return
		}

		now := time.Now()
		update := bson.M{"updated_at": now}
		if input.FullName != "" {
			update["full_name"] = input.FullName
		}
		if input.Email != "" {
			update["email"] = input.Email
		}
		if input.PhoneNumber != "" {
			update["phone_number"] = input.PhoneNumber
		}
		if input.ApartmentNumber != "" {
			update["apartment_number"] = input.ApartmentNumber
		}
		if input.RoomNo != "" {
			update["room_no"] = input.RoomNo
		}
		models.ApplyStatusChange(update, existing.Status, input.Status, now)

		if len(update) == 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		if err := cfg.Store.Update(ctx, "members", oid, update); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update member"})
			return
		}

		// best effort; the edit itself already landed
		entry := models.AuditLogEntry{
			ID:       primitive.NewObjectID(),
			MemberID: oid,
			Action:   "edit",
			Date:     now,
			Admin:    c.GetString("email"),
			Type:     "edit",
			Details:  update,
		}
		if _, err := cfg.Store.Create(ctx, "audit_logs", entry); err != nil {
			cfg.Logger.Warn("append audit log", zap.String("member_id", oid.Hex()), zap.Error(err))
		}

		c.JSON(http.StatusOK, gin.H{"message": "member updated", "id": oid.Hex()})
	}
}

// ---------------- DELETE ----------------
func DeleteMember(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := cfg.Store.Delete(ctx, "members", oid); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete member"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "member deleted", "id": oid.Hex()})
	}
}

// ---------------- AUDIT LOGS ----------------
func ListMemberLogs(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var logs []models.AuditLogEntry
		sort := bson.D{{Key: "date", Value: -1}}
		if err := cfg.Store.List(ctx, "audit_logs", bson.M{"member_id": oid}, sort, &logs); err != nil {
			cfg.Logger.Error("list audit logs", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch logs"})
			return
		}
		if logs == nil {
			logs = []models.AuditLogEntry{}
		}
		c.JSON(http.StatusOK, logs)
	}
}

// ---------------- FILE EXPORT ----------------
func ExportMemberFile(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var member models.Member
		if err := cfg.Store.Get(ctx, "members", oid, &member); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch member"})
			return
		}

		var logs []models.AuditLogEntry
		if err := cfg.Store.List(ctx, "audit_logs", bson.M{"member_id": oid}, nil, &logs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch logs"})
			return
		}

		pdf, err := report.MemberFile(member, logs)
		if err != nil {
			cfg.Logger.Error("member file export", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render member file"})
			return
		}

		c.Header("Content-Disposition", `attachment; filename="member_file.pdf"`)
		c.Data(http.StatusOK, "application/pdf", pdf)
	}
}
