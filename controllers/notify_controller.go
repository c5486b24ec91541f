package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	config "github.com/societyhub/society-portal-go/config"
	models "github.com/societyhub/society-portal-go/models"
	store "github.com/societyhub/society-portal-go/store"
)

// NotifyMembers queues a best-effort email to every member. The response
// never reflects delivery; failures are only logged.
func NotifyMembers(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Subject string `json:"subject" binding:"required"`
			Message string `json:"message" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		go notifyAllMembers(cfg, input.Subject, input.Message)
		c.JSON(http.StatusAccepted, gin.H{"message": "notification queued"})
	}
}

// notifyAllMembers walks the member collection page by page and mails each
// address. Fire and forget; runs off the request goroutine.
func notifyAllMembers(cfg *config.Config, subject, message string) {
	if cfg.Mailer == nil {
		cfg.Logger.Warn("notify skipped, email not configured", zap.String("subject", subject))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	src := store.NewSource[models.Member](cfg.Store.Collection("members"), memberListShape, nil)
	pager := store.NewPaginator(src, 50)
	members, err := pager.DrainAll(ctx)
	if err != nil {
		cfg.Logger.Warn("notify aborted, could not fetch members", zap.Error(err))
		return
	}

	sent := 0
	for _, m := range members {
		if m.Email == "" {
			continue
		}
		if err := cfg.Mailer.Send(m.Email, m.FullName, subject, message); err != nil {
			cfg.Logger.Warn("notify send failed", zap.String("to", m.Email), zap.Error(err))
			continue
		}
		sent++
	}
	cfg.Logger.Info("member notification finished",
		zap.String("subject", subject), zap.Int("sent", sent), zap.Int("members", len(members)))
}
