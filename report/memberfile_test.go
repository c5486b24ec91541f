package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/societyhub/society-portal-go/models"
)

func TestMemberFileRendersPDF(t *testing.T) {
	member := models.Member{
		ID:       primitive.NewObjectID(),
		Email:    "resident@example.com",
		FullName: "Asha Patil",
		RoomNo:   "B-204",
		Status:   models.StatusActive,
	}
	logs := []models.AuditLogEntry{
		{
			MemberID: member.ID,
			Action:   "status changed",
			Date:     time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
			Admin:    "admin@example.com",
			Type:     "update",
			Details:  bson.M{"status": "inactive"},
		},
		{
			MemberID: member.ID,
			Action:   "profile updated",
			Date:     time.Date(2026, 3, 5, 9, 30, 0, 0, time.UTC),
			Admin:    "admin@example.com",
			Type:     "update",
		},
	}

	out, err := MemberFile(member, logs)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestMemberFileNoLogs(t *testing.T) {
	out, err := MemberFile(models.Member{FullName: "Asha Patil"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}
