package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/crewly-dev/crewly/internal/models"
	"github.com/crewly-dev/crewly/internal/notify"
	"github.com/crewly-dev/crewly/internal/workflow"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newInviteRouter(db *gorm.DB, user models.User) *gin.Engine {
	h := NewInviteHandler(workflow.NewInviteService(db, notify.NewService(db)))

	r := gin.New()
	r.POST("/api/invites/:invite_id", asUser(user), h.Respond)
	return r
}

func respondInvite(r *gin.Engine, inviteID string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/invites/"+inviteID, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRespondInvite_StatusMapping(t *testing.T) {
	db := newTestDB(t)

	alice := createUser(t, db, "Alice")
	bob := createUser(t, db, "Bob")
	mallory := createUser(t, db, "Mallory")

	project := models.Project{Name: "Team", OwnerID: alice.ID}
	require.NoError(t, db.Create(&project).Error)

	invite := models.Invite{
		ProjectID: project.ID,
		UserID:    bob.ID,
		Status:    models.InviteStatusPending,
	}
	require.NoError(t, db.Create(&invite).Error)
	inviteID := strconv.FormatUint(uint64(invite.ID), 10)

	// Wrong recipient is a 403.
	w := respondInvite(newInviteRouter(db, mallory), inviteID, `{"action":"accept"}`)
	require.Equal(t, http.StatusForbidden, w.Code)

	// Unknown action is a 400 and leaves the invite pending.
	asBob := newInviteRouter(db, bob)
	w = respondInvite(asBob, inviteID, `{"action":"maybe"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Missing invite is a 404.
	w = respondInvite(asBob, "999999", `{"action":"accept"}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	// First real answer succeeds.
	w = respondInvite(asBob, inviteID, `{"action":"accept"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// Answering again is a 409.
	w = respondInvite(asBob, inviteID, `{"action":"decline"}`)
	require.Equal(t, http.StatusConflict, w.Code)

	var updated models.Invite
	require.NoError(t, db.First(&updated, invite.ID).Error)
	require.Equal(t, models.InviteStatusAccepted, updated.Status)
}
