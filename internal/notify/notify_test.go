package notify

import (
	"fmt"
	"strings"
	"testing"

	"github.com/crewly-dev/crewly/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:notify_%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Notification{}))

	return db
}

func TestNotify(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	ref := uint(42)
	require.NoError(t, svc.Notify(Message{
		UserID:      1,
		Type:        models.NotifyInvitePending,
		Message:     "You have been invited to join project \"Demo\"",
		Link:        "/invites",
		ReferenceID: &ref,
	}))

	var row models.Notification
	require.NoError(t, db.First(&row).Error)
	require.Equal(t, uint(1), row.UserID)
	require.Equal(t, models.NotifyInvitePending, row.Type)
	require.Equal(t, "/invites", row.Link)
	require.NotNil(t, row.ReferenceID)
	require.Equal(t, ref, *row.ReferenceID)
	require.False(t, row.Read)
}

func TestNotifyMany(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	require.NoError(t, svc.NotifyMany(nil))

	messages := []Message{
		{UserID: 1, Type: models.NotifyMemberJoined, Message: "a"},
		{UserID: 2, Type: models.NotifyMemberJoined, Message: "b"},
		{UserID: 3, Type: models.NotifyMemberJoined, Message: "c"},
	}
	require.NoError(t, svc.NotifyMany(messages))

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	require.EqualValues(t, 3, count)
}

func TestDispatchSwallowsFailure(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	// Drop the table so every insert fails; Dispatch must not panic and
	// must leave nothing behind.
	require.NoError(t, db.Migrator().DropTable(&models.Notification{}))

	svc.Dispatch(Message{UserID: 1, Type: models.NotifyKicked, Message: "x"})
	svc.DispatchMany([]Message{{UserID: 1, Type: models.NotifyKicked, Message: "y"}})
}
