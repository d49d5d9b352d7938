package workflow

import (
	"fmt"
	"strings"
	"testing"

	"github.com/crewly-dev/crewly/internal/models"
	"github.com/crewly-dev/crewly/internal/notify"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Member{},
		&models.Task{},
		&models.Invite{},
		&models.Notification{},
	))

	return db
}

func newNotifier(db *gorm.DB) *notify.Service {
	return notify.NewService(db)
}

func createUser(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        strings.ToLower(name) + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func addMember(t *testing.T, db *gorm.DB, userID, projectID uint) {
	t.Helper()
	require.NoError(t, db.Create(&models.Member{UserID: userID, ProjectID: projectID}).Error)
}

func memberExists(t *testing.T, db *gorm.DB, userID, projectID uint) bool {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.Member{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Count(&count).Error)
	return count > 0
}

func notificationCount(t *testing.T, db *gorm.DB, userID uint, typ models.NotificationType) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", userID, typ).
		Count(&count).Error)
	return count
}

// requireDisjointRoles asserts the core invariant: the owner of a project
// is never simultaneously listed as a member of it.
func requireDisjointRoles(t *testing.T, db *gorm.DB, projectID uint) {
	t.Helper()

	var project models.Project
	require.NoError(t, db.First(&project, projectID).Error)
	require.False(t, memberExists(t, db, project.OwnerID, projectID),
		"owner must not appear in the member list")
}
