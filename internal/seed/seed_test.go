package seed

import (
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/dripstore/catalog/internal/auth/password"
	userdomain "github.com/dripstore/catalog/internal/user/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedDB(t *testing.T) (*gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&userdomain.User{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return db, node
}

func TestEnsureAdminUser(t *testing.T) {
	db, node := setupSeedDB(t)

	require.NoError(t, EnsureAdminUser(db, node))

	var user userdomain.User
	require.NoError(t, db.Where("email = ?", defaultAdminEmail).First(&user).Error)
	require.Equal(t, defaultAdminFirstname, user.Firstname)
	require.True(t, password.Verify(defaultAdminPassword, user.PasswordHash))

	// The bootstrap credential satisfies the same length rule the signup
	// endpoint enforces, so it can be rotated through the API.
	require.GreaterOrEqual(t, len(defaultAdminPassword), 6)
}

func TestEnsureAdminUserIdempotent(t *testing.T) {
	db, node := setupSeedDB(t)

	require.NoError(t, EnsureAdminUser(db, node))
	require.NoError(t, EnsureAdminUser(db, node))

	var count int64
	require.NoError(t, db.Model(&userdomain.User{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}
