package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dripstore/catalog/internal/auth/password"
	userdomain "github.com/dripstore/catalog/internal/user/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Invoke(EnsureAdminUser)

const (
	defaultAdminFirstname = "Store"
	defaultAdminSurname   = "Admin"
	defaultAdminEmail     = "admin@dripstore.local"
	defaultAdminPassword  = "admin123"
)

// EnsureAdminUser seeds the default admin account for startup bootstrap.
func EnsureAdminUser(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user userdomain.User
		err := tx.WithContext(ctx).
			Where("email = ?", defaultAdminEmail).
			First(&user).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := password.Hash(defaultAdminPassword)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		user = userdomain.User{
			ID:           node.Generate().Int64(),
			Firstname:    defaultAdminFirstname,
			Surname:      defaultAdminSurname,
			Email:        strings.ToLower(defaultAdminEmail),
			PasswordHash: hashed,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return tx.WithContext(ctx).Create(&user).Error
	})
}
