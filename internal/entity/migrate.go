package entity

import (
	"context"

	"github.com/craftloop/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Follower{},
		&Post{},
		&PostLike{},
		&Achievement{},
		&UserAchievement{},
		&Notification{},
		&NotificationPreferences{},
	)
}
