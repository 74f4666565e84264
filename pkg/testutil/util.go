package testutil

import (
	"context"
	"time"

	"github.com/craftloop/backend/config"
	"github.com/craftloop/backend/internal/entity"
	"github.com/craftloop/backend/pkg/logger"
	"github.com/craftloop/backend/pkg/xcontext"
	"github.com/bwmarrin/snowflake"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Env:      "testing",
		LogLevel: "SILENCE",
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
		},
		Achievement: config.AchievementConfigs{
			TransientWindow: 5 * time.Second,
			MaxShowcased:    5,
			RecentLimit:     5,
		},
		Notification: config.NotificationConfigs{
			MaxLimit:     50,
			DefaultLimit: 20,
		},
	}

	node, err := snowflake.NewNode(0)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithSnowFlake(ctx, node)
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = MockContext()
	}

	return xcontext.WithRequestUserID(ctx, userID)
}
