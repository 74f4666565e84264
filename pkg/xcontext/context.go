package xcontext

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/craftloop/backend/config"
	"github.com/craftloop/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey   struct{}
	loggerKey    struct{}
	dbKey        struct{}
	txKey        struct{}
	snowflakeKey struct{}
	userIDKey    struct{}
)

// transaction wraps a database transaction stored in the context. The done
// flag guards against rollback-after-commit when the rollback is deferred.
type transaction struct {
	tx   *gorm.DB
	done bool
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	if cfg, ok := ctx.Value(configsKey{}).(config.Configs); ok {
		return cfg
	}

	return config.Configs{}
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	if l, ok := ctx.Value(loggerKey{}).(logger.Logger); ok {
		return l
	}

	return logger.NewLogger(logger.INFO)
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the transaction began by WithDBTransaction if any, otherwise
// the root database handle.
func DB(ctx context.Context) *gorm.DB {
	if t, ok := ctx.Value(txKey{}).(*transaction); ok && !t.done {
		return t.tx
	}

	if db, ok := ctx.Value(dbKey{}).(*gorm.DB); ok {
		return db
	}

	return nil
}

// WithDBTransaction begins a database transaction and replaces the value
// returned by DB until it is committed or rolled back.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, &transaction{tx: DB(ctx).Begin()})
}

func WithCommitDBTransaction(ctx context.Context) {
	if t, ok := ctx.Value(txKey{}).(*transaction); ok && !t.done {
		t.tx.Commit()
		t.done = true
	}
}

func WithRollbackDBTransaction(ctx context.Context) {
	if t, ok := ctx.Value(txKey{}).(*transaction); ok && !t.done {
		t.tx.Rollback()
		t.done = true
	}
}

func WithSnowFlake(ctx context.Context, node *snowflake.Node) context.Context {
	return context.WithValue(ctx, snowflakeKey{}, node)
}

func SnowFlake(ctx context.Context) *snowflake.Node {
	if node, ok := ctx.Value(snowflakeKey{}).(*snowflake.Node); ok {
		return node
	}

	node, err := snowflake.NewNode(0)
	if err != nil {
		panic(err)
	}

	return node
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// RequestUserID returns the authenticated user of this request, or an
// empty string for anonymous requests.
func RequestUserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey{}).(string); ok {
		return id
	}

	return ""
}
