package main

import (
	"context"

	"github.com/craftloop/backend/config"
	"github.com/craftloop/backend/internal/domain"
	"github.com/craftloop/backend/internal/domain/achievement"
	"github.com/craftloop/backend/internal/domain/notification"
	"github.com/craftloop/backend/internal/domain/statistic"
	"github.com/craftloop/backend/internal/entity"
	"github.com/craftloop/backend/internal/repository"
	"github.com/craftloop/backend/pkg/kafka"
	"github.com/craftloop/backend/pkg/logger"
	"github.com/craftloop/backend/pkg/pubsub"
	"github.com/craftloop/backend/pkg/router"
	"github.com/craftloop/backend/pkg/xcontext"
	"github.com/craftloop/backend/pkg/xredis"
	"github.com/bwmarrin/snowflake"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App

	ctx     context.Context
	configs *config.Configs
	logger  logger.Logger

	userRepo            repository.UserRepository
	followerRepo        repository.FollowerRepository
	postRepo            repository.PostRepository
	achievementRepo     repository.AchievementRepository
	userAchievementRepo repository.UserAchievementRepository
	notificationRepo    repository.NotificationRepository
	preferenceRepo      repository.NotificationPreferenceRepository

	redisClient    xredis.Client
	publisher      pubsub.Publisher
	subscriber     pubsub.Subscriber
	leaderboard    statistic.Leaderboard
	fanout         *notification.Fanout
	transientQueue *achievement.TransientQueue
	tracker        *achievement.Tracker

	userDomain         domain.UserDomain
	achievementDomain  domain.AchievementDomain
	notificationDomain domain.NotificationDomain
	followerDomain     domain.FollowerDomain
	postDomain         domain.PostDomain
	statisticDomain    domain.StatisticDomain

	router *router.Router
}

func (s *srv) loadConfig() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	s.configs = &cfg
	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
}

func (s *srv) loadLogger() {
	s.logger = logger.NewLogger(logger.ParseLevel(s.configs.LogLevel))
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	db, err := gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
	if err := entity.MigrateTable(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadSnowFlake() {
	node, err := snowflake.NewNode(0)
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithSnowFlake(s.ctx, node)
}

func (s *srv) loadRedis() {
	client, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.redisClient = client
}

func (s *srv) loadPublisher() {
	publisher, err := kafka.NewPublisher("api", []string{s.configs.Kafka.Addr})
	if err != nil {
		s.logger.Warnf("Cannot connect to kafka, notifications will not be delivered: %v", err)
		return
	}

	s.publisher = publisher
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.followerRepo = repository.NewFollowerRepository()
	s.postRepo = repository.NewPostRepository()
	s.achievementRepo = repository.NewAchievementRepository()
	s.userAchievementRepo = repository.NewUserAchievementRepository()
	s.notificationRepo = repository.NewNotificationRepository()
	s.preferenceRepo = repository.NewNotificationPreferenceRepository()
}

func (s *srv) loadEngines() {
	s.leaderboard = statistic.New(s.userAchievementRepo, s.redisClient)
	s.fanout = notification.NewFanout(
		s.userRepo,
		s.followerRepo,
		s.notificationRepo,
		s.preferenceRepo,
		s.publisher,
	)
	s.transientQueue = achievement.NewTransientQueue(
		s.configs.Achievement.TransientWindow, achievement.NewTimerScheduler())
	s.tracker = achievement.NewTracker(
		s.achievementRepo,
		s.userAchievementRepo,
		s.userRepo,
		s.transientQueue,
		s.fanout,
		s.leaderboard,
	)
}

func (s *srv) loadDomains() {
	s.userDomain = domain.NewUserDomain(s.userRepo)
	s.achievementDomain = domain.NewAchievementDomain(
		s.achievementRepo, s.userAchievementRepo, s.tracker, s.transientQueue)
	s.notificationDomain = domain.NewNotificationDomain(s.notificationRepo, s.preferenceRepo)
	s.followerDomain = domain.NewFollowerDomain(s.followerRepo, s.userRepo, s.fanout, s.tracker)
	s.postDomain = domain.NewPostDomain(s.postRepo, s.userRepo, s.fanout, s.tracker)
	s.statisticDomain = domain.NewStatisticDomain(s.leaderboard)
}
