package main

import (
	"fmt"
	"net/http"

	"github.com/craftloop/backend/internal/middleware"
	"github.com/craftloop/backend/pkg/router"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(ct *cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadSnowFlake()
	s.loadRedis()
	s.loadPublisher()
	s.loadRepos()
	s.loadEngines()
	s.loadDomains()
	s.loadRouter()

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", s.configs.ApiServer.Host, s.configs.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	s.logger.Infof("Starting server on port: %s", s.configs.ApiServer.Port)
	if err := httpSrv.ListenAndServe(); err != nil {
		return err
	}

	s.logger.Infof("Server stopped")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.AddCloser(middleware.Logger())

	// Public API
	publicRouter := s.router.Branch()
	{
		router.POST(publicRouter, "/register", s.userDomain.Register)
		router.POST(publicRouter, "/login", s.userDomain.Login)
		router.GET(publicRouter, "/getUser", s.userDomain.GetUser)
		router.GET(publicRouter, "/getAchievementCatalog", s.achievementDomain.GetCatalog)
		router.GET(publicRouter, "/getLeaderBoard", s.statisticDomain.GetLeaderBoard)
	}

	// These following APIs need authentication with an access token.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.NewAuthVerifier().Middleware())
	{
		// User API
		router.GET(authRouter, "/getMe", s.userDomain.GetMe)

		// Achievement API
		router.POST(authRouter, "/reportProgress", s.achievementDomain.ReportProgress)
		router.POST(authRouter, "/reportMetric", s.achievementDomain.ReportMetric)
		router.GET(authRouter, "/getMyAchievements", s.achievementDomain.GetMyAchievements)
		router.POST(authRouter, "/showcaseAchievements", s.achievementDomain.ShowcaseAchievements)
		router.GET(authRouter, "/getTransientAchievements", s.achievementDomain.GetTransient)
		router.POST(authRouter, "/dismissTransientAchievement", s.achievementDomain.DismissTransient)

		// Notification API
		router.GET(authRouter, "/getMyNotifications", s.notificationDomain.GetMyNotifications)
		router.POST(authRouter, "/markNotificationRead", s.notificationDomain.MarkRead)
		router.POST(authRouter, "/markAllNotificationsRead", s.notificationDomain.MarkAllRead)
		router.GET(authRouter, "/getMyNotificationPreferences", s.notificationDomain.GetMyPreferences)
		router.POST(authRouter, "/updateNotificationPreferences", s.notificationDomain.UpdatePreferences)

		// Follower API
		router.POST(authRouter, "/follow", s.followerDomain.Follow)
		router.POST(authRouter, "/unfollow", s.followerDomain.Unfollow)
		router.GET(authRouter, "/getFollowers", s.followerDomain.GetFollowers)
		router.GET(authRouter, "/getFollowing", s.followerDomain.GetFollowing)

		// Post API
		router.POST(authRouter, "/createPost", s.postDomain.CreatePost)
		router.GET(authRouter, "/getMyPosts", s.postDomain.GetMyPosts)
		router.POST(authRouter, "/likePost", s.postDomain.LikePost)

		// Statistic API
		router.GET(authRouter, "/getRank", s.statisticDomain.GetRank)
	}
}
