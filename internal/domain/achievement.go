package domain

import (
	"context"
	"errors"

	"github.com/craftloop/backend/internal/domain/achievement"
	"github.com/craftloop/backend/internal/entity"
	"github.com/craftloop/backend/internal/model"
	"github.com/craftloop/backend/internal/repository"
	"github.com/craftloop/backend/pkg/enum"
	"github.com/craftloop/backend/pkg/errorx"
	"github.com/craftloop/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type AchievementDomain interface {
	ReportProgress(context.Context, *model.ReportProgressRequest) (*model.ReportProgressResponse, error)
	ReportMetric(context.Context, *model.ReportMetricRequest) (*model.ReportMetricResponse, error)
	GetCatalog(context.Context, *model.GetCatalogRequest) (*model.GetCatalogResponse, error)
	GetMyAchievements(context.Context, *model.GetMyAchievementsRequest) (*model.GetMyAchievementsResponse, error)
	ShowcaseAchievements(context.Context, *model.ShowcaseAchievementsRequest) (*model.ShowcaseAchievementsResponse, error)
	GetTransient(context.Context, *model.GetTransientAchievementsRequest) (*model.GetTransientAchievementsResponse, error)
	DismissTransient(context.Context, *model.DismissTransientAchievementRequest) (*model.DismissTransientAchievementResponse, error)
}

type achievementDomain struct {
	achievementRepo     repository.AchievementRepository
	userAchievementRepo repository.UserAchievementRepository
	tracker             *achievement.Tracker
	transientQueue      *achievement.TransientQueue
}

func NewAchievementDomain(
	achievementRepo repository.AchievementRepository,
	userAchievementRepo repository.UserAchievementRepository,
	tracker *achievement.Tracker,
	transientQueue *achievement.TransientQueue,
) *achievementDomain {
	return &achievementDomain{
		achievementRepo:     achievementRepo,
		userAchievementRepo: userAchievementRepo,
		tracker:             tracker,
		transientQueue:      transientQueue,
	}
}

func (d *achievementDomain) ReportProgress(
	ctx context.Context, req *model.ReportProgressRequest,
) (*model.ReportProgressResponse, error) {
	if req.Value < 0 {
		return nil, errorx.New(errorx.BadRequest, "Require a non-negative value")
	}

	userID := xcontext.RequestUserID(ctx)
	state, err := d.tracker.UpdateProgress(ctx, userID, req.AchievementID, req.Value)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update progress: %v", err)
		return nil, errorx.Unknown
	}

	// Unknown achievement ids are absorbed without an error.
	if state == nil {
		return &model.ReportProgressResponse{}, nil
	}

	achievement, err := d.achievementRepo.GetByID(ctx, req.AchievementID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get achievement: %v", err)
		return nil, errorx.Unknown
	}

	converted := model.ConvertUserAchievement(state, achievement)
	return &model.ReportProgressResponse{UserAchievement: &converted}, nil
}

// ReportMetric applies one absolute metric reading to every achievement
// listening to the requirement type. It is the inbound surface for
// activity counters tracked outside this service.
func (d *achievementDomain) ReportMetric(
	ctx context.Context, req *model.ReportMetricRequest,
) (*model.ReportMetricResponse, error) {
	if req.RequirementType == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a requirement type")
	}

	if req.Value < 0 {
		return nil, errorx.New(errorx.BadRequest, "Require a non-negative value")
	}

	userID := xcontext.RequestUserID(ctx)
	if err := d.tracker.CheckProgress(ctx, userID, req.RequirementType, req.Value); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check achievement progress: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ReportMetricResponse{}, nil
}

func (d *achievementDomain) GetCatalog(
	ctx context.Context, req *model.GetCatalogRequest,
) (*model.GetCatalogResponse, error) {
	category, err := parseCategory(req.Category)
	if err != nil {
		return nil, err
	}

	achievements, err := d.achievementRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get achievement catalog: %v", err)
		return nil, errorx.Unknown
	}

	catalog := []model.Achievement{}
	for i := range achievements {
		if category != "" && achievements[i].Category != category {
			continue
		}

		catalog = append(catalog, model.ConvertAchievement(&achievements[i]))
	}

	categories := []string{}
	for _, c := range enum.ToList[entity.AchievementCategory]() {
		categories = append(categories, string(c))
	}

	return &model.GetCatalogResponse{Achievements: catalog, Categories: categories}, nil
}

func (d *achievementDomain) GetMyAchievements(
	ctx context.Context, req *model.GetMyAchievementsRequest,
) (*model.GetMyAchievementsResponse, error) {
	category, err := parseCategory(req.Category)
	if err != nil {
		return nil, err
	}

	validFilters := []string{"", "unlocked", "locked", "in_progress", "showcased", "recent"}
	if !slices.Contains(validFilters, req.Filter) {
		return nil, errorx.New(errorx.BadRequest, "Invalid filter %s", req.Filter)
	}

	userID := xcontext.RequestUserID(ctx)

	if req.Filter == "recent" {
		return d.getRecentUnlocked(ctx, userID, category)
	}

	achievements, err := d.achievementRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get achievement catalog: %v", err)
		return nil, errorx.Unknown
	}

	states, err := d.userAchievementRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user achievements: %v", err)
		return nil, errorx.Unknown
	}

	stateMap := map[string]*entity.UserAchievement{}
	for i := range states {
		stateMap[states[i].AchievementID] = &states[i]
	}

	result := []model.UserAchievement{}
	for i := range achievements {
		if category != "" && achievements[i].Category != category {
			continue
		}

		state, ok := stateMap[achievements[i].ID]
		if !ok {
			state = &entity.UserAchievement{
				UserID:        userID,
				AchievementID: achievements[i].ID,
			}
		}

		if !matchFilter(req.Filter, state) {
			continue
		}

		result = append(result, model.ConvertUserAchievement(state, &achievements[i]))
	}

	return &model.GetMyAchievementsResponse{Achievements: result}, nil
}

func (d *achievementDomain) ShowcaseAchievements(
	ctx context.Context, req *model.ShowcaseAchievementsRequest,
) (*model.ShowcaseAchievementsResponse, error) {
	maxShowcased := xcontext.Configs(ctx).Achievement.MaxShowcased
	if len(req.AchievementIDs) > maxShowcased {
		return nil, errorx.New(errorx.BadRequest,
			"Cannot showcase more than %d achievements", maxShowcased)
	}

	unique := []string{}
	for _, id := range req.AchievementIDs {
		if !slices.Contains(unique, id) {
			unique = append(unique, id)
		}
	}

	userID := xcontext.RequestUserID(ctx)
	for _, id := range unique {
		state, err := d.userAchievementRepo.Get(ctx, userID, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found achievement %s", id)
			}

			xcontext.Logger(ctx).Errorf("Cannot get user achievement: %v", err)
			return nil, errorx.Unknown
		}

		if !state.UnlockedAt.Valid {
			return nil, errorx.New(errorx.BadRequest,
				"Cannot showcase a locked achievement %s", id)
		}
	}

	if err := d.userAchievementRepo.SetShowcased(ctx, userID, unique); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot showcase achievements: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ShowcaseAchievementsResponse{}, nil
}

func (d *achievementDomain) GetTransient(
	ctx context.Context, req *model.GetTransientAchievementsRequest,
) (*model.GetTransientAchievementsResponse, error) {
	achievements := d.transientQueue.List(xcontext.RequestUserID(ctx))

	result := []model.Achievement{}
	for i := range achievements {
		result = append(result, model.ConvertAchievement(&achievements[i]))
	}

	return &model.GetTransientAchievementsResponse{Achievements: result}, nil
}

func (d *achievementDomain) DismissTransient(
	ctx context.Context, req *model.DismissTransientAchievementRequest,
) (*model.DismissTransientAchievementResponse, error) {
	d.transientQueue.Dismiss(xcontext.RequestUserID(ctx), req.AchievementID)
	return &model.DismissTransientAchievementResponse{}, nil
}

func (d *achievementDomain) getRecentUnlocked(
	ctx context.Context, userID string, category entity.AchievementCategory,
) (*model.GetMyAchievementsResponse, error) {
	limit := xcontext.Configs(ctx).Achievement.RecentLimit
	states, err := d.userAchievementRepo.GetRecentUnlocked(ctx, userID, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get recent unlocks: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.UserAchievement{}
	for i := range states {
		achievement, err := d.achievementRepo.GetByID(ctx, states[i].AchievementID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get achievement: %v", err)
			return nil, errorx.Unknown
		}

		if category != "" && achievement.Category != category {
			continue
		}

		result = append(result, model.ConvertUserAchievement(&states[i], achievement))
	}

	return &model.GetMyAchievementsResponse{Achievements: result}, nil
}

func parseCategory(s string) (entity.AchievementCategory, error) {
	if s == "" {
		return "", nil
	}

	category, err := enum.ToEnum[entity.AchievementCategory](s)
	if err != nil {
		return "", errorx.New(errorx.BadRequest, "Invalid category %s", s)
	}

	return category, nil
}

func matchFilter(filter string, state *entity.UserAchievement) bool {
	switch filter {
	case "":
		return true
	case "unlocked":
		return state.UnlockedAt.Valid
	case "locked":
		return !state.UnlockedAt.Valid
	case "in_progress":
		return !state.UnlockedAt.Valid && state.Progress > 0
	case "showcased":
		return state.Showcased
	}

	return false
}
