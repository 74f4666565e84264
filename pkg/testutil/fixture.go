package testutil

import (
	"context"

	"github.com/craftloop/backend/internal/entity"
	"github.com/craftloop/backend/internal/repository"
)

// InsertUsers seeds user1, user2 and user3. user2 and user3 follow user1.
func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	followerRepo := repository.NewFollowerRepository()

	for _, id := range []string{"user1", "user2", "user3"} {
		err := userRepo.Create(ctx, &entity.User{
			Base: entity.Base{ID: id},
			Name: id,
			Role: entity.UserRole,
		})
		if err != nil {
			panic(err)
		}
	}

	for _, id := range []string{"user2", "user3"} {
		err := followerRepo.Create(ctx, &entity.Follower{
			FollowerID:  id,
			FollowingID: "user1",
		})
		if err != nil {
			panic(err)
		}
	}
}

// InsertAchievements seeds a small catalog covering the creation and
// social metrics.
func InsertAchievements(ctx context.Context) {
	achievementRepo := repository.NewAchievementRepository()

	achievements := []*entity.Achievement{
		{
			Base:             entity.Base{ID: "first-post"},
			Name:             "First Post",
			Description:      "Share your first creation",
			Category:         entity.CategoryCreation,
			Rarity:           entity.RarityCommon,
			Points:           10,
			RequirementType:  "posts",
			RequirementValue: 1,
		},
		{
			Base:             entity.Base{ID: "prolific-creator"},
			Name:             "Prolific Creator",
			Description:      "Share ten creations",
			Category:         entity.CategoryCreation,
			Rarity:           entity.RarityRare,
			Points:           50,
			RequirementType:  "posts",
			RequirementValue: 10,
		},
		{
			Base:             entity.Base{ID: "social-butterfly"},
			Name:             "Social Butterfly",
			Description:      "Reach five followers",
			Category:         entity.CategorySocial,
			Rarity:           entity.RarityCommon,
			Points:           20,
			RequirementType:  "followers",
			RequirementValue: 5,
		},
	}

	for _, a := range achievements {
		if err := achievementRepo.Upsert(ctx, a); err != nil {
			panic(err)
		}
	}
}
