package entity

import "github.com/craftloop/backend/pkg/enum"

type AchievementCategory string

var (
	CategoryParticipation = enum.New(AchievementCategory("participation"))
	CategoryCreation      = enum.New(AchievementCategory("creation"))
	CategorySocial        = enum.New(AchievementCategory("social"))
	CategoryLearning      = enum.New(AchievementCategory("learning"))
	CategoryStreak        = enum.New(AchievementCategory("streak"))
)

type AchievementRarity string

var (
	RarityCommon    = enum.New(AchievementRarity("common"))
	RarityRare      = enum.New(AchievementRarity("rare"))
	RarityEpic      = enum.New(AchievementRarity("epic"))
	RarityLegendary = enum.New(AchievementRarity("legendary"))
)

// Achievement is one catalog definition. The catalog is seeded at process
// start and readonly afterwards; user progress lives in UserAchievement.
type Achievement struct {
	Base
	Name        string
	Description string
	Icon        string
	Category    AchievementCategory
	Rarity      AchievementRarity
	Points      uint64

	// RequirementType tags the metric driving this achievement, e.g.
	// "posts" or "login_streak". RequirementValue is the threshold that
	// unlocks it.
	RequirementType  string `gorm:"index"`
	RequirementValue int

	// MaxProgress defaults to RequirementValue when zero.
	MaxProgress int
}

// Target returns the effective progress ceiling.
func (a *Achievement) Target() int {
	if a.MaxProgress > 0 {
		return a.MaxProgress
	}

	return a.RequirementValue
}
