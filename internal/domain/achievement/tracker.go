package achievement

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/craftloop/backend/internal/domain/notification"
	"github.com/craftloop/backend/internal/domain/notification/event"
	"github.com/craftloop/backend/internal/domain/statistic"
	"github.com/craftloop/backend/internal/entity"
	"github.com/craftloop/backend/internal/repository"
	"github.com/craftloop/backend/pkg/xcontext"
	"github.com/puzpuzpuz/xsync"
	"gorm.io/gorm"
)

// Tracker drives per-user achievement progress and performs unlocks.
//
// Progress is monotone: an update can only raise the recorded value, and
// it is clamped to the achievement target. The moment progress reaches
// the target the unlock runs in the same call: unlocked_at is stamped
// exactly once, points are awarded exactly once, and one transient toast
// is enqueued. Re-reports after unlock are absorbed.
//
// Read-modify-write for one user is serialized by a per-user mutex, and
// the unlock itself uses a conditional update, so two devices reporting
// simultaneously cannot double-unlock or lose progress.
type Tracker struct {
	achievementRepo     repository.AchievementRepository
	userAchievementRepo repository.UserAchievementRepository
	userRepo            repository.UserRepository

	transientQueue *TransientQueue

	// fanout and leaderboard are best-effort collaborators; either may be
	// nil and neither can fail an unlock.
	fanout      *notification.Fanout
	leaderboard statistic.Leaderboard

	userLocks *xsync.MapOf[string, *sync.Mutex]
}

func NewTracker(
	achievementRepo repository.AchievementRepository,
	userAchievementRepo repository.UserAchievementRepository,
	userRepo repository.UserRepository,
	transientQueue *TransientQueue,
	fanout *notification.Fanout,
	leaderboard statistic.Leaderboard,
) *Tracker {
	return &Tracker{
		achievementRepo:     achievementRepo,
		userAchievementRepo: userAchievementRepo,
		userRepo:            userRepo,
		transientQueue:      transientQueue,
		fanout:              fanout,
		leaderboard:         leaderboard,
		userLocks:           xsync.NewMapOf[*sync.Mutex](),
	}
}

// CheckProgress applies one absolute metric reading to every achievement
// driven by the given requirement type. Each achievement's progress is
// capped at its own requirement value, so a single reading can complete
// a small achievement while only advancing a bigger one.
func (t *Tracker) CheckProgress(
	ctx context.Context, userID, requirementType string, value int,
) error {
	achievements, err := t.achievementRepo.GetByRequirementType(ctx, requirementType)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get achievements of type %s: %v", requirementType, err)
		return err
	}

	if len(achievements) == 0 {
		xcontext.Logger(ctx).Debugf("No achievement listens to metric %s", requirementType)
		return nil
	}

	states, err := t.userAchievementRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user achievements: %v", err)
		return err
	}

	unlocked := map[string]bool{}
	for _, state := range states {
		if state.UnlockedAt.Valid {
			unlocked[state.AchievementID] = true
		}
	}

	for _, achievement := range achievements {
		if unlocked[achievement.ID] {
			continue
		}

		capped := value
		if capped > achievement.RequirementValue {
			capped = achievement.RequirementValue
		}

		if _, err := t.UpdateProgress(ctx, userID, achievement.ID, capped); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update progress of %s: %v", achievement.ID, err)
		}
	}

	return nil
}

// UpdateProgress records an absolute metric reading for one achievement
// and unlocks it when the target is reached. An unknown achievement id is
// a reported no-op, not an error; progress events may reference
// achievements that are not catalogued in this deployment.
func (t *Tracker) UpdateProgress(
	ctx context.Context, userID, achievementID string, value int,
) (*entity.UserAchievement, error) {
	achievement, err := t.achievementRepo.GetByID(ctx, achievementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Warnf("Progress reported for unknown achievement %s", achievementID)
			return nil, nil
		}

		return nil, err
	}

	lock := t.lockOf(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := t.userAchievementRepo.Create(ctx, &entity.UserAchievement{
		UserID:        userID,
		AchievementID: achievementID,
	}); err != nil {
		return nil, err
	}

	state, err := t.userAchievementRepo.Get(ctx, userID, achievementID)
	if err != nil {
		return nil, err
	}

	// Unlock is terminal. Later reports never move progress or the stamp.
	if state.UnlockedAt.Valid {
		return state, nil
	}

	target := achievement.Target()
	progress := value
	if progress > target {
		progress = target
	}

	// The threshold-crossing write rides the unlock transaction, so a
	// reader can never observe full progress without the unlock stamp.
	if progress >= target {
		return t.unlock(ctx, userID, achievement, state)
	}

	// Regressions in the reported metric are dropped to keep progress
	// monotone under out-of-order delivery.
	if progress > state.Progress {
		if err := t.userAchievementRepo.UpdateProgress(ctx, userID, achievementID, progress); err != nil {
			return nil, err
		}

		state.Progress = progress
	}

	return state, nil
}

// unlock performs the one-way transition. The caller holds the user lock.
func (t *Tracker) unlock(
	ctx context.Context, userID string, achievement *entity.Achievement, state *entity.UserAchievement,
) (*entity.UserAchievement, error) {
	now := time.Now()
	target := achievement.Target()

	txCtx := xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(txCtx)

	won, err := t.userAchievementRepo.Unlock(txCtx, userID, achievement.ID, now, target)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unlock achievement %s: %v", achievement.ID, err)
		return nil, err
	}

	// Another writer got there first; absorb silently.
	if !won {
		return t.userAchievementRepo.Get(ctx, userID, achievement.ID)
	}

	if err := t.userRepo.IncreasePoints(txCtx, userID, achievement.Points); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot award points of %s: %v", achievement.ID, err)
		return nil, err
	}

	xcontext.WithCommitDBTransaction(txCtx)

	state.Progress = target
	state.UnlockedAt.Valid = true
	state.UnlockedAt.Time = now

	if t.transientQueue != nil {
		t.transientQueue.Push(userID, *achievement)
	}

	if t.leaderboard != nil {
		err := t.leaderboard.ChangePointLeaderboard(ctx, int64(achievement.Points), now, userID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot update leaderboard: %v", err)
		}
	}

	if t.fanout != nil {
		err := t.fanout.NotifyFollowers(ctx, userID, event.AchievementUnlockedEvent{
			AchievementID:   achievement.ID,
			AchievementName: achievement.Name,
		})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot notify followers about unlock: %v", err)
		}
	}

	return state, nil
}

func (t *Tracker) lockOf(userID string) *sync.Mutex {
	lock, _ := t.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return lock
}
