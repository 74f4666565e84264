package achievement

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/craftloop/backend/internal/repository"
	"github.com/craftloop/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestTracker() (*Tracker, *TransientQueue) {
	queue := NewTransientQueue(time.Minute, NewTimerScheduler())
	tracker := NewTracker(
		repository.NewAchievementRepository(),
		repository.NewUserAchievementRepository(),
		repository.NewUserRepository(),
		queue,
		nil,
		nil,
	)

	return tracker, queue
}

func Test_Tracker_ProgressIsMonotone(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	testutil.InsertAchievements(ctx)
	tracker, _ := newTestTracker()

	state, err := tracker.UpdateProgress(ctx, "user1", "prolific-creator", 4)
	require.NoError(t, err)
	require.Equal(t, 4, state.Progress)
	require.False(t, state.UnlockedAt.Valid)

	// A stale lower reading must not move progress backwards.
	state, err = tracker.UpdateProgress(ctx, "user1", "prolific-creator", 3)
	require.NoError(t, err)
	require.Equal(t, 4, state.Progress)
	require.False(t, state.UnlockedAt.Valid)

	state, err = tracker.UpdateProgress(ctx, "user1", "prolific-creator", 7)
	require.NoError(t, err)
	require.Equal(t, 7, state.Progress)
}

func Test_Tracker_ProgressIsClampedToTarget(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	testutil.InsertAchievements(ctx)
	tracker, _ := newTestTracker()

	state, err := tracker.UpdateProgress(ctx, "user1", "prolific-creator", 25)
	require.NoError(t, err)
	require.Equal(t, 10, state.Progress)
	require.True(t, state.UnlockedAt.Valid)
}

func Test_Tracker_UnlockHappensExactlyOnce(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	testutil.InsertAchievements(ctx)
	tracker, queue := newTestTracker()

	state, err := tracker.UpdateProgress(ctx, "user1", "first-post", 1)
	require.NoError(t, err)
	require.True(t, state.UnlockedAt.Valid)
	unlockedAt := state.UnlockedAt.Time

	// A duplicate report must not restamp, re-award or re-toast.
	state, err = tracker.UpdateProgress(ctx, "user1", "first-post", 1)
	require.NoError(t, err)
	require.True(t, state.UnlockedAt.Valid)
	require.Equal(t, unlockedAt.Unix(), state.UnlockedAt.Time.Unix())

	user, err := repository.NewUserRepository().GetByID(ctx, "user1")
	require.NoError(t, err)
	require.EqualValues(t, 10, user.TotalPoints)

	require.Len(t, queue.List("user1"), 1)
}

func Test_Tracker_ConcurrentReportsUnlockOnce(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	testutil.InsertAchievements(ctx)
	tracker, queue := newTestTracker()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := tracker.UpdateProgress(ctx, "user1", "first-post", 1)
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	user, err := repository.NewUserRepository().GetByID(ctx, "user1")
	require.NoError(t, err)
	require.EqualValues(t, 10, user.TotalPoints)

	require.Len(t, queue.List("user1"), 1)
}

func Test_Tracker_UnknownAchievementIsNoop(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	testutil.InsertAchievements(ctx)
	tracker, _ := newTestTracker()

	state, err := tracker.UpdateProgress(ctx, "user1", "does-not-exist", 3)
	require.NoError(t, err)
	require.Nil(t, state)
}

func Test_Tracker_CheckProgressAdvancesEveryListener(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	testutil.InsertAchievements(ctx)
	tracker, queue := newTestTracker()

	// One post: first-post unlocks, prolific-creator only advances.
	require.NoError(t, tracker.CheckProgress(ctx, "user1", "posts", 1))

	userAchievementRepo := repository.NewUserAchievementRepository()

	first, err := userAchievementRepo.Get(ctx, "user1", "first-post")
	require.NoError(t, err)
	require.True(t, first.UnlockedAt.Valid)
	require.Equal(t, 1, first.Progress)

	prolific, err := userAchievementRepo.Get(ctx, "user1", "prolific-creator")
	require.NoError(t, err)
	require.False(t, prolific.UnlockedAt.Valid)
	require.Equal(t, 1, prolific.Progress)

	user, err := repository.NewUserRepository().GetByID(ctx, "user1")
	require.NoError(t, err)
	require.EqualValues(t, 10, user.TotalPoints)

	require.Len(t, queue.List("user1"), 1)

	// An unlocked achievement is skipped on later readings.
	require.NoError(t, tracker.CheckProgress(ctx, "user1", "posts", 4))

	prolific, err = userAchievementRepo.Get(ctx, "user1", "prolific-creator")
	require.NoError(t, err)
	require.Equal(t, 4, prolific.Progress)

	user, err = repository.NewUserRepository().GetByID(ctx, "user1")
	require.NoError(t, err)
	require.EqualValues(t, 10, user.TotalPoints)
	require.Len(t, queue.List("user1"), 1)
}

func Test_Tracker_LockIsStablePerUser(t *testing.T) {
	tracker, _ := newTestTracker()

	require.Same(t, tracker.lockOf("user1"), tracker.lockOf("user1"))
	require.NotSame(t, tracker.lockOf("user1"), tracker.lockOf("user2"))
}

type failingPointsUserRepo struct {
	repository.UserRepository
}

func (failingPointsUserRepo) IncreasePoints(context.Context, string, uint64) error {
	return errors.New("points ledger is down")
}

func Test_Tracker_FailedPointAwardLeavesNoPartialState(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	testutil.InsertAchievements(ctx)

	queue := NewTransientQueue(time.Minute, NewTimerScheduler())
	broken := NewTracker(
		repository.NewAchievementRepository(),
		repository.NewUserAchievementRepository(),
		failingPointsUserRepo{repository.NewUserRepository()},
		queue,
		nil,
		nil,
	)

	_, err := broken.UpdateProgress(ctx, "user1", "first-post", 1)
	require.Error(t, err)

	// The rolled back unlock must not leave full progress without the
	// stamp, and no toast may appear.
	state, err := repository.NewUserAchievementRepository().Get(ctx, "user1", "first-post")
	require.NoError(t, err)
	require.Equal(t, 0, state.Progress)
	require.False(t, state.UnlockedAt.Valid)
	require.Empty(t, queue.List("user1"))

	// A later report through a healthy tracker completes the unlock.
	tracker, _ := newTestTracker()
	state, err = tracker.UpdateProgress(ctx, "user1", "first-post", 1)
	require.NoError(t, err)
	require.True(t, state.UnlockedAt.Valid)
	require.Equal(t, 1, state.Progress)
}
