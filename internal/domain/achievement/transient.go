package achievement

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/craftloop/backend/internal/entity"
	"github.com/puzpuzpuz/xsync"
)

// TransientQueue holds unlock toasts for the unlocking user's session.
// Entries live for a fixed window from insertion, each with its own
// timer, so dismissing or expiring one never disturbs the others. Nothing
// here is persisted.
type TransientQueue struct {
	window    time.Duration
	scheduler Scheduler
	queues    *xsync.MapOf[string, *transientList]
	seq       int64
}

type transientItem struct {
	id          int64
	achievement entity.Achievement
	pushedAt    time.Time
	cancel      CancelFunc
}

type transientList struct {
	mutex sync.Mutex
	items []*transientItem
}

func NewTransientQueue(window time.Duration, scheduler Scheduler) *TransientQueue {
	return &TransientQueue{
		window:    window,
		scheduler: scheduler,
		queues:    xsync.NewMapOf[*transientList](),
	}
}

// Push appends a toast for the user and arms its expiry timer.
func (q *TransientQueue) Push(userID string, achievement entity.Achievement) {
	list, _ := q.queues.LoadOrStore(userID, &transientList{})

	item := &transientItem{
		id:          atomic.AddInt64(&q.seq, 1),
		achievement: achievement,
		pushedAt:    time.Now(),
	}

	// Arm the timer while holding the lock so an immediate expiry cannot
	// run before the item is visible.
	list.mutex.Lock()
	item.cancel = q.scheduler.Schedule(q.window, func() {
		q.removeByID(userID, item.id)
	})
	list.items = append(list.items, item)
	list.mutex.Unlock()
}

// Dismiss removes the first entry matching the achievement id. Its timer
// is cancelled; all other entries keep their own windows.
func (q *TransientQueue) Dismiss(userID, achievementID string) {
	list, ok := q.queues.Load(userID)
	if !ok {
		return
	}

	var cancel CancelFunc
	list.mutex.Lock()
	for i, item := range list.items {
		if item.achievement.ID == achievementID {
			cancel = item.cancel
			list.items = append(list.items[:i], list.items[i+1:]...)
			break
		}
	}
	list.mutex.Unlock()

	if cancel != nil {
		cancel()
	}
}

// List returns the achievements currently visible to the user, oldest
// first.
func (q *TransientQueue) List(userID string) []entity.Achievement {
	list, ok := q.queues.Load(userID)
	if !ok {
		return nil
	}

	list.mutex.Lock()
	defer list.mutex.Unlock()

	result := make([]entity.Achievement, 0, len(list.items))
	for _, item := range list.items {
		result = append(result, item.achievement)
	}

	return result
}

func (q *TransientQueue) removeByID(userID string, itemID int64) {
	list, ok := q.queues.Load(userID)
	if !ok {
		return
	}

	list.mutex.Lock()
	defer list.mutex.Unlock()

	for i, item := range list.items {
		if item.id == itemID {
			list.items = append(list.items[:i], list.items[i+1:]...)
			return
		}
	}
}
