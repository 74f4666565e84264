package testutil

import (
	"context"
	"sync"

	"github.com/craftloop/backend/pkg/pubsub"
)

// MockPublisher records published packs per topic.
type MockPublisher struct {
	mutex sync.Mutex
	packs map[string][]*pubsub.Pack

	PublishFunc func(context.Context, string, *pubsub.Pack) error
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.packs == nil {
		m.packs = map[string][]*pubsub.Pack{}
	}

	m.packs[topic] = append(m.packs[topic], pack)
	return nil
}

func (m *MockPublisher) Stop(ctx context.Context) error {
	return nil
}

func (m *MockPublisher) Published(topic string) []*pubsub.Pack {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return append([]*pubsub.Pack{}, m.packs[topic]...)
}
