// Package notify carries best-effort messages between mini-applications,
// such as the file browser handing a path to the notepad.
package notify

import (
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/pubsub"
)

// Payload is the data handed to the target app.
type Payload struct {
	Path string `json:"path"`
}

// Message addresses a payload to an app by name.
type Message struct {
	Target  string  `json:"target"`
	Payload Payload `json:"payload"`
}

// Bus routes messages to the listeners attached for their target app.
// Delivery is synchronous and unacknowledged.
type Bus struct {
	mu     sync.Mutex
	topics map[string]*pubsub.Topic[Message]

	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// NewBus creates an empty bus
func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		topics: make(map[string]*pubsub.Topic[Message]),
		logger: logger,
	}
}

// WithMetrics adds delivery metrics to the bus
func (b *Bus) WithMetrics(metrics *monitoring.Metrics) *Bus {
	b.metrics = metrics
	return b
}

// Attach listens for messages targeting app until detach is called. The
// app's topic is dropped once its last listener detaches.
func (b *Bus) Attach(app string, listener func(Message)) (detach func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	topic, ok := b.topics[app]
	if !ok {
		topic = pubsub.NewTopic[Message]()
		b.topics[app] = topic
	}
	unsubscribe := topic.Subscribe(listener)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		unsubscribe()
		if topic.Len() == 0 && b.topics[app] == topic {
			delete(b.topics, app)
		}
	}
}

// Send delivers msg to every listener attached for its target. It reports
// false, dropping the message, when nothing is attached.
func (b *Bus) Send(msg Message) bool {
	b.mu.Lock()
	topic, ok := b.topics[msg.Target]
	b.mu.Unlock()

	delivered := ok && topic.Publish(msg) > 0
	if !delivered {
		b.logger.Debug("Dropped notification with no listener",
			zap.String("target", msg.Target),
			zap.String("path", msg.Payload.Path))
	}
	if b.metrics != nil {
		b.metrics.RecordNotification(msg.Target, delivered)
	}
	return delivered
}

// Listeners returns how many listeners are attached for app
func (b *Bus) Listeners(app string) int {
	b.mu.Lock()
	topic, ok := b.topics[app]
	b.mu.Unlock()

	if !ok {
		return 0
	}
	return topic.Len()
}
