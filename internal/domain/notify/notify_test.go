package notify

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/monitoring"
	helpers "github.com/GriffinCanCode/WebDesk/backend/tests/helpers/testutil"
)

func TestSendWithoutListenerIsDropped(t *testing.T) {
	bus := NewBus(nil)
	assert.False(t, bus.Send(Message{Target: "notepad", Payload: Payload{Path: "/a.txt"}}))
}

func TestSendDeliversToTargetOnly(t *testing.T) {
	bus := NewBus(nil)

	var notepad, calculator []Message
	bus.Attach("notepad", func(m Message) { notepad = append(notepad, m) })
	bus.Attach("calculator", func(m Message) { calculator = append(calculator, m) })

	msg := Message{Target: "notepad", Payload: Payload{Path: "/docs/todo.txt"}}
	require.True(t, bus.Send(msg))

	assert.Equal(t, []Message{msg}, notepad)
	assert.Empty(t, calculator)
}

func TestDetach(t *testing.T) {
	bus := NewBus(nil)

	calls := 0
	detach := bus.Attach("notepad", func(Message) { calls++ })
	assert.Equal(t, 1, bus.Listeners("notepad"))

	detach()
	detach()

	assert.Equal(t, 0, bus.Listeners("notepad"))
	assert.False(t, bus.Send(Message{Target: "notepad"}))
	assert.Equal(t, 0, calls)
}

func TestDetachDropsEmptyTopics(t *testing.T) {
	bus := NewBus(nil)

	var detaches []func()
	for i := 0; i < 100; i++ {
		detaches = append(detaches, bus.Attach(fmt.Sprintf("app%d", i), func(Message) {}))
	}
	keep := bus.Attach("notepad", func(Message) {})
	second := bus.Attach("notepad", func(Message) {})
	assert.Len(t, bus.topics, 101)

	for _, detach := range detaches {
		detach()
	}
	second()
	assert.Len(t, bus.topics, 1)
	assert.Equal(t, 1, bus.Listeners("notepad"))

	keep()
	assert.Empty(t, bus.topics)

	// A fresh attach after pruning still receives messages
	got := 0
	bus.Attach("notepad", func(Message) { got++ })
	require.True(t, bus.Send(Message{Target: "notepad"}))
	assert.Equal(t, 1, got)
}

func TestDetachFromListener(t *testing.T) {
	bus := NewBus(nil)

	var detach func()
	calls := 0
	detach = bus.Attach("notepad", func(Message) {
		calls++
		detach()
	})

	require.True(t, bus.Send(Message{Target: "notepad"}))
	assert.False(t, bus.Send(Message{Target: "notepad"}))
	assert.Equal(t, 1, calls)
	assert.Empty(t, bus.topics)
}

func TestSendRecordsMetrics(t *testing.T) {
	metrics := monitoring.NewMetrics()
	bus := NewBus(nil).WithMetrics(metrics)
	bus.Attach("notepad", func(Message) {})

	bus.Send(Message{Target: "notepad"})
	bus.Send(Message{Target: "paint"})

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Notifications.WithLabelValues("notepad", "delivered")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Notifications.WithLabelValues("paint", "dropped")))
}

func TestLauncherOpenFile(t *testing.T) {
	registry := helpers.NewTestRegistry(t)
	bus := NewBus(nil)
	launcher := NewLauncher(bus, registry)

	var received []string
	bus.Attach("notepad", func(m Message) { received = append(received, m.Payload.Path) })

	result := launcher.OpenFile("/notes.txt", "notepad")
	assert.True(t, result.Opened)
	assert.True(t, result.Delivered)
	assert.Equal(t, []string{"/notes.txt"}, received)

	current, ok := registry.CurrentWindow()
	require.True(t, ok)
	assert.Equal(t, result.WindowID, current)
}

func TestLauncherUnknownApp(t *testing.T) {
	registry := helpers.NewTestRegistry(t)
	launcher := NewLauncher(NewBus(nil), registry)

	result := launcher.OpenFile("/notes.txt", "paint")
	assert.False(t, result.Opened)
	assert.False(t, result.Delivered)
	assert.Empty(t, registry.Windows())
}
