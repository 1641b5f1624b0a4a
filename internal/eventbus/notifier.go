package eventbus

import (
	"github.com/dokzlo13/ledremote/internal/strip"
)

// Event data keys. State-updated events carry call mode, source and state;
// code and button events carry source and code or button.
const (
	KeyCallMode = "call_mode"
	KeySource   = "source"
	KeyState    = "state"
	KeyCode     = "code"
	KeyButton   = "button"
)

// StateNotifier publishes state-updated notifications on the bus. It must be
// called from the goroutine that owns the strip: the strip state is
// snapshotted into the event before it leaves that goroutine.
type StateNotifier struct {
	bus    *Bus
	strip  *strip.Strip
	source string
}

// NewStateNotifier creates a notifier tagging events with source.
func NewStateNotifier(bus *Bus, s *strip.Strip, source string) *StateNotifier {
	return &StateNotifier{bus: bus, strip: s, source: source}
}

// WithSource returns a notifier for the same bus and strip with a different source tag.
func (n *StateNotifier) WithSource(source string) *StateNotifier {
	return &StateNotifier{bus: n.bus, strip: n.strip, source: source}
}

// StateUpdated implements strip.Notifier.
func (n *StateNotifier) StateUpdated(mode strip.CallMode) {
	data := map[string]interface{}{
		KeyCallMode: mode.String(),
		KeySource:   n.source,
	}
	if n.strip != nil {
		data[KeyState] = n.strip.Snapshot()
	}
	n.bus.Publish(NewEvent(EventTypeStateUpdated, data))
}
