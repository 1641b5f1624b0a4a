package strip

// CallMode tags a state change with its origin. Consumers of state-updated
// notifications (network sync, UI push) use it to decide what to forward.
type CallMode uint8

const (
	CallModeInit CallMode = iota
	CallModeDirectChange
	CallModeButton
	CallModeNotification
	CallModeNightlight
	CallModeNoNotify
	CallModeFXChanged
	CallModeHue
	CallModePresetCycle
	CallModeBlynk
	CallModeAlexa
	CallModeWSSend
	CallModeButtonPreset
)

func (m CallMode) String() string {
	switch m {
	case CallModeInit:
		return "init"
	case CallModeDirectChange:
		return "direct-change"
	case CallModeButton:
		return "button-triggered"
	case CallModeNotification:
		return "notification"
	case CallModeNightlight:
		return "nightlight"
	case CallModeNoNotify:
		return "no-notify"
	case CallModeFXChanged:
		return "fx-changed"
	case CallModeHue:
		return "hue"
	case CallModePresetCycle:
		return "preset-cycle"
	case CallModeBlynk:
		return "blynk"
	case CallModeAlexa:
		return "alexa"
	case CallModeWSSend:
		return "ws-send"
	case CallModeButtonPreset:
		return "button-triggered-preset"
	default:
		return "unknown"
	}
}

// Notifier receives state-updated notifications.
type Notifier interface {
	StateUpdated(mode CallMode)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(mode CallMode)

// StateUpdated calls f(mode).
func (f NotifierFunc) StateUpdated(mode CallMode) { f(mode) }
