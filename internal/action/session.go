package action

import (
	"math/rand"
	"time"
)

// NightModeDeactivated marks the saved brightness as unset.
const NightModeDeactivated = -1

// NightModeBrightness is the brightness forced while night mode is active.
const NightModeBrightness = 5

// Session holds the state remote actions keep between calls: the brightness
// saved when night mode was entered and the color-cycle cursor. One session
// exists per device; engines with different scopes share it.
type Session struct {
	brightnessBeforeNightMode int
	colorCycleIndex           int

	rand *rand.Rand
	now  func() time.Time
}

// NewSession creates a session with night mode inactive.
func NewSession() *Session {
	return &Session{
		brightnessBeforeNightMode: NightModeDeactivated,
		rand:                      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:                       time.Now,
	}
}

// NightModeActive reports whether night mode is active.
func (s *Session) NightModeActive() bool {
	return s.brightnessBeforeNightMode != NightModeDeactivated
}

// BrightnessBeforeNightMode returns the saved brightness, or NightModeDeactivated.
func (s *Session) BrightnessBeforeNightMode() int {
	return s.brightnessBeforeNightMode
}

// ColorCycleIndex returns the position of the color-cycle cursor.
func (s *Session) ColorCycleIndex() int {
	return s.colorCycleIndex
}

// SetClock overrides the time source.
func (s *Session) SetClock(now func() time.Time) {
	s.now = now
}

// SetRand overrides the random source.
func (s *Session) SetRand(r *rand.Rand) {
	s.rand = r
}

// Intn returns a random number in [0, n).
func (s *Session) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.rand.Intn(n)
}
