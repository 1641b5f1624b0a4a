package gpio

import (
	"testing"
	"time"

	gpiod "github.com/warthog618/go-gpiocdev"
)

type presses struct {
	ids []uint8
}

func (p *presses) Press(id uint8) { p.ids = append(p.ids, id) }

func TestWatcherDebounce(t *testing.T) {
	tests := []struct {
		name  string
		steps []struct {
			edge gpiod.LineEventType
			at   time.Duration
		}
		want int
	}{
		{
			name: "bounce on press",
			steps: []struct {
				edge gpiod.LineEventType
				at   time.Duration
			}{
				{gpiod.LineEventRisingEdge, 0},                       // press
				{gpiod.LineEventFallingEdge, 10 * time.Millisecond},  // bounce
				{gpiod.LineEventRisingEdge, 20 * time.Millisecond},   // bounce, ignored
				{gpiod.LineEventFallingEdge, 100 * time.Millisecond}, // release
				{gpiod.LineEventRisingEdge, 200 * time.Millisecond},  // press
			},
			want: 2,
		},
		{
			name: "short tap then press",
			steps: []struct {
				edge gpiod.LineEventType
				at   time.Duration
			}{
				{gpiod.LineEventRisingEdge, 0},
				{gpiod.LineEventFallingEdge, 20 * time.Millisecond},
				{gpiod.LineEventRisingEdge, time.Second},
			},
			want: 2,
		},
		{
			name: "repeated edge without release",
			steps: []struct {
				edge gpiod.LineEventType
				at   time.Duration
			}{
				{gpiod.LineEventRisingEdge, 0},
				{gpiod.LineEventRisingEdge, time.Second},
			},
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &presses{}
			w := newWatcher(Button{Name: "top", ID: 16}, 50*time.Millisecond, p)
			base := time.Unix(1000, 0)
			for _, st := range tt.steps {
				w.now = func() time.Time { return base.Add(st.at) }
				w.handle(gpiod.LineEvent{Type: st.edge})
			}
			if len(p.ids) != tt.want {
				t.Errorf("presses = %v, want %d", p.ids, tt.want)
			}
			for _, id := range p.ids {
				if id != 16 {
					t.Errorf("pressed id %d, want 16", id)
				}
			}
		})
	}
}

func TestWatcherInverted(t *testing.T) {
	p := &presses{}
	w := newWatcher(Button{ID: 3, Inverted: true}, 0, p)
	now := time.Unix(1000, 0)

	if w.edge(gpiod.LineEventRisingEdge, now) {
		t.Error("rising edge pressed an active-low button")
	}
	if !w.edge(gpiod.LineEventFallingEdge, now.Add(time.Millisecond)) {
		t.Error("falling edge did not press an active-low button")
	}
}
