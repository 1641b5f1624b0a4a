package app

import (
	"fmt"

	"github.com/dokzlo13/ledremote/internal/eventbus"
	"github.com/dokzlo13/ledremote/internal/remote"
	"github.com/dokzlo13/ledremote/internal/transport"
)

// codeTap publishes a code event for every code handed to a poller.
type codeTap struct {
	rx     transport.Receiver
	bus    *eventbus.Bus
	source string
}

func (t *codeTap) Poll() (uint32, bool) {
	code, ok := t.rx.Poll()
	if ok {
		t.bus.Publish(eventbus.NewEvent(eventbus.EventTypeCode, map[string]interface{}{
			eventbus.KeySource: t.source,
			eventbus.KeyCode:   fmt.Sprintf("0x%X", code),
		}))
	}
	return code, ok
}

// buttonTap publishes a button event for every accepted packet or press
// before handing it to the adapter.
type buttonTap struct {
	next *remote.Adapter
	bus  *eventbus.Bus
}

func (t *buttonTap) OnPacket(src string, data []byte) error {
	if err := t.next.OnPacket(src, data); err != nil {
		return err
	}
	pkt, err := remote.ParsePacket(data)
	if err == nil {
		t.publish("espnow:"+src, pkt.Button)
	}
	return nil
}

func (t *buttonTap) Press(button uint8) {
	t.next.Press(button)
	t.publish("press", button)
}

func (t *buttonTap) publish(source string, button uint8) {
	t.bus.Publish(eventbus.NewEvent(eventbus.EventTypeButton, map[string]interface{}{
		eventbus.KeySource: source,
		eventbus.KeyButton: button,
	}))
}
