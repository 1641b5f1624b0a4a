package broker

import (
	"context"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/dokzlo13/ledremote/internal/eventbus"
	"github.com/dokzlo13/ledremote/internal/strip"
)

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m *fakeMessage) Duplicate() bool   { return false }
func (m *fakeMessage) Qos() byte         { return 0 }
func (m *fakeMessage) Retained() bool    { return false }
func (m *fakeMessage) Topic() string     { return m.topic }
func (m *fakeMessage) MessageID() uint16 { return 0 }
func (m *fakeMessage) Payload() []byte   { return m.payload }
func (m *fakeMessage) Ack()              {}

type codeSink struct {
	codes []uint32
	full  bool
}

func (s *codeSink) Push(code uint32) bool {
	if s.full {
		return false
	}
	s.codes = append(s.codes, code)
	return true
}

type packetSink struct {
	srcs    []string
	packets [][]byte
	buttons []uint8
}

func (s *packetSink) OnPacket(src string, data []byte) error {
	s.srcs = append(s.srcs, src)
	s.packets = append(s.packets, data)
	return nil
}

func (s *packetSink) Press(button uint8) { s.buttons = append(s.buttons, button) }

type fakeSubscriber struct {
	handlers map[string]mqtt.MessageHandler
}

func (f *fakeSubscriber) Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error {
	f.handlers[topic] = handler
	return nil
}

func TestSubscribeInputs(t *testing.T) {
	sub := &fakeSubscriber{handlers: map[string]mqtt.MessageHandler{}}
	ir, rf := &codeSink{}, &codeSink{}
	esp := &packetSink{}

	if err := SubscribeInputs(sub, "home/led", Inputs{IR: ir, RF: rf, ESPNow: esp}); err != nil {
		t.Fatal(err)
	}
	if len(sub.handlers) != 4 {
		t.Fatalf("subscribed topics = %v", sub.handlers)
	}

	sub.handlers["home/led/ir/code"](nil, &fakeMessage{topic: "home/led/ir/code", payload: []byte("0xF700FF")})
	sub.handlers["home/led/rf/code"](nil, &fakeMessage{topic: "home/led/rf/code", payload: []byte("1234")})
	sub.handlers["home/led/rf/code"](nil, &fakeMessage{topic: "home/led/rf/code", payload: []byte("garbage")})
	sub.handlers["home/led/espnow/+"](nil, &fakeMessage{topic: "home/led/espnow/aabbccddeeff", payload: []byte{1, 2, 3}})
	sub.handlers["home/led/button"](nil, &fakeMessage{topic: "home/led/button", payload: []byte("16")})

	if len(ir.codes) != 1 || ir.codes[0] != 0xF700FF {
		t.Errorf("ir codes = %X", ir.codes)
	}
	if len(rf.codes) != 1 || rf.codes[0] != 1234 {
		t.Errorf("rf codes = %v", rf.codes)
	}
	if len(esp.srcs) != 1 || esp.srcs[0] != "aabbccddeeff" {
		t.Errorf("espnow srcs = %v", esp.srcs)
	}
	if len(esp.buttons) != 1 || esp.buttons[0] != 16 {
		t.Errorf("buttons = %v", esp.buttons)
	}
}

func TestSubscribeInputsSkipsNilSinks(t *testing.T) {
	sub := &fakeSubscriber{handlers: map[string]mqtt.MessageHandler{}}
	if err := SubscribeInputs(sub, "p", Inputs{RF: &codeSink{}}); err != nil {
		t.Fatal(err)
	}
	if _, ok := sub.handlers["p/rf/code"]; !ok || len(sub.handlers) != 1 {
		t.Errorf("handlers = %v", sub.handlers)
	}
}

type fakePublisher struct {
	mu       sync.Mutex
	topics   []string
	payloads []interface{}
	sent     chan struct{}
}

func (p *fakePublisher) Publish(topic string, qos byte, retained bool, payload interface{}) error {
	p.mu.Lock()
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
	p.mu.Unlock()
	p.sent <- struct{}{}
	return nil
}

func TestStatePublisherCoalesces(t *testing.T) {
	pub := &fakePublisher{sent: make(chan struct{}, 10)}
	sp := NewStatePublisher(pub, "led", 1000)

	for bri := uint8(1); bri <= 3; bri++ {
		sp.Handle(eventbus.NewEvent(eventbus.EventTypeStateUpdated, map[string]interface{}{
			eventbus.KeyCallMode: "button-triggered",
			eventbus.KeyState:    strip.State{Brightness: bri},
		}))
	}
	sp.Handle(eventbus.NewEvent(eventbus.EventTypeStateUpdated, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sp.Run(ctx)

	select {
	case <-pub.sent:
	case <-time.After(time.Second):
		t.Fatal("nothing published")
	}
	select {
	case <-pub.sent:
		t.Fatal("burst was not coalesced")
	case <-time.After(50 * time.Millisecond):
	}

	pub.mu.Lock()
	defer pub.mu.Unlock()
	if pub.topics[0] != "led/state" {
		t.Errorf("topic = %q", pub.topics[0])
	}
	msg := pub.payloads[0].(map[string]interface{})
	if st := msg["state"].(strip.State); st.Brightness != 3 {
		t.Errorf("published brightness = %d, want newest (3)", st.Brightness)
	}
}

func TestEncodePayload(t *testing.T) {
	b, err := encodePayload(map[string]int{"bri": 5})
	if err != nil || string(b) != `{"bri":5}` {
		t.Errorf("encodePayload = %s, %v", b, err)
	}
	if b, _ := encodePayload("online"); string(b) != "online" {
		t.Errorf("string payload = %s", b)
	}
}
