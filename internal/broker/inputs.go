package broker

import (
	"strconv"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/ledremote/internal/transport"
)

// Topics under the prefix.
const (
	TopicIRCode  = "ir/code"
	TopicRFCode  = "rf/code"
	TopicESPNow  = "espnow/+"
	TopicButton  = "button"
	TopicState   = "state"
	espnowPrefix = "espnow/"
)

// CodeSink receives raw remote codes.
type CodeSink interface {
	Push(code uint32) bool
}

// PacketSink receives ESP-NOW frames and button presses.
type PacketSink interface {
	OnPacket(src string, data []byte) error
	Press(button uint8)
}

// Topic returns prefix/name.
func Topic(prefix, name string) string {
	return prefix + "/" + name
}

// CodeHandler feeds code payloads into sink.
func CodeHandler(source string, sink CodeSink) mqtt.MessageHandler {
	return func(_ mqtt.Client, msg mqtt.Message) {
		code, err := transport.ParseCode(msg.Payload())
		if err != nil {
			log.Warn().Err(err).Str("topic", msg.Topic()).Msg("Ignoring code message")
			return
		}
		if !sink.Push(code) {
			log.Warn().Str("source", source).Uint32("code", code).Msg("Code queue full, dropping code")
		}
	}
}

// ESPNowHandler feeds raw WiZmote frames into sink. The last topic level is
// the sender MAC address.
func ESPNowHandler(sink PacketSink) mqtt.MessageHandler {
	return func(_ mqtt.Client, msg mqtt.Message) {
		topic := msg.Topic()
		i := strings.LastIndex(topic, espnowPrefix)
		if i < 0 {
			return
		}
		src := topic[i+len(espnowPrefix):]
		if err := sink.OnPacket(src, msg.Payload()); err != nil {
			log.Debug().Err(err).Str("src", src).Msg("ESP-NOW packet dropped")
		}
	}
}

// ButtonHandler presses the button id carried in the payload.
func ButtonHandler(sink PacketSink) mqtt.MessageHandler {
	return func(_ mqtt.Client, msg mqtt.Message) {
		v, err := strconv.ParseUint(strings.TrimSpace(string(msg.Payload())), 10, 8)
		if err != nil {
			log.Warn().Err(err).Str("topic", msg.Topic()).Msg("Ignoring button message")
			return
		}
		sink.Press(uint8(v))
	}
}

// Subscriber registers message handlers.
type Subscriber interface {
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
}

// Inputs lists the sinks wired to MQTT subscriptions. Nil sinks are skipped.
type Inputs struct {
	IR     CodeSink
	RF     CodeSink
	ESPNow PacketSink
}

// SubscribeInputs registers the input topics under prefix.
func SubscribeInputs(sub Subscriber, prefix string, in Inputs) error {
	if in.IR != nil {
		if err := sub.Subscribe(Topic(prefix, TopicIRCode), 0, CodeHandler("ir", in.IR)); err != nil {
			return err
		}
	}
	if in.RF != nil {
		if err := sub.Subscribe(Topic(prefix, TopicRFCode), 0, CodeHandler("rf433", in.RF)); err != nil {
			return err
		}
	}
	if in.ESPNow != nil {
		if err := sub.Subscribe(Topic(prefix, TopicESPNow), 0, ESPNowHandler(in.ESPNow)); err != nil {
			return err
		}
		if err := sub.Subscribe(Topic(prefix, TopicButton), 0, ButtonHandler(in.ESPNow)); err != nil {
			return err
		}
	}
	return nil
}
