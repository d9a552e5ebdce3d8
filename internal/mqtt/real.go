package mqtt

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// ClientID identifies the lamp to the broker. The daemon is a singleton per
// lamp, so a fixed id is fine.
const ClientID = "candle-lamp"

// RealClient publishes to an actual MQTT broker and subscribes to the
// remote-control topic. Messages published while disconnected are held in a
// ring buffer and replayed on reconnect.
type RealClient struct {
	client    paho.Client
	onCommand CommandHandler

	mu      sync.Mutex
	pending *ringBuffer
}

// NewRealClient creates a client connected to the given broker. onCommand, if
// non-nil, receives remote-control commands from TopicSet.
func NewRealClient(broker string, onCommand CommandHandler) (*RealClient, error) {
	c := &RealClient{
		onCommand: onCommand,
		pending:   newRingBuffer(64),
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(c.onConnect).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Printf("mqtt: connection lost: %v", err)
		})

	c.client = paho.NewClient(opts)
	token := c.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		// ConnectRetry keeps trying in the background; the lamp animates
		// regardless, and the ring buffer holds messages until then.
		log.Printf("mqtt: broker %s not reachable yet, retrying in background", broker)
		return c, nil
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return c, nil
}

// onConnect runs on every (re)connect: resubscribe to the control topic and
// replay anything buffered while offline.
func (c *RealClient) onConnect(client paho.Client) {
	if c.onCommand != nil {
		token := client.Subscribe(TopicSet, 1, c.handleSet)
		if token.WaitTimeout(5*time.Second) && token.Error() != nil {
			log.Printf("mqtt: subscribe %s: %v", TopicSet, token.Error())
		}
	}

	c.mu.Lock()
	msgs := c.pending.drainAll()
	c.mu.Unlock()

	if len(msgs) > 0 {
		log.Printf("mqtt: replaying %d buffered messages", len(msgs))
	}
	for _, m := range msgs {
		c.send(m.topic, m.qos, m.retained, m.payload)
	}
}

func (c *RealClient) handleSet(_ paho.Client, msg paho.Message) {
	cmd, err := ParseCommand(msg.Payload())
	if err != nil {
		log.Printf("mqtt: bad command on %s: %v", msg.Topic(), err)
		return
	}
	c.onCommand(cmd)
}

// Publish sends a lamp event to the MQTT broker.
func (c *RealClient) Publish(event Event) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	// QoS 1 (at-least-once): toggles and maintenance triggers must reach
	// the accessory side.
	return c.publishOrBuffer(Topic, 1, false, payload)
}

// PublishSystem sends a system lifecycle event to the MQTT broker.
func (c *RealClient) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}

	return c.publishOrBuffer(TopicSystem, 1, event.Retained, payload)
}

// publishOrBuffer sends immediately when connected, otherwise queues for
// replay on reconnect.
func (c *RealClient) publishOrBuffer(topic string, qos byte, retained bool, payload []byte) error {
	if !c.client.IsConnected() {
		c.mu.Lock()
		dropped := c.pending.push(bufferedMsg{topic: topic, payload: payload, qos: qos, retained: retained})
		n := c.pending.len()
		c.mu.Unlock()
		if dropped {
			log.Printf("mqtt: offline buffer full (%d messages), dropped oldest", n)
		}
		return nil
	}

	return c.send(topic, qos, retained, payload)
}

func (c *RealClient) send(topic string, qos byte, retained bool, payload []byte) error {
	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout on %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// IsConnected reports whether the broker connection is up.
func (c *RealClient) IsConnected() bool {
	return c.client.IsConnected()
}

// Close disconnects from the broker.
func (c *RealClient) Close() error {
	c.client.Disconnect(1000) // 1 second timeout
	return nil
}
