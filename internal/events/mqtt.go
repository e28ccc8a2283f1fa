// Package events publishes bus lifecycle events to an MQTT broker so
// other consoles and downstream consumers can react to archive, restore
// and delete operations without polling.
package events

import (
	"encoding/json"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/qnextlabs/fleet-console/internal/models"
)

const (
	defaultTopicPrefix = "fleet-console"
	connectTimeout     = 5 * time.Second
	publishTimeout     = 2 * time.Second
)

// Publisher emits lifecycle events over MQTT. A Publisher with no broker
// configured is a no-op, so callers never need to nil-check.
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
}

// payload is the wire shape of one lifecycle event.
type payload struct {
	Event     string       `json:"event"`
	Buses     []models.Bus `json:"buses"`
	Timestamp int64        `json:"timestamp"` // epoch milliseconds
}

// NewPublisher connects to the broker and returns a publisher. An empty
// brokerURL yields a no-op publisher; a connection failure is logged and
// also degrades to no-op rather than blocking startup.
func NewPublisher(brokerURL, topicPrefix string) *Publisher {
	if topicPrefix == "" {
		topicPrefix = defaultTopicPrefix
	}
	p := &Publisher{topicPrefix: topicPrefix}

	if brokerURL == "" {
		return p
	}

	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID("fleet-console").
		SetConnectTimeout(connectTimeout).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) || token.Error() != nil {
		log.WithField("broker", brokerURL).WithError(token.Error()).
			Warn("MQTT connect failed, lifecycle events disabled")
		return p
	}

	p.client = client
	return p
}

// LifecycleEvent publishes one event to <prefix>/buses/<event>. Publish
// failures are logged and dropped; events are advisory and never affect
// the operation that produced them.
func (p *Publisher) LifecycleEvent(event string, buses []models.Bus) {
	if p == nil || p.client == nil {
		return
	}

	body, err := json.Marshal(payload{
		Event:     event,
		Buses:     buses,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		log.WithError(err).Error("failed to encode lifecycle event")
		return
	}

	topic := p.topicPrefix + "/buses/" + event
	token := p.client.Publish(topic, 0, false, body)
	if !token.WaitTimeout(publishTimeout) || token.Error() != nil {
		log.WithFields(log.Fields{
			"topic": topic,
			"event": event,
		}).WithError(token.Error()).Warn("failed to publish lifecycle event")
	}
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	if p == nil || p.client == nil {
		return
	}
	p.client.Disconnect(250)
}
