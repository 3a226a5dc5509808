// Package mqtt forwards pilot status changes to an MQTT broker.
package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/kilianp07/skylark/core/events"
	coremqtt "github.com/kilianp07/skylark/core/mqtt"
	"github.com/kilianp07/skylark/infra/logger"
	"github.com/kilianp07/skylark/internal/eventbus"
)

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// Notifier publishes StatusChangedEvents on <prefix>/pilots/<pilot>/status.
type Notifier struct {
	cli        pahoClient
	prefix     string
	qos        byte
	retain     bool
	maxRetries int
	backoff    time.Duration
	logger     logger.Logger
}

var _ coremqtt.StatusPublisher = (*Notifier)(nil)

// StatusMessage is the JSON payload sent for each status change.
type StatusMessage struct {
	EventID   string `json:"event_id"`
	Pilot     string `json:"pilot"`
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// NewNotifier connects to the broker described by cfg.
func NewNotifier(cfg Config) (*Notifier, error) {
	cfg.SetDefaults()
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	log := logger.New("mqtt_notifier")
	opts.OnConnect = func(paho.Client) { log.Infof("MQTT connected") }
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &Notifier{
		cli:        c,
		prefix:     strings.TrimSuffix(cfg.TopicPrefix, "/"),
		qos:        cfg.QoS,
		retain:     cfg.Retain,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Duration(cfg.BackoffMS) * time.Millisecond,
		logger:     log,
	}, nil
}

// Topic returns the status topic of pilot. Wildcards, separators and
// spaces in the name are replaced so the pilot stays one topic level.
func (n *Notifier) Topic(pilot string) string {
	level := strings.Map(func(r rune) rune {
		switch r {
		case '/', '+', '#', ' ':
			return '_'
		}
		return r
	}, strings.ToLower(pilot))
	return fmt.Sprintf("%s/pilots/%s/status", n.prefix, level)
}

// PublishStatus sends ev, retrying with exponential backoff.
func (n *Notifier) PublishStatus(ctx context.Context, ev events.StatusChangedEvent) error {
	if !n.cli.IsConnected() {
		return coremqtt.ErrNotConnected
	}
	payload, err := json.Marshal(StatusMessage{
		EventID:   uuid.NewString(),
		Pilot:     ev.Pilot,
		Status:    ev.Status,
		Timestamp: ev.Time.UnixMilli(),
	})
	if err != nil {
		return err
	}
	topic := n.Topic(ev.Pilot)
	var publishErr error
	for attempt := 0; attempt <= n.maxRetries; attempt++ {
		token := n.cli.Publish(topic, n.qos, n.retain, payload)
		token.Wait()
		if publishErr = token.Error(); publishErr == nil {
			n.logger.Infof("published status %s to %s", ev.Status, topic)
			return nil
		}
		n.logger.Errorf("publish attempt %d failed: %v", attempt+1, publishErr)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(n.backoff * time.Duration(1<<attempt)):
		}
	}
	return publishErr
}

// Start forwards status changes from bus until ctx is canceled or the bus
// is closed. The subscription is in place when Start returns.
func (n *Notifier) Start(ctx context.Context, bus eventbus.EventBus) {
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if e, ok := ev.(events.StatusChangedEvent); ok {
					if err := n.PublishStatus(ctx, e); err != nil {
						n.logger.Warnf("status notification for %s dropped: %v", e.Pilot, err)
					}
				}
			}
		}
	}()
}

// Disconnect gracefully closes the MQTT connection.
func (n *Notifier) Disconnect() {
	if n.cli != nil && n.cli.IsConnected() {
		n.cli.Disconnect(250)
	}
}
