package publisher

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/jgoulah/curvedash/internal/classify"
	"github.com/jgoulah/curvedash/internal/config"
	"github.com/jgoulah/curvedash/pkg/models"
)

const publishTimeout = 10 * time.Second

// Publisher sends curve changes to an MQTT broker
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
}

// New connects to the configured MQTT broker
func New(cfg config.MQTTConfig) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("MQTT publishing is not enabled in config")
	}
	if cfg.Broker == "" {
		return nil, fmt.Errorf("MQTT broker address is required when enabled")
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", cfg.Broker))
	opts.SetClientID(cfg.GetClientID())
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(10 * time.Second)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
	}

	return newWithClient(client, cfg.GetTopicPrefix()), nil
}

func newWithClient(client mqtt.Client, topicPrefix string) *Publisher {
	return &Publisher{client: client, topicPrefix: strings.TrimSuffix(topicPrefix, "/")}
}

// ChangePayload is the retained message published per curve
type ChangePayload struct {
	CurveID   string   `json:"curve_id"`
	Class     string   `json:"class"`
	Date      string   `json:"date"`
	Value     float64  `json:"value"`
	PctChange *float64 `json:"pct_change"` // null unless the change is defined
	Status    string   `json:"status"`
}

// NewChangePayload builds the message for a change row
func NewChangePayload(row models.ChangeRow) ChangePayload {
	p := ChangePayload{
		CurveID: row.CurveID,
		Class:   classify.Classify(row.CurveID).String(),
		Date:    row.Date.Format("2006-01-02"),
		Value:   row.Value,
		Status:  row.Status.String(),
	}
	if row.Defined() {
		pct := row.PctChange
		p.PctChange = &pct
	}
	return p
}

// Topic returns the topic a curve's change is published to
func (p *Publisher) Topic(curveID string) string {
	return fmt.Sprintf("%s/%s/dod", p.topicPrefix, Slug(curveID))
}

// PublishChange publishes one change row as a retained message
func (p *Publisher) PublishChange(row models.ChangeRow) error {
	body, err := json.Marshal(NewChangePayload(row))
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	token := p.client.Publish(p.Topic(row.CurveID), 1, true, body)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publishing %s: timed out", row.CurveID)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publishing %s: %w", row.CurveID, err)
	}
	return nil
}

// Close disconnects from the MQTT broker
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}

// Slug turns a curve description into a topic segment: lower case letters and
// digits separated by single underscores.
func Slug(curveID string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(curveID) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}
