package publisher

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/jgoulah/hvacsim/internal/config"
	"github.com/jgoulah/hvacsim/pkg/models"
)

// mqttClient is the subset of mqtt.Client the publisher uses
type mqttClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	IsConnected() bool
	Disconnect(quiesce uint)
}

// Publisher handles publishing runs to MQTT and Home Assistant
type Publisher struct {
	client      mqttClient
	topicPrefix string
	haConfig    config.HAConfig
	httpClient  *http.Client
	log         *zap.Logger
}

// New creates a new publisher (supports both MQTT and HA HTTP API)
func New(mqttCfg config.MQTTConfig, haCfg config.HAConfig, log *zap.Logger) (*Publisher, error) {
	// Validate HA config if enabled
	if haCfg.Enabled {
		if haCfg.URL == "" {
			return nil, fmt.Errorf("Home Assistant URL is required when enabled")
		}
		if haCfg.Token == "" {
			return nil, fmt.Errorf("Home Assistant token is required when enabled")
		}
		if haCfg.EntityID == "" {
			return nil, fmt.Errorf("Home Assistant entity_id is required when enabled")
		}
	}

	var client mqttClient
	topicPrefix := mqttCfg.TopicPrefix
	if topicPrefix == "" {
		topicPrefix = "hvacsim"
	}

	if mqttCfg.Enabled {
		if mqttCfg.Broker == "" {
			return nil, fmt.Errorf("MQTT broker address is required when enabled")
		}

		// Configure MQTT client options
		opts := mqtt.NewClientOptions()
		opts.AddBroker(fmt.Sprintf("tcp://%s", mqttCfg.Broker))
		opts.SetClientID("hvacsim")
		opts.SetConnectTimeout(10 * time.Second)

		if mqttCfg.Username != "" {
			opts.SetUsername(mqttCfg.Username)
		}
		if mqttCfg.Password != "" {
			opts.SetPassword(mqttCfg.Password)
		}

		c := mqtt.NewClient(opts)
		if token := c.Connect(); token.Wait() && token.Error() != nil {
			return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
		}
		client = c
		log.Debug("connected to MQTT broker", zap.String("broker", mqttCfg.Broker))
	}

	return newPublisher(client, topicPrefix, haCfg, log), nil
}

func newPublisher(client mqttClient, topicPrefix string, haCfg config.HAConfig, log *zap.Logger) *Publisher {
	return &Publisher{
		client:      client,
		topicPrefix: topicPrefix,
		haConfig:    haCfg,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		log:         log,
	}
}

// HourTopic is the topic a record of run is published on
func (p *Publisher) HourTopic(run *models.Run, hour int) string {
	return fmt.Sprintf("%s/%s/hour/%02d", p.topicPrefix, run.ID, hour)
}

// SummaryTopic is the topic the totals of run are published on
func (p *Publisher) SummaryTopic(run *models.Run) string {
	return fmt.Sprintf("%s/%s/summary", p.topicPrefix, run.ID)
}

// PublishMQTT sends every hour record and the summary of run to the broker
func (p *Publisher) PublishMQTT(run *models.Run) error {
	if p.client == nil {
		return fmt.Errorf("MQTT publishing is not enabled in config")
	}

	for _, rec := range run.Records {
		if err := p.send(p.HourTopic(run, rec.Hour), NewHourPayload(run, rec)); err != nil {
			return fmt.Errorf("publishing hour %d: %w", rec.Hour, err)
		}
	}

	if err := p.send(p.SummaryTopic(run), NewSummaryPayload(run)); err != nil {
		return fmt.Errorf("publishing summary: %w", err)
	}

	p.log.Info("published run to MQTT", zap.Stringer("run", run.ID), zap.Int("messages", len(run.Records)+1))
	return nil
}

func (p *Publisher) send(topic string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	token := p.client.Publish(topic, 1, false, body)
	if !token.WaitTimeout(10 * time.Second) {
		return fmt.Errorf("timed out publishing to %s", topic)
	}
	return token.Error()
}

// HAPayload matches the Home Assistant backfill service call data
type HAPayload struct {
	EntityID    string `json:"entity_id"`
	State       string `json:"state"`
	LastChanged string `json:"last_changed"`
	LastUpdated string `json:"last_updated"`
}

// PublishHA sends the run's total energy saved to Home Assistant via HTTP API
func (p *Publisher) PublishHA(run *models.Run) error {
	if !p.haConfig.Enabled {
		return fmt.Errorf("Home Assistant publishing is not enabled in config")
	}

	// Build the full API URL (AppDaemon API endpoint)
	apiURL := fmt.Sprintf("%s/api/appdaemon/backfill_state", p.haConfig.URL)

	timestamp := run.StartedAt.Format(time.RFC3339)
	payload := HAPayload{
		EntityID:    p.haConfig.EntityID,
		State:       fmt.Sprintf("%.2f", run.TotalEnergySaved),
		LastChanged: timestamp,
		LastUpdated: timestamp,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequest("POST", apiURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+p.haConfig.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Read error response body for debugging
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP error: status %d, response: %s", resp.StatusCode, string(respBody))
	}

	p.log.Info("published run to Home Assistant", zap.String("entity", p.haConfig.EntityID), zap.String("state", payload.State))
	return nil
}

// Close disconnects from the MQTT broker
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
