package notify

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/transitops/fleetassign/core/model"
	"github.com/transitops/fleetassign/core/monitoring"
	"github.com/transitops/fleetassign/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT notifier.
type Config struct {
	Broker          string      `json:"broker"`
	ClientID        string      `json:"client_id"`
	Username        string      `json:"username"`
	Password        string      `json:"password"`
	RunTopic        string      `json:"run_topic"`
	UnassignedTopic string      `json:"unassigned_topic"`
	AlertTopic      string      `json:"alert_topic"`
	QoS             byte        `json:"qos"`
	UseTLS          bool        `json:"use_tls"`
	ClientCert      string      `json:"client_cert"`
	ClientKey       string      `json:"client_key"`
	CABundle        string      `json:"ca_bundle"`
	TLSConfig       *tls.Config `json:"-"`
}

// SetDefaults fills in topic and identity defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "fleetassign-notifier"
	}
	if c.RunTopic == "" {
		c.RunTopic = "fleetassign/runs"
	}
	if c.UnassignedTopic == "" {
		c.UnassignedTopic = "fleetassign/unassigned"
	}
	if c.AlertTopic == "" {
		c.AlertTopic = "fleetassign/alerts"
	}
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// MQTTNotifier publishes planning outcomes over MQTT using Eclipse Paho.
type MQTTNotifier struct {
	cli pahoClient
	cfg Config
	log logger.Logger
}

// NewMQTTNotifier connects to the broker and returns a ready notifier.
func NewMQTTNotifier(cfg Config) (*MQTTNotifier, error) {
	cfg.SetDefaults()
	opts, err := newClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	log := logger.New("mqtt-notifier")
	opts.OnConnect = func(paho.Client) {
		log.Infof("MQTT connected")
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &MQTTNotifier{cli: c, cfg: cfg, log: log}, nil
}

func newClientOptions(cfg Config) (*paho.ClientOptions, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		tlsCfg, err := cfg.loadTLSConfig()
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	return opts, nil
}

func (c Config) loadTLSConfig() (*tls.Config, error) {
	if c.TLSConfig != nil {
		return c.TLSConfig, nil
	}
	if c.ClientCert == "" || c.ClientKey == "" || c.CABundle == "" {
		return nil, fmt.Errorf("tls config requires client_cert, client_key and ca_bundle")
	}
	cert, err := tls.LoadX509KeyPair(c.ClientCert, c.ClientKey)
	if err != nil {
		return nil, fmt.Errorf("load cert: %w", err)
	}
	caBytes, err := os.ReadFile(c.CABundle)
	if err != nil {
		return nil, fmt.Errorf("read ca: %w", err)
	}
	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(caBytes)
	return &tls.Config{Certificates: []tls.Certificate{cert}, RootCAs: pool, MinVersion: tls.VersionTLS12}, nil
}

func (n *MQTTNotifier) publish(topic string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	token := n.cli.Publish(topic, n.cfg.QoS, false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish to %s timed out", topic)
	}
	return token.Error()
}

// NotifyRun publishes the run summary.
func (n *MQTTNotifier) NotifyRun(sum RunSummary) error {
	return n.publish(n.cfg.RunTopic, sum)
}

// NotifyUnassigned publishes the schedules no unit could serve.
func (n *MQTTNotifier) NotifyUnassigned(runID string, us []model.UnassignedSchedule) error {
	if len(us) == 0 {
		return nil
	}
	return n.publish(n.cfg.UnassignedTopic, struct {
		RunID      string                     `json:"run_id"`
		Unassigned []model.UnassignedSchedule `json:"unassigned"`
	}{runID, us})
}

// NotifyAlerts publishes threshold alerts.
func (n *MQTTNotifier) NotifyAlerts(runID string, alerts []monitoring.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	return n.publish(n.cfg.AlertTopic, struct {
		RunID  string             `json:"run_id"`
		Alerts []monitoring.Alert `json:"alerts"`
	}{runID, alerts})
}

// Close disconnects from the broker.
func (n *MQTTNotifier) Close() {
	n.cli.Disconnect(250)
}
