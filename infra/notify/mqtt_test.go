package notify

import (
	"encoding/json"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitops/fleetassign/core/model"
	"github.com/transitops/fleetassign/core/monitoring"
)

type fakeToken struct{ err error }

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }

type fakeClient struct {
	published map[string][]byte
}

func (f *fakeClient) IsConnected() bool       { return true }
func (f *fakeClient) Connect() paho.Token     { return &fakeToken{} }
func (f *fakeClient) Disconnect(uint)         {}
func (f *fakeClient) Publish(topic string, _ byte, _ bool, payload interface{}) paho.Token {
	if f.published == nil {
		f.published = make(map[string][]byte)
	}
	f.published[topic] = payload.([]byte)
	return &fakeToken{}
}

func newFakeNotifier(t *testing.T) (*MQTTNotifier, *fakeClient) {
	t.Helper()
	cli := &fakeClient{}
	orig := newMQTTClient
	newMQTTClient = func(*paho.ClientOptions) pahoClient { return cli }
	t.Cleanup(func() { newMQTTClient = orig })

	n, err := NewMQTTNotifier(Config{Broker: "tcp://localhost:1883"})
	require.NoError(t, err)
	return n, cli
}

func TestNotifyRun(t *testing.T) {
	n, cli := newFakeNotifier(t)
	sum := RunSummary{
		RunID:      "run-1",
		TargetDate: "2024-01-01",
		Metrics:    model.RunMetrics{TotalSchedules: 4, AssignedCount: 3, CoverageRate: 75},
	}
	require.NoError(t, n.NotifyRun(sum))

	payload, ok := cli.published["fleetassign/runs"]
	require.True(t, ok, "run topic not published")
	var got RunSummary
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, sum.RunID, got.RunID)
	assert.Equal(t, 75.0, got.Metrics.CoverageRate)
}

func TestNotifyUnassignedSkipsEmpty(t *testing.T) {
	n, cli := newFakeNotifier(t)
	require.NoError(t, n.NotifyUnassigned("run-1", nil))
	_, ok := cli.published["fleetassign/unassigned"]
	assert.False(t, ok)

	us := []model.UnassignedSchedule{{
		ScheduleID: "S001",
		RouteID:    "R001",
		Departure:  model.MustClock("06:00"),
		Reasons:    []string{"unit U001 is in status Maintenance"},
	}}
	require.NoError(t, n.NotifyUnassigned("run-1", us))
	_, ok = cli.published["fleetassign/unassigned"]
	assert.True(t, ok)
}

func TestNotifyAlerts(t *testing.T) {
	n, cli := newFakeNotifier(t)
	alerts := []monitoring.Alert{{
		Type:     monitoring.AlertLowCoverage,
		Severity: monitoring.SeverityWarning,
		Message:  "coverage rate (50.0%) below minimum (80.0%)",
	}}
	require.NoError(t, n.NotifyAlerts("run-1", alerts))
	payload := cli.published["fleetassign/alerts"]
	assert.Contains(t, string(payload), "LOW_COVERAGE")
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	assert.Equal(t, "fleetassign-notifier", cfg.ClientID)
	assert.Equal(t, "fleetassign/runs", cfg.RunTopic)
}
