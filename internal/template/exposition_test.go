package template

import (
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/vasanthgogineni/opsgenie-to-es-and-cortex/internal/model"
)

func TestBuildExposition(t *testing.T) {
	tests := []struct {
		name    string
		webhook model.OpsgenieWebhook
		want    string
	}{
		{
			name: "create-with-details",
			webhook: model.OpsgenieWebhook{
				Action: "Create",
				Alert: model.AlertPayload{
					AlertID:  "a-1",
					Priority: "P1",
					Tags:     []string{"prod", "cpu"},
					Details:  map[string]string{"alertname": "HighCPU", "region": "us-west-2", "team": "infra"},
				},
			},
			want: "# TYPE opsgenie_alerts gauge\n opsgenie_alerts{alertname=\"HighCPU\", priority=\"P1\", tags=\"[prod cpu]\", alertstate=\"firing\", region=\"us-west-2\", team=\"infra\"} 1.0\n",
		},
		{
			name: "close-sets-closed-state",
			webhook: model.OpsgenieWebhook{
				Action: "Close",
				Alert: model.AlertPayload{
					AlertID:  "a-1",
					Priority: "P2",
					Tags:     []string{"prod"},
					Details:  map[string]string{"alertname": "HighCPU"},
				},
			},
			want: "# TYPE opsgenie_alerts gauge\n opsgenie_alerts{alertname=\"HighCPU\", priority=\"P2\", tags=\"[prod]\", alertstate=\"closed\"} 1.0\n",
		},
		{
			name: "acknowledge-stays-firing",
			webhook: model.OpsgenieWebhook{
				Action: "Acknowledge",
				Alert: model.AlertPayload{
					AlertID:  "a-1",
					Priority: "P3",
					Tags:     []string{},
					Details:  map[string]string{"alertname": "DiskFull"},
				},
			},
			want: "# TYPE opsgenie_alerts gauge\n opsgenie_alerts{alertname=\"DiskFull\", priority=\"P3\", tags=\"[]\", alertstate=\"firing\"} 1.0\n",
		},
		{
			name: "empty-details",
			webhook: model.OpsgenieWebhook{
				Action: "Create",
				Alert: model.AlertPayload{
					AlertID:  "a-1",
					Priority: "P2",
					Details:  map[string]string{},
				},
			},
			want: "# TYPE opsgenie_alerts gauge\n opsgenie_alerts{alertname=\"\", priority=\"P2\", tags=\"[]\", alertstate=\"firing\"} 1.0\n",
		},
		{
			name: "alertname-only-details",
			webhook: model.OpsgenieWebhook{
				Action: "Create",
				Alert: model.AlertPayload{
					AlertID:  "a-1",
					Priority: "P1",
					Tags:     []string{"db"},
					Details:  map[string]string{"alertname": "ReplicaLag"},
				},
			},
			want: "# TYPE opsgenie_alerts gauge\n opsgenie_alerts{alertname=\"ReplicaLag\", priority=\"P1\", tags=\"[db]\", alertstate=\"firing\"} 1.0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildExposition(&tt.webhook)
			if got != tt.want {
				t.Fatalf("BuildExposition() = %q, want %q", got, tt.want)
			}
			// 순수 함수: 같은 입력이면 항상 같은 출력
			if again := BuildExposition(&tt.webhook); again != got {
				t.Fatalf("BuildExposition() not deterministic: %q vs %q", got, again)
			}
		})
	}
}

// 출력이 prometheus 텍스트 포맷 파서로 다시 읽히는지, 라벨 집합이 복원되는지 검증
func TestBuildExpositionRoundTrip(t *testing.T) {
	webhook := model.OpsgenieWebhook{
		Action: "Create",
		Alert: model.AlertPayload{
			AlertID:  "a-1",
			Priority: "P1",
			Tags:     []string{"prod", "cpu"},
			Details:  map[string]string{"alertname": "HighCPU", "region": "us-west-2", "team": "infra"},
		},
	}

	out := BuildExposition(&webhook)

	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(strings.NewReader(out))
	if err != nil {
		t.Fatalf("TextToMetricFamilies() failed: %v", err)
	}

	mf, ok := families["opsgenie_alerts"]
	if !ok {
		t.Fatalf("metric family opsgenie_alerts not found in %v", families)
	}
	if mf.GetType() != dto.MetricType_GAUGE {
		t.Fatalf("metric type = %v, want GAUGE", mf.GetType())
	}
	if len(mf.GetMetric()) != 1 {
		t.Fatalf("metric count = %d, want 1", len(mf.GetMetric()))
	}

	metric := mf.GetMetric()[0]
	if value := metric.GetGauge().GetValue(); value != 1.0 {
		t.Fatalf("gauge value = %v, want 1.0", value)
	}

	labels := map[string]string{}
	for _, pair := range metric.GetLabel() {
		labels[pair.GetName()] = pair.GetValue()
	}

	want := map[string]string{
		"alertname":  "HighCPU",
		"priority":   "P1",
		"tags":       "[prod cpu]",
		"alertstate": "firing",
		"region":     "us-west-2",
		"team":       "infra",
	}
	if len(labels) != len(want) {
		t.Fatalf("label set = %v, want %v", labels, want)
	}
	for name, value := range want {
		if labels[name] != value {
			t.Fatalf("label %s = %q, want %q", name, labels[name], value)
		}
	}
}
