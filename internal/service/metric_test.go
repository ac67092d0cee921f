package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/vasanthgogineni/opsgenie-to-es-and-cortex/internal/model"
)

type fakePusher struct {
	err error

	alertNames []string
	bodies     []string
}

func (f *fakePusher) Push(alertName, body string) error {
	f.alertNames = append(f.alertNames, alertName)
	f.bodies = append(f.bodies, body)
	return f.err
}

func TestPublish(t *testing.T) {
	pusher := &fakePusher{}
	svc := NewMetricService(pusher)

	svc.Publish(&model.OpsgenieWebhook{
		Action: model.ActionCreate,
		Alert: model.AlertPayload{
			AlertID:  "a-1",
			Priority: "P1",
			Tags:     []string{"prod"},
			Details:  map[string]string{"alertname": "HighCPU"},
		},
	})

	if len(pusher.alertNames) != 1 {
		t.Fatalf("push count = %d, want 1", len(pusher.alertNames))
	}
	if pusher.alertNames[0] != "HighCPU" {
		t.Fatalf("alertName = %q, want HighCPU", pusher.alertNames[0])
	}
	if !strings.Contains(pusher.bodies[0], `alertstate="firing"`) {
		t.Fatalf("body missing alertstate label: %q", pusher.bodies[0])
	}
}

// detail에 alertname 키가 없으면 instance URL은 unknown을 사용
func TestPublishUnknownAlertName(t *testing.T) {
	pusher := &fakePusher{}
	svc := NewMetricService(pusher)

	svc.Publish(&model.OpsgenieWebhook{
		Action: model.ActionCreate,
		Alert: model.AlertPayload{
			AlertID:  "a-1",
			Priority: "P2",
			Details:  map[string]string{},
		},
	})

	if pusher.alertNames[0] != "unknown" {
		t.Fatalf("alertName = %q, want unknown", pusher.alertNames[0])
	}
	// 샘플 라벨 쪽은 빈 문자열 기본값 유지
	if !strings.Contains(pusher.bodies[0], `alertname=""`) {
		t.Fatalf("body should keep empty alertname label: %q", pusher.bodies[0])
	}
}

// push 실패는 삼켜지고 호출자에게 전파되지 않음
func TestPublishSwallowsFailure(t *testing.T) {
	pusher := &fakePusher{err: errors.New("tls handshake failed")}
	svc := NewMetricService(pusher)

	svc.Publish(&model.OpsgenieWebhook{
		Action: model.ActionClose,
		Alert: model.AlertPayload{
			AlertID: "a-1",
			Details: map[string]string{"alertname": "HighCPU"},
		},
	})

	if len(pusher.alertNames) != 1 {
		t.Fatalf("push count = %d, want 1", len(pusher.alertNames))
	}
}
