// Cortex 메트릭 발행 비즈니스 로직 정의
// 알림을 exposition 샘플로 변환해 Cortex로 전송하는 best-effort 경로
//
// 발행 실패는 로그만 남기고 호출자에게 전파하지 않음
// (메트릭은 부수 채널이라 Elasticsearch 반영을 막으면 안 됨)

package service

import (
	"log"

	"github.com/vasanthgogineni/opsgenie-to-es-and-cortex/internal/model"
	tmpl "github.com/vasanthgogineni/opsgenie-to-es-and-cortex/internal/template"
)

// metricPusher - Cortex 클라이언트 인터페이스
type metricPusher interface {
	Push(alertName, body string) error
}

// MetricService 구조체 정의
type MetricService struct {
	pusher metricPusher
}

// MetricService 객체 생성
func NewMetricService(pusher metricPusher) *MetricService {
	return &MetricService{pusher: pusher}
}

// Publish - 알림 하나를 gauge 샘플로 변환해 Cortex로 전송
func (s *MetricService) Publish(webhook *model.OpsgenieWebhook) {
	body := tmpl.BuildExposition(webhook)

	// instance URL의 alertname은 detail에 키가 없으면 unknown으로 대체
	// (샘플 라벨의 빈 문자열 기본값과는 별개, Opsgenie 쪽 계약 그대로)
	alertName, ok := webhook.Alert.Details["alertname"]
	if !ok {
		alertName = "unknown"
	}

	if err := s.pusher.Push(alertName, body); err != nil {
		log.Printf("[Cortex] Failed to push metric for alert %s: %v", webhook.Alert.AlertID, err)
		return
	}
	log.Printf("[Cortex] Pushed metric for alert %s (alertname=%s)", webhook.Alert.AlertID, alertName)
}
