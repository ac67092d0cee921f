// Opsgenie 웹훅 요청을 처리하는 핸들러
//
// 요청 흐름:
//  1. Opsgenie가 POST /로 알림 전송 (AuthMiddleware 통과 후)
//  2. 본문을 OpsgenieWebhook 구조체로 파싱
//  3. Cortex 메트릭 발행 (best-effort, 실패해도 응답에 영향 없음)
//  4. service 레이어에서 Elasticsearch 상태 전환 처리

package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vasanthgogineni/opsgenie-to-es-and-cortex/internal/model"
)

// 응답 본문은 고정 문자열만 사용 (내부 에러 내용은 노출하지 않음)
const (
	responseProcessed = "alert processed for elasticsearch"
	responseFailed    = "alert processing for elasticsearch failed"
)

// lifecycleProcessor - 서비스 인터페이스
type lifecycleProcessor interface {
	Process(ctx context.Context, webhook *model.OpsgenieWebhook) error
}

// metricPublisher - 메트릭 발행 인터페이스
type metricPublisher interface {
	Publish(webhook *model.OpsgenieWebhook)
}

// Alert 핸들러 구조체 정의
type AlertHandler struct {
	metrics   metricPublisher
	lifecycle lifecycleProcessor
}

// Alert 핸들러 객체 생성
func NewAlertHandler(metrics metricPublisher, lifecycle lifecycleProcessor) *AlertHandler {
	return &AlertHandler{
		metrics:   metrics,
		lifecycle: lifecycle,
	}
}

func (h *AlertHandler) Webhook(c *gin.Context) {
	// 1. 본문 읽기 및 파싱
	data, err := c.GetRawData()
	if err != nil {
		log.Printf("Failed to read webhook body: %v", err)
		c.JSON(http.StatusBadRequest, responseFailed)
		return
	}

	webhook, err := model.ParseWebhook(data)
	if err != nil {
		log.Printf("Failed to parse webhook: %v", err)
		c.JSON(http.StatusBadRequest, responseFailed)
		return
	}

	log.Printf("Received alert: action=%s, alertId=%s, alertname=%s",
		webhook.Action, webhook.Alert.AlertID, webhook.Alert.AlertName())

	// 2. Cortex 메트릭 발행 (실패해도 계속 진행)
	h.metrics.Publish(webhook)

	// 3. Elasticsearch 상태 전환
	if err := h.lifecycle.Process(c.Request.Context(), webhook); err != nil {
		log.Printf("Failed to process alert for elasticsearch: %v", err)
		c.JSON(http.StatusBadRequest, responseFailed)
		return
	}

	c.JSON(http.StatusOK, responseProcessed)
}
