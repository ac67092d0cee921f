// Opsgenie 웹훅 페이로드 구조체를 정의
// handler, service, template 레이어에서 공통으로 사용하기 때문에 model 레이어에 별도로 정의

package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Opsgenie가 웹훅마다 하나씩 보내는 action 값
// Create/Close 외의 값(Acknowledge 등)은 인덱스 반영 없이 수신만 확인
const (
	ActionCreate = "Create"
	ActionClose  = "Close"
)

var (
	// ErrMalformedPayload - 본문이 유효한 JSON이 아님
	ErrMalformedPayload = errors.New("malformed webhook payload")
	// ErrMissingField - 필수 필드 누락
	ErrMissingField = errors.New("missing required field")
)

// OpsgenieWebhook - 웹훅 페이로드 전체
type OpsgenieWebhook struct {
	Action string       `json:"action"`
	Alert  AlertPayload `json:"alert"`
}

// AlertPayload - 개별 알림
type AlertPayload struct {
	// AlertID: Opsgenie가 부여한 알림 고유 식별자 (alerts 인덱스 문서 ID)
	AlertID string `json:"alertId"`

	// CreatedAt: provider 생성 시각 (epoch milliseconds)
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt: close 시각 (epoch nanoseconds, Close 액션에만 존재)
	// createdAt과 단위가 다른 것은 Opsgenie 웹훅 계약 그대로
	UpdatedAt int64 `json:"updatedAt"`

	// Priority: 심각도 라벨 (P1~P5)
	Priority string `json:"priority"`

	Tags []string `json:"tags"`

	// Details: 문자열 키/값 매핑, alertname 키를 포함
	Details map[string]string `json:"details"`
}

// ParseWebhook - 웹훅 본문을 파싱하고 필수 필드를 검증
// details가 없으면 빈 매핑으로 채워서 반환 (부수 효과 없음)
func ParseWebhook(data []byte) (*OpsgenieWebhook, error) {
	var webhook OpsgenieWebhook
	if err := json.Unmarshal(data, &webhook); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if webhook.Alert.AlertID == "" {
		return nil, fmt.Errorf("%w: alert.alertId", ErrMissingField)
	}
	if webhook.Action == "" {
		return nil, fmt.Errorf("%w: action", ErrMissingField)
	}

	if webhook.Alert.Details == nil {
		webhook.Alert.Details = map[string]string{}
	}
	return &webhook, nil
}

// AlertName - details의 alertname 조회 (없으면 빈 문자열)
func (a AlertPayload) AlertName() string {
	return a.Details["alertname"]
}
