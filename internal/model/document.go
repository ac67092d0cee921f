// Elasticsearch 인덱스 문서 구조체를 정의
//
// 인덱스 세 개를 사용:
//   - alerts: 알림 문서 (alertId가 문서 ID, open -> closed 전환 한 번만 허용)
//   - alerts-actions: 분 버킷 액션 로그 (append 전용, 순차 정수 ID)
//   - alerts-count: 집계 스냅샷 (append 전용)

package model

// closeStatus 값
const (
	CloseStatusOpen   = "open"
	CloseStatusClosed = "closed"
)

// ActionRecord의 actionType 값
const (
	ActionTypeOpen  = "open"
	ActionTypeClose = "close"
)

// AlertDocument - alerts 인덱스 문서
// Create 전환 시 전체 저장, 이후에는 close 전환의 부분 업데이트만 허용
type AlertDocument struct {
	Action string       `json:"action"`
	Alert  AlertPayload `json:"alert"`

	CloseStatus string `json:"closeStatus"`

	// CloseTimestamp: close 시각 (epoch nanoseconds), open 상태에서는 null
	CloseTimestamp *int64 `json:"closeTimestamp"`

	// AlertURL: alertId로 만든 Opsgenie 상세 페이지 딥링크
	AlertURL string `json:"alertURL"`

	// MinuteUpdated: 마지막 이벤트 시각의 ISO-8601 UTC 표현
	MinuteUpdated string `json:"minuteUpdated"`
}

// AlertClosePatch - Close 전환 시 부분 업데이트되는 필드
type AlertClosePatch struct {
	CloseStatus    string `json:"closeStatus"`
	CloseTimestamp int64  `json:"closeTimestamp"`

	// TimeToResolve: 생성부터 close까지 걸린 시간 (분)
	TimeToResolve float64 `json:"timeToResolve"`

	MinuteUpdated string `json:"minuteUpdated"`
}

// ActionRecord - alerts-actions 인덱스 문서
// ID는 기록 시점의 문서 수와 같게 부여 (service 레이어에서 직렬화)
type ActionRecord struct {
	ID int `json:"id"`

	// MinuteUpdated: 분 단위로 절삭한 시각 (YYYY-MM-DDTHH:MM:00)
	// alerts 인덱스의 ISO 필드와는 다른 포맷
	MinuteUpdated string `json:"minuteUpdated"`

	ActionType string `json:"actionType"`
}

// AlertsCountSnapshot - alerts-count 인덱스 문서
// 전환이 끝날 때마다 append, 기존 문서는 수정하지 않음
type AlertsCountSnapshot struct {
	Timestamp         string `json:"timestamp"`
	AlertsCount       int    `json:"alerts_count"`
	OpenAlertsCount   int    `json:"open_alerts_count"`
	ClosedAlertsCount int    `json:"closed_alerts_count"`
}
