// Alert 라이프사이클 처리 비즈니스 로직 정의
// handler에서 받은 웹훅을 Create/Close 상태 전환으로 해석하고 Elasticsearch에 반영
//
// 처리 흐름:
//  1. action 판별 (Create / Close / 그 외)
//  2. Create: alerts 인덱스에 open 문서 저장 (closeTimestamp=null)
//  3. Close: 기존 문서에 close 필드 부분 업데이트 + timeToResolve 계산
//     - 문서가 없으면 로그만 남기고 성공으로 처리
//  4. 전환이 끝나면 ActionRecord 1건 append (분 버킷)
//  5. 이어서 집계 스냅샷 1건 append (전체/open/closed 카운트)

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/vasanthgogineni/opsgenie-to-es-and-cortex/internal/db"
	"github.com/vasanthgogineni/opsgenie-to-es-and-cortex/internal/model"
)

// alertId로 만드는 Opsgenie 상세 페이지 딥링크
const alertURLTemplate = "https://prosimoio.app.opsgenie.com/alert/detail/%s/details"

// alertStore - Elasticsearch 인터페이스 (lifecycle 전용)
type alertStore interface {
	IndexAlert(ctx context.Context, doc model.AlertDocument) error
	UpdateAlertClosed(ctx context.Context, alertID string, patch model.AlertClosePatch) error
	CountAlerts(ctx context.Context) (int, error)
	CountOpenAlerts(ctx context.Context) (int, error)
	CountClosedAlerts(ctx context.Context) (int, error)
	CountActions(ctx context.Context) (int, error)
	IndexAction(ctx context.Context, rec model.ActionRecord) error
	IndexCountSnapshot(ctx context.Context, snap model.AlertsCountSnapshot) error
}

// AlertService 구조체 정의
type AlertService struct {
	store alertStore

	// actionMu: ActionRecord ID는 기록 시점의 문서 수와 같아야 하는데
	// count와 index가 별도 호출이라 동시 요청 간 경합이 생김
	// append 경로를 단일 writer로 직렬화해서 ID 충돌을 막음
	actionMu sync.Mutex
}

// AlertService 객체 생성
func NewAlertService(store alertStore) *AlertService {
	return &AlertService{store: store}
}

// Process - 웹훅 하나를 상태 전환으로 반영
// Close 대상 문서가 없으면 로그만 남기고 성공으로 처리 (at-least-once 재전송 허용)
func (s *AlertService) Process(ctx context.Context, webhook *model.OpsgenieWebhook) error {
	switch webhook.Action {
	case model.ActionCreate:
		return s.processCreate(ctx, webhook)
	case model.ActionClose:
		return s.processClose(ctx, webhook)
	default:
		// Acknowledge 등 다른 액션은 인덱스 반영 없이 수신만 확인
		log.Printf("Ignoring action %q for alert %s", webhook.Action, webhook.Alert.AlertID)
		return nil
	}
}

func (s *AlertService) processCreate(ctx context.Context, webhook *model.OpsgenieWebhook) error {
	alert := webhook.Alert
	createdAt := time.UnixMilli(alert.CreatedAt).UTC()

	doc := model.AlertDocument{
		Action:         webhook.Action,
		Alert:          alert,
		CloseStatus:    model.CloseStatusOpen,
		CloseTimestamp: nil,
		AlertURL:       fmt.Sprintf(alertURLTemplate, alert.AlertID),
		MinuteUpdated:  isoTimestamp(createdAt),
	}
	if err := s.store.IndexAlert(ctx, doc); err != nil {
		return fmt.Errorf("failed to index alert %s: %w", alert.AlertID, err)
	}
	log.Printf("Alert %s created and indexed in Elasticsearch", alert.AlertID)

	if err := s.appendAction(ctx, model.ActionTypeOpen, createdAt); err != nil {
		return err
	}
	return s.appendCountSnapshot(ctx)
}

func (s *AlertService) processClose(ctx context.Context, webhook *model.OpsgenieWebhook) error {
	alert := webhook.Alert
	if alert.UpdatedAt == 0 {
		return fmt.Errorf("%w: alert.updatedAt", model.ErrMissingField)
	}

	// createdAt은 밀리초, updatedAt은 나노초 (Opsgenie 계약 그대로)
	createdAt := time.UnixMilli(alert.CreatedAt).UTC()
	closedAt := time.Unix(0, alert.UpdatedAt).UTC()

	patch := model.AlertClosePatch{
		CloseStatus:    model.CloseStatusClosed,
		CloseTimestamp: alert.UpdatedAt,
		TimeToResolve:  closedAt.Sub(createdAt).Minutes(),
		MinuteUpdated:  isoTimestamp(closedAt),
	}
	if err := s.store.UpdateAlertClosed(ctx, alert.AlertID, patch); err != nil {
		if errors.Is(err, db.ErrAlertNotFound) {
			// 모르는 ID의 close는 새 문서를 만들지 않고 기록도 남기지 않음
			log.Printf("Alert %s not found in Elasticsearch for close action", alert.AlertID)
			return nil
		}
		return fmt.Errorf("failed to close alert %s: %w", alert.AlertID, err)
	}
	log.Printf("Alert %s updated in Elasticsearch with close fields", alert.AlertID)

	if err := s.appendAction(ctx, model.ActionTypeClose, closedAt); err != nil {
		return err
	}
	return s.appendCountSnapshot(ctx)
}

// appendAction - ActionRecord를 분 버킷으로 append
// count와 index 사이를 잠금으로 묶어 순차 ID 불변식을 유지
func (s *AlertService) appendAction(ctx context.Context, actionType string, at time.Time) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	count, err := s.store.CountActions(ctx)
	if err != nil {
		return fmt.Errorf("failed to count alert actions: %w", err)
	}

	rec := model.ActionRecord{
		ID:            count,
		MinuteUpdated: at.Format("2006-01-02T15:04:00"),
		ActionType:    actionType,
	}
	if err := s.store.IndexAction(ctx, rec); err != nil {
		return fmt.Errorf("failed to index alert action: %w", err)
	}
	return nil
}

// appendCountSnapshot - 전체/open/closed 카운트 스냅샷 append
// 세 카운트는 독립 쿼리라 동시 쓰기 중에는 합이 어긋날 수 있음 (진단용 값이라 허용)
func (s *AlertService) appendCountSnapshot(ctx context.Context) error {
	total, err := s.store.CountAlerts(ctx)
	if err != nil {
		return fmt.Errorf("failed to count alerts: %w", err)
	}
	open, err := s.store.CountOpenAlerts(ctx)
	if err != nil {
		return fmt.Errorf("failed to count open alerts: %w", err)
	}
	closed, err := s.store.CountClosedAlerts(ctx)
	if err != nil {
		return fmt.Errorf("failed to count closed alerts: %w", err)
	}

	snap := model.AlertsCountSnapshot{
		Timestamp:         isoTimestamp(time.Now()),
		AlertsCount:       total,
		OpenAlertsCount:   open,
		ClosedAlertsCount: closed,
	}
	if err := s.store.IndexCountSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("failed to index count snapshot: %w", err)
	}

	log.Printf("Alerts count updated: %d at %s, open: %d, closed: %d",
		total, snap.Timestamp, open, closed)
	return nil
}

// isoTimestamp - ISO-8601 UTC 타임스탬프 (마이크로초가 0이면 소수부 생략)
func isoTimestamp(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/1000 == 0 {
		return t.Format("2006-01-02T15:04:05") + "+00:00"
	}
	return t.Format("2006-01-02T15:04:05.000000") + "+00:00"
}
