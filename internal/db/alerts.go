package db

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vasanthgogineni/opsgenie-to-es-and-cortex/internal/model"
)

// IndexAlert - 알림 문서를 alerts 인덱스에 저장
// alertId를 문서 ID로 사용, 같은 ID로 다시 저장하면 문서를 덮어씀
func (e *Elastic) IndexAlert(ctx context.Context, doc model.AlertDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal alert document: %w", err)
	}

	res, err := e.client.Index(IndexAlerts, bytes.NewReader(body),
		e.client.Index.WithDocumentID(doc.Alert.AlertID),
		e.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to index alert: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch index error: %s", res.String())
	}
	return nil
}

// UpdateAlertClosed - close 전환 필드를 부분 업데이트
// 문서가 없으면 ErrAlertNotFound 반환 (새 문서를 만들지 않음)
func (e *Elastic) UpdateAlertClosed(ctx context.Context, alertID string, patch model.AlertClosePatch) error {
	body, err := json.Marshal(map[string]model.AlertClosePatch{"doc": patch})
	if err != nil {
		return fmt.Errorf("failed to marshal close patch: %w", err)
	}

	res, err := e.client.Update(IndexAlerts, alertID, bytes.NewReader(body),
		e.client.Update.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to update alert: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return ErrAlertNotFound
	}
	if res.IsError() {
		return fmt.Errorf("elasticsearch update error: %s", res.String())
	}
	return nil
}

// CountAlerts - 전체 알림 수
func (e *Elastic) CountAlerts(ctx context.Context) (int, error) {
	return e.count(ctx, IndexAlerts, `{"query":{"match_all":{}}}`)
}

// CountOpenAlerts - open 상태 알림 수
func (e *Elastic) CountOpenAlerts(ctx context.Context) (int, error) {
	return e.count(ctx, IndexAlerts, `{"query":{"term":{"closeStatus":"open"}}}`)
}

// CountClosedAlerts - closed 상태 알림 수
func (e *Elastic) CountClosedAlerts(ctx context.Context) (int, error) {
	return e.count(ctx, IndexAlerts, `{"query":{"term":{"closeStatus":"closed"}}}`)
}
