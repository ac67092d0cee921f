package db

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/vasanthgogineni/opsgenie-to-es-and-cortex/internal/model"
)

// IndexCountSnapshot - 집계 스냅샷을 alerts-count 인덱스에 append
// 문서 ID는 UUID로 부여 (기존 스냅샷은 절대 덮어쓰지 않음)
func (e *Elastic) IndexCountSnapshot(ctx context.Context, snap model.AlertsCountSnapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal count snapshot: %w", err)
	}

	res, err := e.client.Index(IndexCounts, bytes.NewReader(body),
		e.client.Index.WithDocumentID(uuid.NewString()),
		e.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to index count snapshot: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch index error: %s", res.String())
	}
	return nil
}
