package db

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/vasanthgogineni/opsgenie-to-es-and-cortex/internal/model"
)

// CountActions - alerts-actions 문서 수 조회
// service 레이어가 다음 ActionRecord ID로 사용
func (e *Elastic) CountActions(ctx context.Context) (int, error) {
	return e.count(ctx, IndexActions, `{"query":{"match_all":{}}}`)
}

// IndexAction - ActionRecord를 alerts-actions 인덱스에 append
func (e *Elastic) IndexAction(ctx context.Context, rec model.ActionRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal action record: %w", err)
	}

	res, err := e.client.Index(IndexActions, bytes.NewReader(body),
		e.client.Index.WithDocumentID(strconv.Itoa(rec.ID)),
		e.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to index action record: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch index error: %s", res.String())
	}
	return nil
}
