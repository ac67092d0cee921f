// Elasticsearch 연결 초기화 유틸
//
// 환경변수:
//   - ES_HOST
//   - ES_PORT (default: 9200)

package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"

	"github.com/vasanthgogineni/opsgenie-to-es-and-cortex/internal/config"
)

// 인덱스 이름
const (
	IndexAlerts  = "alerts"
	IndexActions = "alerts-actions"
	IndexCounts  = "alerts-count"
)

// ErrAlertNotFound - close 대상 알림 문서가 인덱스에 없음
var ErrAlertNotFound = errors.New("alert not found")

// Elastic 구조체 정의
type Elastic struct {
	client *elasticsearch.Client
}

// Elastic 객체 생성
func NewElastic(cfg config.ElasticsearchConfig) (*Elastic, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{fmt.Sprintf("http://%s:%s", cfg.Host, cfg.Port)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return &Elastic{client: client}, nil
}

// count - 쿼리에 매칭되는 문서 수 조회
func (e *Elastic) count(ctx context.Context, index, query string) (int, error) {
	res, err := e.client.Count(
		e.client.Count.WithContext(ctx),
		e.client.Count.WithIndex(index),
		e.client.Count.WithBody(strings.NewReader(query)),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, fmt.Errorf("elasticsearch count error on %s: %s", index, res.String())
	}

	var out struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("failed to decode count response: %w", err)
	}
	return out.Count, nil
}
