// Cortex로 보낼 exposition 포맷 텍스트 렌더링
// 순수 문자열 생성만 담당, 네트워크 전송은 client 레이어의 몫

package template

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vasanthgogineni/opsgenie-to-es-and-cortex/internal/model"
)

// gauge 샘플 하나를 타입 선언 줄과 함께 출력
const expositionFormat = "# TYPE opsgenie_alerts gauge\n opsgenie_alerts{alertname=%q, priority=%q, tags=%q, alertstate=%q%s} 1.0\n"

// BuildExposition - 알림 하나를 opsgenie_alerts gauge 샘플로 변환
// 같은 입력이면 항상 같은 출력 (detail 키는 정렬 순서로 고정)
func BuildExposition(webhook *model.OpsgenieWebhook) string {
	alertState := "firing"
	if webhook.Action == model.ActionClose {
		alertState = "closed"
	}

	alert := webhook.Alert
	return fmt.Sprintf(expositionFormat,
		alert.AlertName(),
		alert.Priority,
		fmt.Sprintf("%v", alert.Tags),
		alertState,
		detailLabels(alert.Details),
	)
}

// detailLabels - alertname을 제외한 detail 키를 추가 라벨로 렌더링
// 비어 있으면 빈 문자열, 아니면 ", key="value"" 형태로 이어 붙임
func detailLabels(details map[string]string) string {
	keys := make([]string, 0, len(details))
	for key := range details {
		if key == "alertname" {
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, ", %s=%q", key, details[key])
	}
	return b.String()
}
