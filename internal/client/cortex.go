// 외부 Cortex push gateway와 통신하는 클라이언트 정의
// 렌더링된 exposition 텍스트를 alertname별 instance URL로 POST
//
// 환경변수:
//   - CORTEX_URL: instance URL 템플릿 (%s 자리에 alertname)
//   - CORTEX_CERT_FILE / CORTEX_KEY_FILE / CORTEX_CA_FILE: mTLS 자료 경로
//
// 인증서 로드에 실패해도 클라이언트는 생성됨 (push 시점에 실패하고 로그만 남음)

package client

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/vasanthgogineni/opsgenie-to-es-and-cortex/internal/config"
)

// CortexClient 구조체 정의
type CortexClient struct {
	urlTemplate string
	httpClient  *http.Client
}

// CortexClient 객체 생성
func NewCortexClient(cfg config.CortexConfig) *CortexClient {
	httpClient := &http.Client{
		Timeout: 10 * time.Second,
	}

	tlsConfig, err := loadTLSConfig(cfg)
	if err != nil {
		log.Printf("[Cortex] Failed to load TLS material, pushes will fail until fixed: %v", err)
	} else {
		httpClient.Transport = &http.Transport{TLSClientConfig: tlsConfig}
	}

	return &CortexClient{
		urlTemplate: cfg.URL,
		httpClient:  httpClient,
	}
}

// loadTLSConfig - 클라이언트 인증서와 CA 번들 로드
func loadTLSConfig(cfg config.CortexConfig) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load client certificate: %w", err)
	}

	caPEM, err := os.ReadFile(cfg.CAFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA file: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caPEM) {
		return nil, fmt.Errorf("no valid CA certificates in %s", cfg.CAFile)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      pool,
	}, nil
}

// Push - exposition 텍스트 한 건 전송
func (c *CortexClient) Push(alertName, body string) error {
	url := fmt.Sprintf(c.urlTemplate, alertName)

	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to push metric: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("cortex returned status %d", resp.StatusCode)
	}
	return nil
}
