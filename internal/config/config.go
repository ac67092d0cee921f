package config

import "os"

type Config struct {
	Server        ServerConfig
	Auth          AuthConfig
	Elasticsearch ElasticsearchConfig
	Cortex        CortexConfig
}

type ServerConfig struct {
	Port string
}

type AuthConfig struct {
	// Opsgenie 웹훅 integration에 설정한 공유 시크릿
	// Authorization 헤더 값과 정확히 일치해야 요청 통과
	Token string
}

type ElasticsearchConfig struct {
	Host string
	Port string
}

type CortexConfig struct {
	// URL - alertname이 들어갈 %s 자리가 있는 instance URL 템플릿
	URL string

	// mTLS 클라이언트 인증서 자료 경로
	CertFile string
	KeyFile  string
	CAFile   string
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Port: getenv("PORT", "8080"),
		},
		Auth: AuthConfig{
			Token: os.Getenv("OPSGENIE_AUTH"),
		},
		Elasticsearch: ElasticsearchConfig{
			Host: os.Getenv("ES_HOST"),
			Port: getenv("ES_PORT", "9200"),
		},
		Cortex: CortexConfig{
			URL:      getenv("CORTEX_URL", "https://cortex-staging.prosimo.us/metrics/job/opsgenie_alerts/instance/%s"),
			CertFile: getenv("CORTEX_CERT_FILE", "nginx.crt"),
			KeyFile:  getenv("CORTEX_KEY_FILE", "nginx.key"),
			CAFile:   getenv("CORTEX_CA_FILE", "rootCA.crt"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
