package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/vasanthgogineni/opsgenie-to-es-and-cortex/internal/client"
	"github.com/vasanthgogineni/opsgenie-to-es-and-cortex/internal/config"
	"github.com/vasanthgogineni/opsgenie-to-es-and-cortex/internal/db"
	"github.com/vasanthgogineni/opsgenie-to-es-and-cortex/internal/handler"
	"github.com/vasanthgogineni/opsgenie-to-es-and-cortex/internal/service"
)

func main() {
	// .env 파일이 있으면 로드 (로컬 개발용, 없어도 무방)
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg := config.Load()

	// Elasticsearch 클라이언트 초기화
	store, err := db.NewElastic(cfg.Elasticsearch)
	if err != nil {
		log.Fatalf("Failed to create elasticsearch client: %v", err)
	}

	// Cortex push 클라이언트 (mTLS 자료를 읽지 못해도 서버는 기동, push만 실패)
	cortex := client.NewCortexClient(cfg.Cortex)

	metricService := service.NewMetricService(cortex)
	alertService := service.NewAlertService(store)

	alertHandler := handler.NewAlertHandler(metricService, alertService)

	// Gin의 기본 라우터 생성
	router := gin.Default()

	// 건강 체크 및 테스트용 기본 엔드포인트
	router.GET("/ping", handler.Ping)
	router.GET("/", handler.Root)

	// Opsgenie 웹훅 엔드포인트 (공유 시크릿 검증 후 처리)
	router.POST("/", handler.AuthMiddleware(cfg.Auth.Token), alertHandler.Webhook)

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
