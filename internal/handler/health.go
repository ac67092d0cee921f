package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vasanthgogineni/opsgenie-to-es-and-cortex/internal/model"
)

// 헬스체크 엔드포인트
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, model.PingResponse{Message: "pong"})
}

// 루트 엔드포인트
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, model.RootResponse{
		Status:  "ok",
		Message: "Opsgenie webhook bridge is running",
	})
}
