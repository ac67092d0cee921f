package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware - Opsgenie 웹훅 공유 시크릿 검증
// Authorization 헤더가 설정값과 정확히 일치해야 통과
func AuthMiddleware(authToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != authToken {
			c.JSON(http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}
		c.Next()
	}
}
