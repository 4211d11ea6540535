// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthMessage はヘルスチェックが返すメッセージです。
const HealthMessage = "Lead Management System API is running"

// Health は /api/health を処理します。
// HTTPメソッドに応じたステータスを返し、キャッシュを禁止します。
//   - HEAD: 200（ボディなし）
//   - OPTIONS: 204
//   - それ以外: 200 と success / message / timestamp
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   HealthMessage,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
