package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS 是一个 Gin 中间件，用于处理跨域资源共享 (CORS) 请求.
// 求解接口只有 JSON 提交与工作簿下载，放行的方法与头集合据此收敛；
// 导出相关的响应头需显式暴露，浏览器端才能读取下载文件名与求解编号。
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Set("Access-Control-Allow-Origin", "*")
		header.Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		header.Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, Cache-Control, X-Requested-With, X-Request-ID")
		header.Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID, X-Solve-Id")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)

			return
		}

		c.Next()
	}
}
