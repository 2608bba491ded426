// Package response 提供了统一的 HTTP 响应封装，支持业务错误码映射与原始数据透传。
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marc8cel/knapsack/xerrors"
)

// Success 发送一个标准的成功响应。
// 默认：HTTP 200，业务码 0，消息 "success"。
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code": 0,
		"msg":  "success",
		"data": data,
	})
}

// SuccessWithRawData 发送原始数据的成功响应 (不包装 code 和 msg)。
// 用于某些特定系统接口 (如 Health Check)。
func SuccessWithRawData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Error 发送智能错误响应。
// 核心逻辑：自动识别 pkg/xerrors (业务错误) 并执行状态码映射。
// 若无法识别类型，则兜底返回 500 Internal Server Error。
func Error(c *gin.Context, err error) {
	if err == nil {
		Success(c, nil)
		return
	}

	statusCode := http.StatusInternalServerError
	code := statusCode
	msg := err.Error()
	detail := ""

	// 优先识别业务错误，透出业务码与详情
	var e *xerrors.Error
	if errors.As(err, &e) {
		statusCode = e.HTTPStatus()
		code = e.Code
		msg = e.Message
		detail = e.Detail
	}

	c.JSON(statusCode, gin.H{
		"code":   code,
		"msg":    msg,
		"detail": detail,
	})
}

// ErrorWithStatus 发送一个带有指定 HTTP 状态码、消息和详情的错误响应。
func ErrorWithStatus(c *gin.Context, status int, msg string, detail string) {
	c.JSON(status, gin.H{
		"code":   status,
		"msg":    msg,
		"detail": detail,
	})
}
