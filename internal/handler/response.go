package handler

import (
	"net/http"

	"github.com/blues/cls/internal/errs"
	"github.com/gin-gonic/gin"
)

// Response 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Pagination 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// FailFromError 按错误类别映射HTTP状态码后返回错误响应
func FailFromError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		status = http.StatusNotFound
	case errs.KindUnauthorized:
		status = http.StatusForbidden
	case errs.KindValidationFailed:
		status = http.StatusBadRequest
	case errs.KindStateConflict:
		status = http.StatusConflict
	case errs.KindExternalUnavailable:
		status = http.StatusServiceUnavailable
	}
	ErrorResponse(c, status, err.Error())
}
