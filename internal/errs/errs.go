package errs

import (
	"errors"
	"fmt"
)

// Kind 稳定的错误类别，接口层据此映射HTTP状态码
type Kind string

const (
	KindNotFound            Kind = "not_found"            // 资源不存在
	KindUnauthorized        Kind = "unauthorized"         // 主体或角色无权限
	KindValidationFailed    Kind = "validation_failed"    // 输入不合法
	KindStateConflict       Kind = "state_conflict"       // 状态冲突（活动已结束、超过上限、写冲突）
	KindExternalUnavailable Kind = "external_unavailable" // 外部协作方不可用
)

// Error 带类别的业务错误
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is 支持 errors.Is 按类别匹配
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// New 创建指定类别的错误
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return New(KindNotFound, format, args...)
}

func Unauthorized(format string, args ...interface{}) *Error {
	return New(KindUnauthorized, format, args...)
}

func ValidationFailed(format string, args ...interface{}) *Error {
	return New(KindValidationFailed, format, args...)
}

func StateConflict(format string, args ...interface{}) *Error {
	return New(KindStateConflict, format, args...)
}

func ExternalUnavailable(format string, args ...interface{}) *Error {
	return New(KindExternalUnavailable, format, args...)
}

// KindOf 提取错误类别，非业务错误返回空
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind 判断错误是否属于指定类别
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
