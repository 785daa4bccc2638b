package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// 资源名称，用于拼接错误信息
const (
	ResourceProject = "项目"
	ResourceAIModel = "AI模型"
	ResourcePrompt  = "提示词"
)

// ValidationError 请求字段缺失或超出范围
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError 记录不存在
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + "不存在"
}

// ForbiddenError 所有权校验未通过；System 为 true 表示系统内置资源受保护
type ForbiddenError struct {
	Resource string
	Action   string
	System   bool
}

func (e *ForbiddenError) Error() string {
	if e.System {
		return "系统内置" + e.Resource + "不可" + e.Action
	}
	return "无权" + e.Action + "该" + e.Resource
}

// ReferenceError 提示词引用的项目或模型校验失败，Err 为 NotFoundError 或 ForbiddenError
type ReferenceError struct {
	Field string
	Err   error
}

func (e *ReferenceError) Error() string {
	return e.Err.Error()
}

func (e *ReferenceError) Unwrap() error {
	return e.Err
}

// notFoundOr 将 gorm.ErrRecordNotFound 转换为 NotFoundError，其余错误原样返回
func notFoundOr(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Resource: resource}
	}
	return err
}

// IsNotFound 是否为记录不存在（含引用校验中的不存在）
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsForbidden 是否为权限拒绝（含系统资源保护）
func IsForbidden(err error) bool {
	var fe *ForbiddenError
	return errors.As(err, &fe)
}

// IsValidation 是否为参数校验失败
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
