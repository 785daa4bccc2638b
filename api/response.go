package api

import (
	"errors"
	"log"
	"net/http"

	"zenith/service"

	"github.com/gin-gonic/gin"
)

// Response 通用响应结构
type Response struct {
	Success    bool              `json:"success"`
	Data       interface{}       `json:"data,omitempty"`
	Error      string            `json:"error,omitempty"`
	Message    string            `json:"message,omitempty"`
	Count      *int              `json:"count,omitempty"`
	Pagination *service.PageInfo `json:"pagination,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// SuccessWithMessage 带消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created 201 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// SuccessWithCount 列表响应，带条数
func SuccessWithCount(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Count:   &count,
		Data:    data,
	})
}

// SuccessWithPage 分页响应
func SuccessWithPage(c *gin.Context, data interface{}, count int, info service.PageInfo) {
	c.JSON(http.StatusOK, Response{
		Success:    true,
		Count:      &count,
		Pagination: &info,
		Data:       data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Success: false,
		Error:   message,
	})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Forbidden 403 错误响应
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound 404 错误响应
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError 500 错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// HandleError 将服务层错误转换为对应的状态码
func HandleError(c *gin.Context, err error, fallback string) {
	var (
		ve *service.ValidationError
		nf *service.NotFoundError
		fe *service.ForbiddenError
	)
	switch {
	case errors.As(err, &ve):
		BadRequest(c, ve.Message)
	case errors.As(err, &nf):
		NotFound(c, nf.Error())
	case errors.As(err, &fe):
		Forbidden(c, fe.Error())
	default:
		log.Printf("[api] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		InternalError(c, SafeErrorMessage(err, fallback))
	}
}
