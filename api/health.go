package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthResponse 健康检查结果
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	DB        string    `json:"db,omitempty"`
}

// HealthHandler 健康检查处理器
type HealthHandler struct {
	serviceName string
	version     string
	db          func() *gorm.DB
}

// NewHealthHandler 创建健康检查处理器，db 在每次检查时取当前连接
func NewHealthHandler(serviceName, version string, db func() *gorm.DB) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		db:          db,
	}
}

// HealthCheck 健康检查
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	dbStatus := "disabled"
	if h.db != nil {
		if db := h.db(); db != nil {
			dbStatus = "up"
			sqlDB, err := db.DB()
			if err != nil {
				dbStatus = "down"
			} else {
				pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
				defer cancel()
				if err := sqlDB.PingContext(pingCtx); err != nil {
					dbStatus = "down"
				}
			}
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		DB:        dbStatus,
	})
}

// RegisterRoutes 注册 /health 与 /healthz
func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
