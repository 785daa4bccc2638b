package models

import (
	"time"
)

// DefaultAIModelMaxTokens 模型默认最大 token 数
const DefaultAIModelMaxTokens = 4096

// AIModel AI模型定义
// CreatedBy 为系统归属时是内置模型，任何用户不可修改或删除
type AIModel struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"size:100;not null;uniqueIndex"` // 模型名称，全局唯一
	Provider    string    `json:"provider" gorm:"size:100;not null"`
	Description string    `json:"description" gorm:"size:1000"`
	MaxTokens   int       `json:"maxTokens" gorm:"not null;default:4096"`
	CreatedBy   Owner     `json:"createdBy" gorm:"column:created_by;type:varchar(36);index"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime:false"`
}

// TableName 设置表名
func (AIModel) TableName() string {
	return "ai_models"
}

// Owner 返回模型归属
func (m AIModel) Owner() Owner {
	return m.CreatedBy
}

// IsSystem 是否系统内置模型
func (m AIModel) IsSystem() bool {
	return m.CreatedBy.IsSystem()
}

// AIModelRef 提示词中引用模型时的精简投影
type AIModelRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}
