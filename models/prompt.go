package models

import (
	"time"
)

// 提示词参数默认值
const (
	DefaultTemperature      = 0.7
	DefaultPromptMaxTokens  = 256
	DefaultTopP             = 1.0
	DefaultFrequencyPenalty = 0.0
	DefaultPresencePenalty  = 0.0
)

// PromptParameters 调用模型时的参数
type PromptParameters struct {
	Temperature      float64 `json:"temperature" gorm:"column:temperature;not null"`             // 0-2
	MaxTokens        int     `json:"maxTokens" gorm:"column:max_tokens;not null"`                // >=1
	TopP             float64 `json:"topP" gorm:"column:top_p;not null"`                          // 0-1
	FrequencyPenalty float64 `json:"frequencyPenalty" gorm:"column:frequency_penalty;not null"` // 0-2
	PresencePenalty  float64 `json:"presencePenalty" gorm:"column:presence_penalty;not null"`   // 0-2
}

// DefaultPromptParameters 返回默认参数
func DefaultPromptParameters() PromptParameters {
	return PromptParameters{
		Temperature:      DefaultTemperature,
		MaxTokens:        DefaultPromptMaxTokens,
		TopP:             DefaultTopP,
		FrequencyPenalty: DefaultFrequencyPenalty,
		PresencePenalty:  DefaultPresencePenalty,
	}
}

// Prompt 提示词
type Prompt struct {
	ID         string           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title      string           `json:"title" gorm:"size:200;not null"`
	Content    string           `json:"content" gorm:"type:text;not null"`
	UserID     string           `json:"user" gorm:"column:user_id;type:varchar(36);not null;index"`
	ProjectID  *string          `json:"projectId" gorm:"column:project_id;type:varchar(36);index"`
	AIModelID  string           `json:"aiModelId" gorm:"column:ai_model_id;type:varchar(36);not null;index"`
	Parameters PromptParameters `json:"parameters" gorm:"embedded;embeddedPrefix:param_"`
	Tags       Tags             `json:"tags" gorm:"type:text"`
	UsageCount int64            `json:"usageCount" gorm:"not null;default:0"`
	LastUsed   *time.Time       `json:"lastUsed"`
	CreatedAt  time.Time        `json:"createdAt" gorm:"autoCreateTime:false;index"`
	UpdatedAt  time.Time        `json:"updatedAt" gorm:"autoUpdateTime:false"`

	// 读取时填充的引用投影，不落库
	Project *ProjectRef `json:"project,omitempty" gorm:"-"`
	AIModel *AIModelRef `json:"aiModel,omitempty" gorm:"-"`
}

// TableName 设置表名
func (Prompt) TableName() string {
	return "prompts"
}

// Owner 提示词必须归属于某个用户
func (p Prompt) Owner() Owner {
	return UserOwner(p.UserID)
}
