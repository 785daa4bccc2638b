package models

import (
	"time"
)

// DefaultProjectColor 项目默认显示颜色
const DefaultProjectColor = "#4A90E2"

// Project 项目，用于组织提示词
type Project struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Description string    `json:"description" gorm:"size:1000"`
	UserID      string    `json:"user" gorm:"column:user_id;type:varchar(36);not null;index"` // 归属用户，创建后不可修改
	Color       string    `json:"color" gorm:"size:20;default:#4A90E2"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime:false;index"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime:false"`
}

// TableName 设置表名
func (Project) TableName() string {
	return "projects"
}

// Owner 项目必须归属于某个用户
func (p Project) Owner() Owner {
	return UserOwner(p.UserID)
}

// ProjectRef 提示词中引用项目时的精简投影
type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
