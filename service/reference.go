package service

import (
	"context"

	"zenith/models"

	"gorm.io/gorm"
)

// ReferenceValidator 校验提示词引用的项目与AI模型
type ReferenceValidator struct {
	store
}

// NewReferenceValidator 创建引用校验器
func NewReferenceValidator(db *gorm.DB) *ReferenceValidator {
	return &ReferenceValidator{store: newStore(db)}
}

// Validate 空字符串表示未提供该引用。
// 项目必须存在且归属于 identity；模型只校验存在，不校验归属。
func (v *ReferenceValidator) Validate(ctx context.Context, identity, projectID, aiModelID string) error {
	if projectID != "" {
		project, err := findByID[models.Project](ctx, v.store, projectID, ResourceProject)
		if err != nil {
			return wrapReference("project", err)
		}
		if err := authorize(project.Owner(), identity, PolicyOwned, OpRead, ResourceProject, "使用"); err != nil {
			return &ReferenceError{Field: "project", Err: err}
		}
	}

	if aiModelID != "" {
		if _, err := findByID[models.AIModel](ctx, v.store, aiModelID, ResourceAIModel); err != nil {
			return wrapReference("aiModel", err)
		}
	}
	return nil
}

// wrapReference 只包装 NotFound，存储层异常原样上抛
func wrapReference(field string, err error) error {
	if IsNotFound(err) {
		return &ReferenceError{Field: field, Err: err}
	}
	return err
}
