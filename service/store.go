package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Clock 时间来源，测试中可替换
type Clock func() time.Time

// store 各资源服务共享的存储依赖
type store struct {
	db  *gorm.DB
	now Clock
}

func newStore(db *gorm.DB) store {
	return store{db: db, now: time.Now}
}

// stamp 当前时间，截断到毫秒以便与数据库往返后一致
func (s store) stamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s store) conn(ctx context.Context) *gorm.DB {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.db.WithContext(ctx)
}

// findByID 按 ID 查询单条记录，不存在时返回 NotFoundError
func findByID[T any](ctx context.Context, s store, id, resource string) (*T, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &NotFoundError{Resource: resource}
	}
	var rec T
	if err := s.conn(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, notFoundOr(err, resource)
	}
	return &rec, nil
}

// updateByID 按主键写回记录的全部列（omit 除外），不会像 Save 那样在记录缺失时插入。
// 0 行受影响时确认记录是否仍存在，已被删除则返回 NotFoundError
func updateByID[T any](ctx context.Context, s store, rec *T, id, resource string, omit ...string) error {
	q := s.conn(ctx).Model(rec).Select("*")
	if len(omit) > 0 {
		q = q.Omit(omit...)
	}
	result := q.Updates(rec)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := s.conn(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &NotFoundError{Resource: resource}
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}
