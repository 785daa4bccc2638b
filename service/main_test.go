package service

import (
	"testing"
	"time"

	"zenith/config"
	"zenith/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB 每个测试独立的内存 sqlite 库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// testClock 每次调用前进一秒
type testClock struct {
	t time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func (c *testClock) Last() time.Time {
	return c.t
}

// beforeNextUpdate 在下一条针对 table 的 UPDATE 执行前，于同一连接上先执行 query，
// 用来模拟读取与写回之间插入的其他写入
func beforeNextUpdate(t *testing.T, db *gorm.DB, table, query string, args ...interface{}) {
	t.Helper()
	fired := false
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:interleave", func(tx *gorm.DB) {
		if fired || tx.Statement.Table != table {
			return
		}
		fired = true
		_, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context, query, args...)
		require.NoError(t, err)
	}))
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }
