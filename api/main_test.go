package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"zenith/config"
	"zenith/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = gormDB
	return mock, func() {
		database.DB = oldDB
		sqlDB.Close()
	}
}

// setupSQLiteDB 内存 sqlite，用于需要真实读写的接口测试
func setupSQLiteDB(t *testing.T) func() {
	oldDB := database.DB
	require.NoError(t, database.Init(&config.Config{
		Database: config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:", LogLevel: "silent"},
	}))
	return func() {
		if sqlDB, err := database.DB.DB(); err == nil {
			sqlDB.Close()
		}
		database.DB = oldDB
	}
}

func setUserIDMiddleware(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = new(bytes.Buffer)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// newUserRouter 以指定用户身份挂载全部资源接口
func newUserRouter(userID string) *gin.Engine {
	r := gin.New()
	r.Use(setUserIDMiddleware(userID))

	projects := NewProjectHandler()
	r.POST("/api/projects", projects.Create)
	r.GET("/api/projects", projects.List)
	r.GET("/api/projects/:id", projects.Get)
	r.PUT("/api/projects/:id", projects.Update)
	r.DELETE("/api/projects/:id", projects.Delete)

	aiModels := NewAIModelHandler()
	r.POST("/api/ai-models", aiModels.CreateAIModel)
	r.GET("/api/ai-models", aiModels.GetAllAIModels)
	r.POST("/api/ai-models/seed", aiModels.SeedAIModels)
	r.GET("/api/ai-models/:id", aiModels.GetAIModel)
	r.PUT("/api/ai-models/:id", aiModels.UpdateAIModel)
	r.DELETE("/api/ai-models/:id", aiModels.DeleteAIModel)

	prompts := NewPromptHandler()
	r.POST("/api/prompts", prompts.Create)
	r.GET("/api/prompts", prompts.List)
	r.GET("/api/prompts/export", NewExportHandler().ExportPrompts)
	r.GET("/api/prompts/:id", prompts.Get)
	r.PUT("/api/prompts/:id", prompts.Update)
	r.DELETE("/api/prompts/:id", prompts.Delete)
	r.PUT("/api/prompts/:id/use", prompts.Use)
	return r
}
