package service

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"zenith/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func exportFixture() []models.Prompt {
	project := "p1"
	used := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	return []models.Prompt{
		{
			ID:         "a1",
			Title:      "Launch email",
			Content:    "Write, with commas",
			ProjectID:  &project,
			AIModelID:  "m1",
			Parameters: models.DefaultPromptParameters(),
			Tags:       models.Tags{"email", "launch"},
			UsageCount: 2,
			LastUsed:   &used,
			CreatedAt:  used,
			UpdatedAt:  used,
			Project:    &models.ProjectRef{ID: project, Name: "Marketing"},
			AIModel:    &models.AIModelRef{ID: "m1", Name: "GPT-4", Provider: "OpenAI"},
		},
		{
			ID:         "a2",
			Title:      "Orphan",
			Content:    "c",
			AIModelID:  "gone",
			Parameters: models.DefaultPromptParameters(),
			Tags:       models.Tags{},
			CreatedAt:  used,
			UpdatedAt:  used,
		},
	}
}

func TestWritePromptsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePromptsCSV(&buf, exportFixture()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\xEF\xBB\xBF"))

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\xEF\xBB\xBF"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, exportHeaders, records[0])

	first := records[1]
	assert.Equal(t, "a1", first[0])
	assert.Equal(t, "Write, with commas", first[2])
	assert.Equal(t, "Marketing", first[3])
	assert.Equal(t, "GPT-4", first[4])
	assert.Equal(t, "email,launch", first[6])
	assert.Equal(t, "0.7", first[7])
	assert.Equal(t, "256", first[8])
	assert.Equal(t, "2", first[12])

	orphan := records[2]
	assert.Equal(t, "", orphan[3])
	assert.Equal(t, "", orphan[4])
	assert.Equal(t, "", orphan[13])
}

func TestWritePromptsXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePromptsXLSX(&buf, exportFixture()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ExportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Launch email", rows[1][1])
	assert.Equal(t, "Marketing", rows[1][3])
	assert.Equal(t, "合计", rows[3][0])
	assert.Equal(t, "共 2 条提示词", rows[3][1])
}

func TestCSVValue(t *testing.T) {
	assert.Equal(t, "0.7", csvValue(0.7))
	assert.Equal(t, "1", csvValue(1.0))
	assert.Equal(t, "256", csvValue(256))
	assert.Equal(t, "12", csvValue(int64(12)))
	assert.Equal(t, "seo,email", csvValue("seo,email"))
}
