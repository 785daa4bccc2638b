package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"zenith/models"

	"github.com/xuri/excelize/v2"
)

const exportTimeLayout = "2006-01-02 15:04:05"

// ExportSheetName 导出工作表名称
const ExportSheetName = "提示词"

var exportHeaders = []string{
	"ID", "标题", "内容", "项目", "AI模型", "提供方", "标签",
	"temperature", "maxTokens", "topP", "frequencyPenalty", "presencePenalty",
	"使用次数", "最后使用", "创建时间", "更新时间",
}

// exportRow 一条提示词对应的导出行
func exportRow(p models.Prompt) []interface{} {
	var projectName, modelName, provider, lastUsed string
	if p.Project != nil {
		projectName = p.Project.Name
	}
	if p.AIModel != nil {
		modelName = p.AIModel.Name
		provider = p.AIModel.Provider
	}
	if p.LastUsed != nil {
		lastUsed = p.LastUsed.Local().Format(exportTimeLayout)
	}
	return []interface{}{
		p.ID,
		p.Title,
		p.Content,
		projectName,
		modelName,
		provider,
		strings.Join(p.Tags, ","),
		p.Parameters.Temperature,
		p.Parameters.MaxTokens,
		p.Parameters.TopP,
		p.Parameters.FrequencyPenalty,
		p.Parameters.PresencePenalty,
		p.UsageCount,
		lastUsed,
		p.CreatedAt.Local().Format(exportTimeLayout),
		p.UpdatedAt.Local().Format(exportTimeLayout),
	}
}

// WritePromptsCSV 以 CSV 写出提示词，带 BOM 以支持 Excel 中文显示
func WritePromptsCSV(w io.Writer, prompts []models.Prompt) error {
	if _, err := io.WriteString(w, "\xEF\xBB\xBF"); err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeaders); err != nil {
		return err
	}
	for _, p := range prompts {
		values := exportRow(p)
		record := make([]string, len(values))
		for i, v := range values {
			record[i] = csvValue(v)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func csvValue(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// WritePromptsXLSX 以 Excel 工作簿写出提示词，末行为汇总
func WritePromptsXLSX(w io.Writer, prompts []models.Prompt) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheetName); err != nil {
		return err
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4A90E2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return err
	}
	dataStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    border,
	})
	if err != nil {
		return err
	}

	// 标题与内容列加宽
	_ = f.SetColWidth(ExportSheetName, "A", "A", 38)
	_ = f.SetColWidth(ExportSheetName, "B", "B", 24)
	_ = f.SetColWidth(ExportSheetName, "C", "C", 60)
	_ = f.SetColWidth(ExportSheetName, "D", "G", 16)
	_ = f.SetColWidth(ExportSheetName, "N", "P", 20)

	last, err := excelize.ColumnNumberToName(len(exportHeaders))
	if err != nil {
		return err
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(ExportSheetName, cell, header); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(ExportSheetName, "A1", last+"1", headerStyle); err != nil {
		return err
	}

	var totalUsage int64
	for i, p := range prompts {
		row := i + 2
		for col, v := range exportRow(p) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(ExportSheetName, cell, v); err != nil {
				return err
			}
		}
		if err := f.SetCellStyle(ExportSheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", last, row), dataStyle); err != nil {
			return err
		}
		totalUsage += p.UsageCount
	}

	summaryRow := len(prompts) + 2
	summaryStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return err
	}
	_ = f.SetCellValue(ExportSheetName, fmt.Sprintf("A%d", summaryRow), "合计")
	_ = f.SetCellValue(ExportSheetName, fmt.Sprintf("B%d", summaryRow), fmt.Sprintf("共 %d 条提示词", len(prompts)))
	_ = f.SetCellValue(ExportSheetName, fmt.Sprintf("M%d", summaryRow), totalUsage)
	if err := f.SetCellStyle(ExportSheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("%s%d", last, summaryRow), summaryStyle); err != nil {
		return err
	}

	return f.Write(w)
}
