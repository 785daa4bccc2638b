package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Tags 标签集合，以 JSON 数组文本落库
type Tags []string

// NormalizeTags 去除首尾空白，丢弃空串与重复项，保持原有顺序
func NormalizeTags(in []string) Tags {
	out := make(Tags, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// Value 实现 driver.Valuer
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner
func (t *Tags) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*t = Tags{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("无法解析标签字段: %T", value)
	}
	if len(raw) == 0 {
		*t = Tags{}
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return err
	}
	*t = Tags(list)
	return nil
}

// Contains 是否包含指定标签
func (t Tags) Contains(tag string) bool {
	for _, v := range t {
		if v == tag {
			return true
		}
	}
	return false
}

// TagPatterns 返回用于 LIKE 匹配单个标签的 JSON 片段，锚定在数组元素边界上。
// 例如 "seo" -> `["seo",` `["seo"]` `,"seo",` `,"seo"]`。
// 元素内部的引号总是被转义为 \"，因此其他标签的文本无法伪造这些片段。
func TagPatterns(tag string) []string {
	b, _ := json.Marshal(tag)
	elem := string(b)
	return []string{
		"[" + elem + ",",
		"[" + elem + "]",
		"," + elem + ",",
		"," + elem + "]",
	}
}
